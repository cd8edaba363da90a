// Package domain defines the operator session model of the terminal.
package domain

import "time"

// SessionCookieName is the name of the cookie carrying the session token.
const SessionCookieName = "session"

// DefaultSessionLifetime bounds how long a login stays valid.
const DefaultSessionLifetime = 120 * time.Second

// SessionMode selects what the session cookie carries.
type SessionMode string

const (
	// SessionModeToken stores a signed, time-stamped token in the cookie.
	SessionModeToken SessionMode = "token"

	// SessionModeLegacy stores the raw terminal password in the cookie. It is a
	// compatibility fallback: the password travels with every request.
	SessionModeLegacy SessionMode = "legacy"
)

// Valid reports whether m is a known session mode.
func (m SessionMode) Valid() bool {
	return m == SessionModeToken || m == SessionModeLegacy
}

// Session is an issued operator session.
type Session struct {
	// Token is the cookie value.
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// MaxAge returns the cookie Max-Age in whole seconds.
func (s *Session) MaxAge() int {
	return int(s.ExpiresAt.Sub(s.IssuedAt) / time.Second)
}
