package domain

import (
	"net/url"
	"strings"
)

// Query parameter and canonical field names.
const (
	ParamAmount    = "amt"
	ParamTime      = "time"
	ParamToken     = "c"
	ParamSignature = "sig"
	ParamOrderID   = "oid"
	ParamUnixTime  = "ts"
	ParamPaymentID = "payment_id"
	ParamSecret    = "secret"

	FieldAmount  = "amount"
	FieldTime    = "time"
	FieldToken   = "c"
	FieldOrderID = "oid"
	FieldUnix    = "ts"
)

// Field is one key/value pair of a canonical signing string.
type Field struct {
	Key   string
	Value string
}

// Canonical encodes fields in the given order as key=value pairs joined by "&".
// Values are query-escaped so that no value can introduce a delimiter, which
// keeps the encoding unambiguous for opaque caller-supplied text such as amounts.
// Issuer and verifier must both build signing strings through this function.
func Canonical(fields ...Field) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.Value))
	}
	return b.String()
}

// PaymentCanonical is the signing string of a payment-intent link:
// amount={amount}&time={issuedAtMs}&c={token}.
func PaymentCanonical(amount, issuedAtMs, token string) string {
	return Canonical(
		Field{FieldAmount, amount},
		Field{FieldTime, issuedAtMs},
		Field{FieldToken, token},
	)
}

// ReceiptCanonical is the signing string of a receipt link:
// oid={orderID}&time={issuedAtMs}&ts={unixSeconds}&c={token}.
func ReceiptCanonical(orderID, issuedAtMs, unixSeconds, token string) string {
	return Canonical(
		Field{FieldOrderID, orderID},
		Field{FieldTime, issuedAtMs},
		Field{FieldUnix, unixSeconds},
		Field{FieldToken, token},
	)
}

// WebhookCanonical is the signing string of a webhook callback link:
// c={token}&time={issuedAtMs}.
func WebhookCanonical(token, issuedAtMs string) string {
	return Canonical(
		Field{FieldToken, token},
		Field{FieldTime, issuedAtMs},
	)
}
