// Package views holds the embedded HTML screens of the terminal and the page
// models rendered into them.
package views

import (
	"embed"
	"html/template"
	"net/url"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names.
const (
	Login    = "login.html"
	Terminal = "terminal.html"
	Share    = "share.html"
	Receipt  = "receipt.html"
	Error    = "error.html"
)

// Parse parses every embedded template. The result is meant for gin's
// Engine.SetHTMLTemplate.
func Parse() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Must is like Parse but panics on error. Templates are embedded, so a failure
// is a build defect.
func Must() *template.Template {
	return template.Must(Parse())
}

// Branding is shared by every page.
type Branding struct {
	MerchantName string
}

// LoginPage is the operator login screen.
type LoginPage struct {
	Branding
	Error string
}

// TerminalPage is the payment request form.
type TerminalPage struct {
	Branding
	Currency     string
	DefaultTitle string
}

// SharePage shows a freshly issued payment link with its QR code.
type SharePage struct {
	Branding
	Amount    string
	Currency  string
	Title     string
	PayURL    string
	QRCodeURL string
}

// ReceiptPage is the customer receipt.
type ReceiptPage struct {
	Branding
	PaymentID    string
	OrderID      string
	Amount       string
	Currency     string
	Status       string
	Paid         bool
	CustomerName string
	Email        string
	SupportEmail string
}

// ErrorPage is the generic error screen. Contact buttons are shown only when
// Contact is set.
type ErrorPage struct {
	Branding
	Title   string
	Message string
	Contact *Contact
}

// Contact holds the static support affordances of an error page.
type Contact struct {
	Email    string
	Subject  string
	WhatsApp string
}

// MailtoURL returns the mailto link of the support email.
func (c *Contact) MailtoURL() template.URL {
	if c == nil || c.Email == "" {
		return ""
	}
	link := "mailto:" + c.Email
	if c.Subject != "" {
		link += "?subject=" + url.PathEscape(c.Subject)
	}
	return template.URL(link) //nolint:gosec // built from configuration and escaped subject
}
