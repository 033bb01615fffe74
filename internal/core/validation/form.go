// Package validation parses raw form submissions into typed inputs,
// collecting every violated field at once so the client can render all
// errors in a single pass.
package validation

import (
	"net/mail"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/acme/invoicehub/internal/core/domain"
)

const (
	MsgCustomerRequired   = "Please select a customer."
	MsgAmountInvalid      = "Please enter an amount greater than $0."
	MsgStatusInvalid      = "Please select an invoice status."
	MsgNameRequired       = "Name is required"
	MsgEmailInvalid       = "Invalid email address"
	MsgPasswordTooShort   = "Password must be at least 6 characters"
	MsgConfirmRequired    = "Password confirmation is required"
	MsgPasswordsDontMatch = "Passwords don't match"
)

const minPasswordLen = 6

// FieldErrors maps a form field name to the ordered list of messages for
// that field.
type FieldErrors map[string][]string

func (e FieldErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// InvoiceInput is the typed result of a valid invoice form. Create and
// update share it; the two mutations differ only in the statement they
// issue.
type InvoiceInput struct {
	CustomerID  string
	AmountCents int64
	Status      domain.InvoiceStatus
}

// ParseInvoiceForm validates an invoice create/update submission. The
// amount field is a decimal dollar string with at most two fraction
// digits; it is converted to cents exactly, never through a float.
func ParseInvoiceForm(form url.Values) (InvoiceInput, FieldErrors) {
	var in InvoiceInput
	errs := FieldErrors{}

	in.CustomerID = strings.TrimSpace(form.Get("customerId"))
	if in.CustomerID == "" {
		errs.add("customerId", MsgCustomerRequired)
	}

	cents, ok := parseAmountCents(form.Get("amount"))
	if !ok {
		errs.add("amount", MsgAmountInvalid)
	}
	in.AmountCents = cents

	switch status := domain.InvoiceStatus(form.Get("status")); status {
	case domain.InvoiceStatusPending, domain.InvoiceStatusPaid:
		in.Status = status
	default:
		errs.add("status", MsgStatusInvalid)
	}

	if len(errs) > 0 {
		return InvoiceInput{}, errs
	}
	return in, nil
}

// parseAmountCents converts a dollar string like "49.99" to 4999. It
// rejects non-numeric input, amounts that are not strictly positive, and
// amounts with sub-cent precision (those cannot be represented exactly in
// minor units).
func parseAmountCents(raw string) (int64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	if !d.IsPositive() {
		return 0, false
	}
	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, false
	}
	return cents.IntPart(), true
}

// SignUpInput is the typed result of a valid sign-up form. The confirm
// password field is consumed by validation and never leaves this package.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

// ParseSignUpForm validates a sign-up submission. The cross-field
// password check is attached to the confirmPassword field, matching where
// the form renders it.
func ParseSignUpForm(form url.Values) (SignUpInput, FieldErrors) {
	var in SignUpInput
	errs := FieldErrors{}

	in.Name = strings.TrimSpace(form.Get("name"))
	if in.Name == "" {
		errs.add("name", MsgNameRequired)
	}

	in.Email = strings.TrimSpace(form.Get("email"))
	if !validEmail(in.Email) {
		errs.add("email", MsgEmailInvalid)
	}

	in.Password = form.Get("password")
	if len(in.Password) < minPasswordLen {
		errs.add("password", MsgPasswordTooShort)
	}

	confirm := form.Get("confirmPassword")
	if len(confirm) < minPasswordLen {
		errs.add("confirmPassword", MsgConfirmRequired)
	} else if in.Password != confirm {
		errs.add("confirmPassword", MsgPasswordsDontMatch)
	}

	if len(errs) > 0 {
		return SignUpInput{}, errs
	}
	return in, nil
}

// Credentials is a login submission.
type Credentials struct {
	Email    string
	Password string
}

// ParseLoginForm validates a login submission with the same email and
// password rules the sign-up form applies.
func ParseLoginForm(form url.Values) (Credentials, FieldErrors) {
	var c Credentials
	errs := FieldErrors{}

	c.Email = strings.TrimSpace(form.Get("email"))
	if !validEmail(c.Email) {
		errs.add("email", MsgEmailInvalid)
	}

	c.Password = form.Get("password")
	if len(c.Password) < minPasswordLen {
		errs.add("password", MsgPasswordTooShort)
	}

	if len(errs) > 0 {
		return Credentials{}, errs
	}
	return c, nil
}

func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
