package port

import "github.com/acme/invoicehub/internal/core/domain"

// SessionClaims is what a verified session token asserts about its
// holder.
type SessionClaims struct {
	UserID string
	Email  string
	Name   string
}

// SessionTokens issues and verifies the opaque tokens carried in the
// session cookie.
type SessionTokens interface {
	Issue(user domain.User) (string, error)
	Verify(token string) (*SessionClaims, error)
}
