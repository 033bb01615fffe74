// Package token implements session tokens as HMAC-signed JWTs.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/acme/invoicehub/internal/core/domain"
	"github.com/acme/invoicehub/internal/port"
)

type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// JWTCodec issues and verifies session tokens. Subject carries the user
// ID; only HS256 tokens are accepted on verification.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration

	now func() time.Time
}

func NewJWTCodec(secret []byte, ttl time.Duration) *JWTCodec {
	return &JWTCodec{secret: secret, ttl: ttl, now: time.Now}
}

func (c *JWTCodec) Issue(user domain.User) (string, error) {
	now := c.now()
	claims := sessionClaims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (c *JWTCodec) Verify(token string) (*port.SessionClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("verify session token: %w", err)
	}

	return &port.SessionClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}
