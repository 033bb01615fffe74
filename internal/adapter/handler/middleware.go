package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/acme/invoicehub/internal/port"
)

const sessionCookieName = "session"

const protectedPrefix = "/dashboard"

type contextKey string

const sessionContextKey contextKey = "session"

// SessionGuard is the per-navigation route guard. It is a pure decision
// over (session presence, requested path): an anonymous request under the
// protected prefix goes to the login page, a signed-in request to the
// login or sign-up page goes to the dashboard, everything else passes.
type SessionGuard struct {
	tokens port.SessionTokens
}

func NewSessionGuard(tokens port.SessionTokens) *SessionGuard {
	return &SessionGuard{tokens: tokens}
}

func (g *SessionGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := g.sessionClaims(r)
		loggedIn := claims != nil
		onDashboard := strings.HasPrefix(r.URL.Path, protectedPrefix)

		if onDashboard && !loggedIn {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		if loggedIn && (r.URL.Path == "/login" || r.URL.Path == "/signup") {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}

		if loggedIn {
			r = r.WithContext(context.WithValue(r.Context(), sessionContextKey, claims))
		}
		next.ServeHTTP(w, r)
	})
}

func (g *SessionGuard) sessionClaims(r *http.Request) *port.SessionClaims {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := g.tokens.Verify(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

// SessionFromContext returns the verified session claims the guard stored
// for a signed-in request, nil otherwise.
func SessionFromContext(ctx context.Context) *port.SessionClaims {
	claims, _ := ctx.Value(sessionContextKey).(*port.SessionClaims)
	return claims
}
