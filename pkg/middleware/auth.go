// Package middleware holds the HTTP middleware stack.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/eduportal/pkg/auth"
	"github.com/shashiranjanraj/eduportal/pkg/logger"
	"github.com/shashiranjanraj/eduportal/pkg/response"
)

type claimsKey struct{}

// TokenValidator is satisfied by *auth.Issuer.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// RequireRole rejects requests without a valid bearer token for one of roles.
func RequireRole(v TokenValidator, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearer(r.Header.Get("Authorization"))
			if !ok {
				response.Unauthorized(w)
				return
			}

			claims, err := v.Validate(token)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("rejected session token", "error", err.Error())
				response.Unauthorized(w)
				return
			}
			if !allowed[claims.Role] {
				response.Unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

// ClaimsFromCtx returns the claims stored by RequireRole.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

func bearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
