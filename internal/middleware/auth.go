package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/kampongconnect/backend/internal/models"
	"github.com/kampongconnect/backend/internal/services"
	"go.uber.org/zap"
)

// Principal is the authenticated caller of a request
type Principal struct {
	AccountID string
	Role      models.Role
	Token     string
}

type principalKey struct{}

// TokenParser verifies session tokens
type TokenParser interface {
	Parse(ctx context.Context, token string) (*services.Claims, error)
}

// Auth rejects requests without a valid bearer token and stores the caller's
// Principal in the request context.
func Auth(tokens TokenParser, logger *zap.Logger) func(http.Handler) http.Handler {
	logger = logger.Named("auth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				services.SendErrorResponse(w, "Authorization header required", http.StatusUnauthorized, nil)
				return
			}

			claims, err := tokens.Parse(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, services.ErrTokenRevoked):
					services.SendErrorResponse(w, "Token has been revoked", http.StatusUnauthorized, nil)
				case errors.Is(err, services.ErrInvalidToken):
					services.SendErrorResponse(w, "Invalid token", http.StatusUnauthorized, nil)
				default:
					logger.Error("token check failed", zap.Error(err))
					services.SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
				}
				return
			}

			ctx := WithPrincipal(r.Context(), Principal{AccountID: claims.Subject, Role: claims.Role, Token: token})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets only callers with role through. It must run after Auth.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
				return
			}
			if p.Role != role {
				services.SendErrorResponse(w, "Only "+string(role)+"s can do this", http.StatusForbidden, nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header
func BearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok && p.AccountID != ""
}
