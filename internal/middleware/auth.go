package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/barbatoslupus21/unisync-overview/pkg/logger"
)

// tokenVerifier is the part of *auth.Client the middleware needs.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type Middleware struct {
	AuthClient tokenVerifier
}

func NewMiddleware(client tokenVerifier) *Middleware {
	return &Middleware{AuthClient: client}
}

// context key
type contextKey string

const (
	UIDKey   contextKey = "uid"
	EmailKey contextKey = "email"
	RolesKey contextKey = "roles"
)

// RolesClaim is the custom token claim carrying portal roles.
const RolesClaim = "roles"

// Main middleware
func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
			return
		}

		tokenStr := parts[1]

		// Verify ID Token
		token, err := m.AuthClient.VerifyIDToken(r.Context(), tokenStr)
		if err != nil {
			logger.FromContext(r.Context()).Warn("token verification failed", "error", err)
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		email, _ := token.Claims["email"].(string)
		roles := claimRoles(token.Claims[RolesClaim])

		ctx := context.WithValue(r.Context(), UIDKey, token.UID)
		ctx = context.WithValue(ctx, EmailKey, email)
		ctx = context.WithValue(ctx, RolesKey, roles)
		_, ctx = logger.With(ctx, "uid", token.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// claimRoles accepts the roles claim as a list or a space separated string.
func claimRoles(v any) []string {
	switch c := v.(type) {
	case []any:
		out := make([]string, 0, len(c))
		for _, r := range c {
			if s, ok := r.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return c
	case string:
		return strings.Fields(c)
	default:
		return nil
	}
}

// Helper to extract UID
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}

func Email(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// Roles returns the roles asserted by the caller's token.
func Roles(ctx context.Context) []string {
	roles, _ := ctx.Value(RolesKey).([]string)
	return roles
}
