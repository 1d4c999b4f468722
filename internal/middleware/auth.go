package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/taskplan/taskplan-go/internal/crypto"
	"github.com/taskplan/taskplan-go/internal/model"
)

type contextKey string

const userKey contextKey = "user"

// UserResolver looks up an account by its ID. The gate re-resolves the
// account on every request so that tokens held by since-deleted accounts
// stop working even though the token itself is still valid.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// JWTAuth returns middleware that validates a Bearer token from the
// Authorization header and attaches the resolved user to the request
// context. No downstream handler runs without a verified identity.
func JWTAuth(secret string, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, "missing authorization header")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeUnauthorized(w, "invalid authorization format")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"valid": false, "error": msg})
}
