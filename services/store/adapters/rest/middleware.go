package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/ezgierrdogan/planning-forever-clean/services/store/pkg/res"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserID returns the authenticated user id placed by RequireAuth.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func RequireAuth(tokens *TokenIssuer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			res.Error(w, "authorization required", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			res.Error(w, "invalid authorization header", http.StatusUnauthorized)
			return
		}

		userID, err := tokens.Parse(parts[1])
		if err != nil {
			res.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
