package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/stayfinder/stayfinder-api/pkg/auth"
	"github.com/stayfinder/stayfinder-api/pkg/logger"
)

type claimsKey struct{}

// RequireAuth gates mutating routes behind a bearer token. The credential can
// arrive bare or with a "Bearer " prefix. A missing credential is 401; a
// credential that fails verification is 403.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		token = strings.TrimPrefix(token, "Bearer ")

		if token == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		claims, err := h.credentials.VerifyToken(token)
		if err != nil {
			writeError(w, http.StatusForbidden, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), logger.UserIDKey, claims.PrincipalID)
		ctx = context.WithValue(ctx, claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(claimsKey{}).(*auth.Claims); ok {
		return claims
	}
	return nil
}
