package auth

import (
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/httpx"
)

// Middleware verifies the bearer token and places the decoded actor
// context on the request for every protected route.
func Middleware(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w)
				return
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				unauthorized(w)
				return
			}

			actorID, err := uuid.Parse(claims.Subject)
			if err != nil {
				unauthorized(w)
				return
			}
			tenantID, err := uuid.Parse(claims.TenantID)
			if err != nil {
				unauthorized(w)
				return
			}
			role, ok := authctx.ParseRole(claims.Role)
			if !ok {
				unauthorized(w)
				return
			}

			ac := authctx.Context{ActorID: actorID, TenantID: tenantID, Role: role}
			next.ServeHTTP(w, r.WithContext(authctx.With(r.Context(), ac)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	httpx.Respond(w, http.StatusUnauthorized, map[string]string{"error": "missing or invalid token"})
}
