package transport

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"marketplace/constant"
	redisrepo "marketplace/repository/redis"
	utilsContext "marketplace/utils/context"
	"marketplace/utils/errors"
)

// AuthMiddleware validates bearer tokens issued by the identity provider.
// The token signature is verified locally; the session id claim must still
// exist in Redis, so revoked sessions stop working immediately.
// Public endpoints (swagger, internal API) pass through.
func AuthMiddleware(sessionRepo redisrepo.Repository, jwtSecret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			userID, err := validateToken(r.Context(), sessionRepo, jwtSecret, token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			ctx := utilsContext.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type sessionClaims struct {
	UserID    uint64 `json:"user_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

func validateToken(ctx context.Context, sessionRepo redisrepo.Repository, secret, token string) (uint64, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	if claims.UserID == 0 || claims.SessionID == "" {
		return 0, fmt.Errorf("missing claims")
	}

	sessionUserID, err := sessionRepo.GetSession(ctx, claims.SessionID)
	if err != nil {
		return 0, fmt.Errorf("session lookup: %w", err)
	}
	if sessionUserID != claims.UserID {
		return 0, fmt.Errorf("session mismatch")
	}
	return claims.UserID, nil
}

// isPublicPath defines which endpoints are public (no bearer token required)
func isPublicPath(path string) bool {
	return strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/")
}
