package api

import (
	"context"
	"net/http"
	"strings"

	"vidtube/internal/auth"
)

type contextKey string

const userContextKey = contextKey("user")

// AuthMiddleware accepts the access token either as a Bearer header or as the
// accessToken cookie set at login.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ""

		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || headerParts[0] != "Bearer" {
				respondError(w, http.StatusUnauthorized, "invalid Authorization header format")
				return
			}
			tokenString = headerParts[1]
		} else if cookie, err := r.Cookie("accessToken"); err == nil {
			tokenString = cookie.Value
		}

		if tokenString == "" {
			respondError(w, http.StatusUnauthorized, "unauthorized request")
			return
		}

		claims, err := auth.VerifyJWT(tokenString, s.config.JWT.AccessSecret)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserFromContext(ctx context.Context) *auth.AppClaims {
	if claims, ok := ctx.Value(userContextKey).(*auth.AppClaims); ok {
		return claims
	}
	return nil
}
