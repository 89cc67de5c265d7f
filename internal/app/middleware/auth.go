package middleware

import (
	"context"
	"net/http"

	"github.com/quizmasterhq/quizmaster/internal/infra/auth"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// CurrentUser возвращает данные сессии, положенные в контекст запроса
// аутентификационным middleware
func CurrentUser(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(claimsKey).(*auth.Claims)
	return claims
}

// RequireUser проверяет JWT из заголовка Authorization и кладет данные
// сессии в контекст запроса
func RequireUser(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			httpError.ErrorResponse(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}
		claims, err := auth.VerifyToken(secret, header)
		if err != nil {
			httpError.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin дополнительно к RequireUser проверяет флаг администратора
func RequireAdmin(secret string, next http.Handler) http.Handler {
	return RequireUser(secret, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := CurrentUser(r)
		if claims == nil || !claims.IsAdmin {
			httpError.ErrorResponse(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}
