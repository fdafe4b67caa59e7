package rest

import (
	"context"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"net/http"
	"strings"
)

// Определяем кастомный тип для ключа контекста, чтобы избежать коллизий.
type contextKey string

const claimsKey = contextKey("claims")

// ClaimsFromContext извлекает проверенные claims из контекста запроса.
func ClaimsFromContext(ctx context.Context) (domain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(domain.Claims)
	return claims, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// AuthMiddleware проверяет Bearer-токен и кладет claims в контекст запроса.
func AuthMiddleware(tokens port.TokenServicePort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteJSONError(w, http.StatusUnauthorized, "Authorization header with Bearer token is required")
				return
			}

			claims, err := tokens.ValidateToken(r.Context(), token)
			if err != nil {
				WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, *claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware кладет claims в контекст, если валидный токен
// прислан, но пропускает запрос и без него. Используется на публичных
// эндпоинтах, которые обогащают запись личностью запрашивающего
// (учет просмотров).
func OptionalAuthMiddleware(tokens port.TokenServicePort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.ValidateToken(r.Context(), token)
			if err != nil {
				// Невалидный токен на публичном эндпоинте не считается
				// отказом: запрос продолжается анонимно.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, *claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
