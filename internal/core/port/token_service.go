package port

import (
	"context"
	"listings-service/internal/core/domain"
)

// TokenServicePort - контракт для проверки токенов доступа
type TokenServicePort interface {
	// ValidateToken проверяет подпись и срок действия токена
	// и возвращает содержащиеся в нем claims.
	ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error)
}
