package port

import (
	"context"
	"listings-service/internal/core/domain"

	"github.com/google/uuid"
)

// ProfileStoragePort - контракт хранилища профилей
type ProfileStoragePort interface {
	GetByID(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error)

	// Update сохраняет изменяемые атрибуты профиля и возвращает обновленную запись.
	Update(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)

	CountAll(ctx context.Context) (int64, error)
}
