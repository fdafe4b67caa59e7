package port

import (
	"context"
	"listings-service/internal/core/domain"

	"github.com/google/uuid"
)

// ListingStoragePort - контракт хранилища объявлений
type ListingStoragePort interface {
	Create(ctx context.Context, listing *domain.Listing) error
	Update(ctx context.Context, listing *domain.Listing) (*domain.Listing, error)
	GetByID(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error)

	// FindWithFilters возвращает страницу доступных объявлений по набору
	// необязательных фильтров, от новых к старым.
	FindWithFilters(ctx context.Context, filters domain.ListingFilters, limit, offset int) (*domain.PaginatedListings, error)

	// IDsByOwner возвращает идентификаторы всех объявлений владельца
	// (первый шаг зависимого подсчета просмотров).
	IDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)

	CountAll(ctx context.Context) (int64, error)
	CountByAgent(ctx context.Context, agentID uuid.UUID) (int64, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
