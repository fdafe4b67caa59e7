package port

import (
	"context"
	"listings-service/internal/core/domain"

	"github.com/google/uuid"
)

// InquiryStoragePort - контракт хранилища заявок.
// Методы Find* возвращают заявки вместе с проекцией объявления,
// отсортированные от новых к старым.
type InquiryStoragePort interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
	GetByID(ctx context.Context, inquiryID uuid.UUID) (*domain.Inquiry, error)

	FindAll(ctx context.Context) ([]domain.InquiryWithListing, error)
	FindByListingOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.InquiryWithListing, error)
	FindByListingAgent(ctx context.Context, agentID uuid.UUID) ([]domain.InquiryWithListing, error)

	// UpdateStatus меняет статус заявки и возвращает обновленную запись.
	UpdateStatus(ctx context.Context, inquiryID uuid.UUID, status domain.InquiryStatus) (*domain.Inquiry, error)

	CountAll(ctx context.Context) (int64, error)
	CountByListingOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	CountByListingAgent(ctx context.Context, agentID uuid.UUID) (int64, error)
}
