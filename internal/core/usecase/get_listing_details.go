package usecase

import (
	"context"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"

	"github.com/google/uuid"
)

type GetListingDetailsUseCase struct {
	storage port.ListingStoragePort
}

func NewGetListingDetailsUseCase(storage port.ListingStoragePort) *GetListingDetailsUseCase {
	return &GetListingDetailsUseCase{storage: storage}
}

// Execute возвращает объявление по идентификатору. Страница деталей
// не ограничена флагом is_available: снятое объявление остается доступным
// по прямой ссылке.
func (uc *GetListingDetailsUseCase) Execute(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetListingDetails", "listing_id": listingID.String()})

	ucLogger.Info("Use case started", nil)

	listing, err := uc.storage.GetByID(ctx, listingID)
	if err != nil {
		ucLogger.Error("Repository failed to find listing", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return listing, nil
}
