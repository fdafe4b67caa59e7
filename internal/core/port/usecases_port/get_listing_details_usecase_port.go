package usecases_port

import (
	"context"
	"listings-service/internal/core/domain"

	"github.com/google/uuid"
)

type GetListingDetailsUseCasePort interface {
	Execute(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error)
}
