package usecases_port

import (
	"context"
	"listings-service/internal/core/domain"

	"github.com/google/uuid"
)

type UpdateListingUseCasePort interface {
	Execute(ctx context.Context, requester domain.Claims, listingID uuid.UUID, update domain.ListingUpdate) (*domain.Listing, error)
}
