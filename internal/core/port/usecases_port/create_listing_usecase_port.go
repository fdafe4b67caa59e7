package usecases_port

import (
	"context"
	"listings-service/internal/core/domain"
)

type CreateListingUseCasePort interface {
	Execute(ctx context.Context, requester domain.Claims, listing *domain.Listing) (*domain.Listing, error)
}
