package usecases_port

import (
	"context"
	"listings-service/internal/core/domain"
)

type FindListingsUseCasePort interface {
	Execute(ctx context.Context, filters domain.ListingFilters) (*domain.PaginatedListings, error)
}
