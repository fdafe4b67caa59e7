package usecases_port

import (
	"context"
	"listings-service/internal/core/domain"
)

type GetInquiriesUseCasePort interface {
	Execute(ctx context.Context, requester domain.Claims) ([]domain.InquiryWithListing, error)
}
