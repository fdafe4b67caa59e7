package usecases_port

import (
	"context"
	"listings-service/internal/core/domain"

	"github.com/google/uuid"
)

type CreateInquiryUseCasePort interface {
	Execute(ctx context.Context, requester domain.Claims, listingID uuid.UUID, message string) (*domain.Inquiry, error)
}
