package usecases_port

import (
	"context"
	"listings-service/internal/core/domain"

	"github.com/google/uuid"
)

type UpdateInquiryStatusUseCasePort interface {
	Execute(ctx context.Context, requester domain.Claims, inquiryID uuid.UUID, status domain.InquiryStatus) (*domain.Inquiry, error)
}
