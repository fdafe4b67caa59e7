package usecases_port

import (
	"context"
	"listings-service/internal/core/domain"

	"github.com/google/uuid"
)

type GetProfileUseCasePort interface {
	Execute(ctx context.Context, requester domain.Claims, profileID uuid.UUID) (*domain.Profile, error)
}
