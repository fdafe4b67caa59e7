package usecases_port

import (
	"context"
	"listings-service/internal/core/domain"

	"github.com/google/uuid"
)

type UpdateProfileUseCasePort interface {
	Execute(ctx context.Context, requester domain.Claims, profileID uuid.UUID, update domain.ProfileUpdate) (*domain.Profile, error)
}
