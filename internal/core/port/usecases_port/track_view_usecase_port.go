package usecases_port

import (
	"context"

	"github.com/google/uuid"
)

type TrackViewUseCasePort interface {
	Execute(ctx context.Context, listingID uuid.UUID, ipAddress, userAgent string, viewerID *uuid.UUID) error
}
