package usecase

import (
	"context"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"

	"github.com/google/uuid"
)

type TrackViewUseCase struct {
	views port.ViewEventStoragePort
}

func NewTrackViewUseCase(views port.ViewEventStoragePort) *TrackViewUseCase {
	return &TrackViewUseCase{views: views}
}

// Execute фиксирует просмотр объявления. Повторный просмотр с того же адреса
// поглощается хранилищем, поэтому операция идемпотентна для пары
// объявление+адрес.
func (uc *TrackViewUseCase) Execute(ctx context.Context, listingID uuid.UUID, ipAddress, userAgent string, viewerID *uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "TrackView",
		"listing_id": listingID.String(),
	})

	ucLogger.Debug("Use case started", nil)

	event := domain.NewViewEvent(listingID, ipAddress, userAgent, viewerID)
	if err := uc.views.Record(ctx, event); err != nil {
		ucLogger.Error("Repository failed to record view event", err, nil)
		return err
	}

	ucLogger.Debug("Use case finished successfully", nil)
	return nil
}
