package usecase

import (
	"context"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"

	"github.com/google/uuid"
)

type GetProfileUseCase struct {
	profiles port.ProfileStoragePort
}

func NewGetProfileUseCase(profiles port.ProfileStoragePort) *GetProfileUseCase {
	return &GetProfileUseCase{profiles: profiles}
}

// Execute возвращает профиль. Доступ имеют владелец профиля и администратор.
func (uc *GetProfileUseCase) Execute(ctx context.Context, requester domain.Claims, profileID uuid.UUID) (*domain.Profile, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetProfile",
		"profile_id": profileID.String(),
		"user_id":    requester.UserID.String(),
	})

	ucLogger.Info("Use case started", nil)

	if requester.UserID != profileID && requester.Role != domain.RoleAdmin {
		ucLogger.Warn("Requester is not allowed to read this profile", nil)
		return nil, domain.ErrForbidden
	}

	profile, err := uc.profiles.GetByID(ctx, profileID)
	if err != nil {
		ucLogger.Error("Repository failed to find profile", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return profile, nil
}
