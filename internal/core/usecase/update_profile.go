package usecase

import (
	"context"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"time"

	"github.com/google/uuid"
)

type UpdateProfileUseCase struct {
	profiles port.ProfileStoragePort
	events   port.ChangeEventQueuePort
}

func NewUpdateProfileUseCase(profiles port.ProfileStoragePort, events port.ChangeEventQueuePort) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{profiles: profiles, events: events}
}

// Execute меняет отображаемые атрибуты профиля. Менять профиль могут
// его владелец и администратор.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, requester domain.Claims, profileID uuid.UUID, update domain.ProfileUpdate) (*domain.Profile, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateProfile",
		"profile_id": profileID.String(),
		"user_id":    requester.UserID.String(),
	})

	ucLogger.Info("Use case started", nil)

	if requester.UserID != profileID && requester.Role != domain.RoleAdmin {
		ucLogger.Warn("Requester is not allowed to update this profile", nil)
		return nil, domain.ErrForbidden
	}

	profile, err := uc.profiles.GetByID(ctx, profileID)
	if err != nil {
		ucLogger.Error("Repository failed to find profile", err, nil)
		return nil, err
	}

	if update.FullName != nil {
		profile.FullName = *update.FullName
	}
	if update.Company != nil {
		profile.Company = *update.Company
	}
	if update.AvatarURL != nil {
		profile.AvatarURL = *update.AvatarURL
	}
	if update.Phone != nil {
		profile.Phone = *update.Phone
	}
	if update.Email != nil {
		profile.Email = *update.Email
	}
	profile.UpdatedAt = time.Now().UTC()

	updated, err := uc.profiles.Update(ctx, profile)
	if err != nil {
		ucLogger.Error("Repository failed to update profile", err, nil)
		return nil, err
	}

	publishChangeEvent(ctx, uc.events, domain.EntityProfiles, domain.ChangeTypeUpdate, updated.ID, updated)

	ucLogger.Info("Use case finished successfully", nil)
	return updated, nil
}
