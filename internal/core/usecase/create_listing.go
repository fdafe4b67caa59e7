package usecase

import (
	"context"
	"fmt"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
)

type CreateListingUseCase struct {
	storage port.ListingStoragePort
	events  port.ChangeEventQueuePort
}

func NewCreateListingUseCase(storage port.ListingStoragePort, events port.ChangeEventQueuePort) *CreateListingUseCase {
	return &CreateListingUseCase{storage: storage, events: events}
}

// Execute сохраняет новое объявление. Публиковать объявления могут агенты,
// арендодатели и администраторы; владельцем всегда становится запрашивающий.
func (uc *CreateListingUseCase) Execute(ctx context.Context, requester domain.Claims, listing *domain.Listing) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateListing",
		"user_id":  requester.UserID.String(),
		"role":     requester.Role,
	})

	ucLogger.Info("Use case started", nil)

	switch requester.Role {
	case domain.RoleAgent, domain.RoleLandlord, domain.RoleAdmin:
	default:
		ucLogger.Warn("Requester role is not allowed to create listings", nil)
		return nil, domain.ErrForbidden
	}

	if !listing.PriceType.Valid() {
		return nil, fmt.Errorf("unknown price type %q", listing.PriceType)
	}

	listing.OwnerID = requester.UserID
	// Агент, публикующий объявление, по умолчанию становится его агентом.
	if requester.Role == domain.RoleAgent && listing.AgentID == nil {
		agentID := requester.UserID
		listing.AgentID = &agentID
	}

	if err := uc.storage.Create(ctx, listing); err != nil {
		ucLogger.Error("Repository failed to create listing", err, nil)
		return nil, err
	}

	publishChangeEvent(ctx, uc.events, domain.EntityListings, domain.ChangeTypeInsert, listing.ID, listing)

	ucLogger.Info("Use case finished successfully", port.Fields{"listing_id": listing.ID.String()})
	return listing, nil
}
