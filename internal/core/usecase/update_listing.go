package usecase

import (
	"context"
	"fmt"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"time"

	"github.com/google/uuid"
)

type UpdateListingUseCase struct {
	storage port.ListingStoragePort
	events  port.ChangeEventQueuePort
}

func NewUpdateListingUseCase(storage port.ListingStoragePort, events port.ChangeEventQueuePort) *UpdateListingUseCase {
	return &UpdateListingUseCase{storage: storage, events: events}
}

// Execute меняет объявление. Право на изменение имеют владелец, назначенный
// агент и администратор.
func (uc *UpdateListingUseCase) Execute(ctx context.Context, requester domain.Claims, listingID uuid.UUID, update domain.ListingUpdate) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateListing",
		"listing_id": listingID.String(),
		"user_id":    requester.UserID.String(),
		"role":       requester.Role,
	})

	ucLogger.Info("Use case started", nil)

	listing, err := uc.storage.GetByID(ctx, listingID)
	if err != nil {
		ucLogger.Error("Repository failed to find listing", err, nil)
		return nil, err
	}

	if !canManageListing(requester, listing) {
		ucLogger.Warn("Requester is not allowed to update this listing", nil)
		return nil, domain.ErrForbidden
	}

	applyListingUpdate(listing, update)
	if !listing.PriceType.Valid() {
		return nil, fmt.Errorf("unknown price type %q", listing.PriceType)
	}
	listing.UpdatedAt = time.Now().UTC()

	updated, err := uc.storage.Update(ctx, listing)
	if err != nil {
		ucLogger.Error("Repository failed to update listing", err, nil)
		return nil, err
	}

	publishChangeEvent(ctx, uc.events, domain.EntityListings, domain.ChangeTypeUpdate, updated.ID, updated)

	ucLogger.Info("Use case finished successfully", nil)
	return updated, nil
}

// canManageListing - единое правило доступа к изменению объявления
// и его заявок: владелец, назначенный агент или администратор.
func canManageListing(requester domain.Claims, listing *domain.Listing) bool {
	if requester.Role == domain.RoleAdmin {
		return true
	}
	if listing.OwnerID == requester.UserID {
		return true
	}
	return listing.AgentID != nil && *listing.AgentID == requester.UserID
}

func applyListingUpdate(listing *domain.Listing, update domain.ListingUpdate) {
	if update.Title != nil {
		listing.Title = *update.Title
	}
	if update.Description != nil {
		listing.Description = *update.Description
	}
	if update.Price != nil {
		listing.Price = *update.Price
	}
	if update.PriceType != nil {
		listing.PriceType = *update.PriceType
	}
	if update.Category != nil {
		listing.Category = *update.Category
	}
	if update.Location != nil {
		listing.Location = *update.Location
	}
	if update.Bedrooms != nil {
		listing.Bedrooms = *update.Bedrooms
	}
	if update.Bathrooms != nil {
		listing.Bathrooms = *update.Bathrooms
	}
	if update.Area != nil {
		listing.Area = update.Area
	}
	if update.Images != nil {
		listing.Images = update.Images
	}
	if update.IsAvailable != nil {
		listing.IsAvailable = *update.IsAvailable
	}
	if update.IsFeatured != nil {
		listing.IsFeatured = *update.IsFeatured
	}
	if update.IsVerified != nil {
		listing.IsVerified = *update.IsVerified
	}
	if update.AgentID != nil {
		listing.AgentID = update.AgentID
	}
	if update.Latitude != nil {
		listing.Latitude = update.Latitude
	}
	if update.Longitude != nil {
		listing.Longitude = update.Longitude
	}
}
