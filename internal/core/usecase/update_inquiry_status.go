package usecase

import (
	"context"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"

	"github.com/google/uuid"
)

type UpdateInquiryStatusUseCase struct {
	inquiries port.InquiryStoragePort
	listings  port.ListingStoragePort
}

func NewUpdateInquiryStatusUseCase(inquiries port.InquiryStoragePort, listings port.ListingStoragePort) *UpdateInquiryStatusUseCase {
	return &UpdateInquiryStatusUseCase{inquiries: inquiries, listings: listings}
}

// Execute переводит заявку в один из трех определенных статусов.
// Менять статус могут владелец объявления, его агент и администратор.
func (uc *UpdateInquiryStatusUseCase) Execute(ctx context.Context, requester domain.Claims, inquiryID uuid.UUID, status domain.InquiryStatus) (*domain.Inquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateInquiryStatus",
		"inquiry_id": inquiryID.String(),
		"new_status": status,
		"user_id":    requester.UserID.String(),
	})

	ucLogger.Info("Use case started", nil)

	if !status.Valid() {
		ucLogger.Warn("Unknown inquiry status requested", nil)
		return nil, domain.ErrInvalidStatus
	}

	inquiry, err := uc.inquiries.GetByID(ctx, inquiryID)
	if err != nil {
		ucLogger.Error("Repository failed to find inquiry", err, nil)
		return nil, err
	}

	listing, err := uc.listings.GetByID(ctx, inquiry.ListingID)
	if err != nil {
		ucLogger.Error("Repository failed to find listing of inquiry", err, nil)
		return nil, err
	}

	if !canManageListing(requester, listing) {
		ucLogger.Warn("Requester is not allowed to manage this inquiry", nil)
		return nil, domain.ErrForbidden
	}

	updated, err := uc.inquiries.UpdateStatus(ctx, inquiryID, status)
	if err != nil {
		ucLogger.Error("Repository failed to update inquiry status", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return updated, nil
}
