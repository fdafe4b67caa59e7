package usecase

import (
	"context"
	"fmt"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"

	"github.com/google/uuid"
)

type CreateInquiryUseCase struct {
	inquiries port.InquiryStoragePort
	listings  port.ListingStoragePort
}

func NewCreateInquiryUseCase(inquiries port.InquiryStoragePort, listings port.ListingStoragePort) *CreateInquiryUseCase {
	return &CreateInquiryUseCase{inquiries: inquiries, listings: listings}
}

// Execute создает заявку по объявлению от имени запрашивающего.
func (uc *CreateInquiryUseCase) Execute(ctx context.Context, requester domain.Claims, listingID uuid.UUID, message string) (*domain.Inquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "CreateInquiry",
		"listing_id": listingID.String(),
		"user_id":    requester.UserID.String(),
	})

	ucLogger.Info("Use case started", nil)

	if message == "" {
		return nil, fmt.Errorf("inquiry message cannot be empty")
	}

	// Проверяем, что объявление существует, до создания заявки.
	if _, err := uc.listings.GetByID(ctx, listingID); err != nil {
		ucLogger.Error("Repository failed to find listing for inquiry", err, nil)
		return nil, err
	}

	inquiry := domain.NewInquiry(listingID, requester.UserID, message)
	if err := uc.inquiries.Create(ctx, inquiry); err != nil {
		ucLogger.Error("Repository failed to create inquiry", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"inquiry_id": inquiry.ID.String()})
	return inquiry, nil
}
