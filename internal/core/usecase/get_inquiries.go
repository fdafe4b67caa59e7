package usecase

import (
	"context"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
)

type GetInquiriesUseCase struct {
	inquiries port.InquiryStoragePort
}

func NewGetInquiriesUseCase(inquiries port.InquiryStoragePort) *GetInquiriesUseCase {
	return &GetInquiriesUseCase{inquiries: inquiries}
}

// Execute возвращает заявки, видимые запрашивающему:
//   - landlord видит заявки по объявлениям, которыми владеет;
//   - agent видит заявки по объявлениям, где он назначен агентом;
//   - admin видит все заявки;
//   - любая другая роль получает пустой набор. Раньше ветка по умолчанию
//     отдавала полный набор, что раскрывало чужие заявки клиентам.
func (uc *GetInquiriesUseCase) Execute(ctx context.Context, requester domain.Claims) ([]domain.InquiryWithListing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetInquiries",
		"user_id":  requester.UserID.String(),
		"role":     requester.Role,
	})

	ucLogger.Info("Use case started", nil)

	var (
		result []domain.InquiryWithListing
		err    error
	)

	switch requester.Role {
	case domain.RoleLandlord:
		result, err = uc.inquiries.FindByListingOwner(ctx, requester.UserID)
	case domain.RoleAgent:
		result, err = uc.inquiries.FindByListingAgent(ctx, requester.UserID)
	case domain.RoleAdmin:
		result, err = uc.inquiries.FindAll(ctx)
	default:
		ucLogger.Warn("Role has no inquiry scope, returning empty set", nil)
		return []domain.InquiryWithListing{}, nil
	}

	if err != nil {
		ucLogger.Error("Repository failed to find inquiries", err, nil)
		return nil, err
	}
	if result == nil {
		result = []domain.InquiryWithListing{}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"found": len(result)})
	return result, nil
}
