package usecase

import (
	"context"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type FindListingsUseCase struct {
	storage port.ListingStoragePort
}

func NewFindListingsUseCase(storage port.ListingStoragePort) *FindListingsUseCase {
	return &FindListingsUseCase{storage: storage}
}

func (uc *FindListingsUseCase) Execute(ctx context.Context, filters domain.ListingFilters) (*domain.PaginatedListings, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindListings",
	})

	ucLogger.Info("Use case started", nil)

	// Окно выдачи: отсутствующий limit означает страницу в 20 записей,
	// в том числе когда задан только offset.
	limit := defaultPageSize
	if filters.Limit != nil && *filters.Limit > 0 {
		limit = *filters.Limit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := 0
	if filters.Offset != nil && *filters.Offset > 0 {
		offset = *filters.Offset
	}

	result, err := uc.storage.FindWithFilters(ctx, filters, limit, offset)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Listings),
	})

	return result, nil
}
