package usecase

import (
	"context"
	"listings-service/internal/core/domain"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestFindListingsWindow(t *testing.T) {
	tests := []struct {
		name       string
		limit      *int
		offset     *int
		wantLimit  int
		wantOffset int
	}{
		{name: "no window defaults to first page", limit: nil, offset: nil, wantLimit: 20, wantOffset: 0},
		{name: "offset alone keeps default page size", limit: nil, offset: intPtr(40), wantLimit: 20, wantOffset: 40},
		{name: "explicit limit is respected", limit: intPtr(5), offset: intPtr(10), wantLimit: 5, wantOffset: 10},
		{name: "limit above cap is clamped", limit: intPtr(500), offset: nil, wantLimit: 100, wantOffset: 0},
		{name: "non-positive limit falls back to default", limit: intPtr(0), offset: nil, wantLimit: 20, wantOffset: 0},
		{name: "negative offset is ignored", limit: nil, offset: intPtr(-3), wantLimit: 20, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit, gotOffset int
			storage := &fakeListingStorage{
				FindWithFiltersFn: func(_ context.Context, _ domain.ListingFilters, limit, offset int) (*domain.PaginatedListings, error) {
					gotLimit, gotOffset = limit, offset
					return &domain.PaginatedListings{Listings: []domain.Listing{}}, nil
				},
			}

			uc := NewFindListingsUseCase(storage)
			filters := domain.ListingFilters{Limit: tt.limit, Offset: tt.offset}
			if _, err := uc.Execute(context.Background(), filters); err != nil {
				t.Fatalf("Execute returned error: %v", err)
			}

			if gotLimit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", gotLimit, tt.wantLimit)
			}
			if gotOffset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", gotOffset, tt.wantOffset)
			}
		})
	}
}
