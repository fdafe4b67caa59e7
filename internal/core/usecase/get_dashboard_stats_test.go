package usecase

import (
	"context"
	"errors"
	"listings-service/internal/core/domain"
	"testing"

	"github.com/google/uuid"
)

func TestGetDashboardStatsAdmin(t *testing.T) {
	listings := &fakeListingStorage{
		CountAllFn: func(_ context.Context) (int64, error) { return 12, nil },
	}
	profiles := &fakeProfileStorage{
		CountAllFn: func(_ context.Context) (int64, error) { return 7, nil },
	}
	inquiries := &fakeInquiryStorage{
		CountAllFn: func(_ context.Context) (int64, error) { return 3, nil },
	}

	uc := NewGetDashboardStatsUseCase(listings, profiles, inquiries, &fakeViewEventStorage{})
	stats, err := uc.Execute(context.Background(), domain.Claims{UserID: uuid.New(), Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if stats.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want admin", stats.Role)
	}
	if stats.Admin == nil {
		t.Fatal("admin branch must be populated")
	}
	if stats.Agent != nil || stats.Landlord != nil || stats.Client != nil {
		t.Error("only the admin branch must be populated")
	}
	if stats.Admin.TotalListings != 12 || stats.Admin.TotalProfiles != 7 || stats.Admin.TotalInquiries != 3 {
		t.Errorf("unexpected admin counters: %+v", stats.Admin)
	}
}

func TestGetDashboardStatsLandlordChain(t *testing.T) {
	ownerID := uuid.New()
	ownedIDs := []uuid.UUID{uuid.New(), uuid.New()}

	listings := &fakeListingStorage{
		CountByOwnerFn: func(_ context.Context, id uuid.UUID) (int64, error) {
			if id != ownerID {
				t.Errorf("CountByOwner got %s, want %s", id, ownerID)
			}
			return 2, nil
		},
		IDsByOwnerFn: func(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
			return ownedIDs, nil
		},
	}
	inquiries := &fakeInquiryStorage{
		CountByListingOwnerFn: func(_ context.Context, _ uuid.UUID) (int64, error) { return 5, nil },
	}
	views := &fakeViewEventStorage{
		CountForListingsFn: func(_ context.Context, ids []uuid.UUID) (int64, error) {
			if len(ids) != len(ownedIDs) {
				t.Errorf("CountForListings got %d IDs, want %d", len(ids), len(ownedIDs))
			}
			return 41, nil
		},
	}

	uc := NewGetDashboardStatsUseCase(listings, &fakeProfileStorage{}, inquiries, views)
	stats, err := uc.Execute(context.Background(), domain.Claims{UserID: ownerID, Role: domain.RoleLandlord})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if stats.Landlord == nil {
		t.Fatal("landlord branch must be populated")
	}
	if stats.Landlord.OwnedListings != 2 || stats.Landlord.ReceivedInquiries != 5 || stats.Landlord.ListingViews != 41 {
		t.Errorf("unexpected landlord counters: %+v", stats.Landlord)
	}
}

// Владелец без объявлений получает 0 просмотров без запроса к счетчику.
func TestGetDashboardStatsLandlordWithoutListings(t *testing.T) {
	listings := &fakeListingStorage{
		CountByOwnerFn: func(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil },
		IDsByOwnerFn:   func(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) { return nil, nil },
	}
	inquiries := &fakeInquiryStorage{
		CountByListingOwnerFn: func(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil },
	}
	views := &fakeViewEventStorage{
		CountForListingsFn: func(_ context.Context, _ []uuid.UUID) (int64, error) {
			t.Error("CountForListings must not be called for an empty ID set")
			return 0, nil
		},
	}

	uc := NewGetDashboardStatsUseCase(listings, &fakeProfileStorage{}, inquiries, views)
	stats, err := uc.Execute(context.Background(), domain.Claims{UserID: uuid.New(), Role: domain.RoleLandlord})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if stats.Landlord.ListingViews != 0 {
		t.Errorf("ListingViews = %d, want 0", stats.Landlord.ListingViews)
	}
}

func TestGetDashboardStatsClient(t *testing.T) {
	viewerID := uuid.New()
	views := &fakeViewEventStorage{
		CountByViewerFn: func(_ context.Context, id uuid.UUID) (int64, error) {
			if id != viewerID {
				t.Errorf("CountByViewer got %s, want %s", id, viewerID)
			}
			return 9, nil
		},
	}

	uc := NewGetDashboardStatsUseCase(&fakeListingStorage{}, &fakeProfileStorage{}, &fakeInquiryStorage{}, views)
	stats, err := uc.Execute(context.Background(), domain.Claims{UserID: viewerID, Role: domain.RoleClient})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if stats.Client == nil {
		t.Fatal("client branch must be populated")
	}
	if stats.Client.ViewedListings != 9 {
		t.Errorf("ViewedListings = %d, want 9", stats.Client.ViewedListings)
	}
}

func TestGetDashboardStatsPropagatesQueryError(t *testing.T) {
	wantErr := errors.New("count failed")
	listings := &fakeListingStorage{
		CountAllFn: func(_ context.Context) (int64, error) { return 0, wantErr },
	}
	profiles := &fakeProfileStorage{
		CountAllFn: func(_ context.Context) (int64, error) { return 0, nil },
	}
	inquiries := &fakeInquiryStorage{
		CountAllFn: func(_ context.Context) (int64, error) { return 0, nil },
	}

	uc := NewGetDashboardStatsUseCase(listings, profiles, inquiries, &fakeViewEventStorage{})
	if _, err := uc.Execute(context.Background(), domain.Claims{UserID: uuid.New(), Role: domain.RoleAdmin}); !errors.Is(err, wantErr) {
		t.Fatalf("Execute error = %v, want %v", err, wantErr)
	}
}
