package usecase

import (
	"context"
	"errors"
	"listings-service/internal/core/domain"
	"testing"

	"github.com/google/uuid"
)

func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestUpdateListingAccess(t *testing.T) {
	ownerID := uuid.New()
	agentID := uuid.New()
	strangerID := uuid.New()
	listingID := uuid.New()

	newStorage := func() *fakeListingStorage {
		return &fakeListingStorage{
			GetByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.Listing, error) {
				return &domain.Listing{
					ID:        listingID,
					Title:     "old title",
					Price:     500,
					PriceType: domain.PriceTypeRent,
					OwnerID:   ownerID,
					AgentID:   &agentID,
				}, nil
			},
			UpdateFn: func(_ context.Context, listing *domain.Listing) (*domain.Listing, error) {
				return listing, nil
			},
		}
	}

	tests := []struct {
		name    string
		claims  domain.Claims
		wantErr error
	}{
		{name: "owner can update", claims: domain.Claims{UserID: ownerID, Role: domain.RoleLandlord}},
		{name: "assigned agent can update", claims: domain.Claims{UserID: agentID, Role: domain.RoleAgent}},
		{name: "admin can update", claims: domain.Claims{UserID: strangerID, Role: domain.RoleAdmin}},
		{name: "stranger is rejected", claims: domain.Claims{UserID: strangerID, Role: domain.RoleAgent}, wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := &fakeEventQueue{}
			uc := NewUpdateListingUseCase(newStorage(), queue)

			update := domain.ListingUpdate{Title: strPtr("new title")}
			updated, err := uc.Execute(context.Background(), tt.claims, listingID, update)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Execute error = %v, want %v", err, tt.wantErr)
				}
				if len(queue.published) != 0 {
					t.Error("no event must be published on rejected update")
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute returned error: %v", err)
			}
			if updated.Title != "new title" {
				t.Errorf("title = %q, want %q", updated.Title, "new title")
			}
			if len(queue.published) != 1 {
				t.Fatalf("published %d events, want 1", len(queue.published))
			}
			event := queue.published[0]
			if event.Entity != domain.EntityListings || event.Type != domain.ChangeTypeUpdate || event.EntityID != listingID {
				t.Errorf("unexpected change event: %+v", event)
			}
		})
	}
}

// Поля со значением nil не трогают существующую запись.
func TestApplyListingUpdatePartial(t *testing.T) {
	agentID := uuid.New()
	listing := &domain.Listing{
		Title:       "house in the hills",
		Description: "quiet place",
		Price:       1200,
		PriceType:   domain.PriceTypeRent,
		Bedrooms:    3,
		IsAvailable: true,
		AgentID:     &agentID,
	}

	applyListingUpdate(listing, domain.ListingUpdate{
		Price:       floatPtr(1500),
		IsAvailable: boolPtr(false),
	})

	if listing.Price != 1500 {
		t.Errorf("price = %v, want 1500", listing.Price)
	}
	if listing.IsAvailable {
		t.Error("listing must be unpublished")
	}
	if listing.Title != "house in the hills" || listing.Description != "quiet place" {
		t.Error("untouched fields must keep their values")
	}
	if listing.Bedrooms != 3 {
		t.Errorf("bedrooms = %d, want 3", listing.Bedrooms)
	}
	if listing.AgentID == nil || *listing.AgentID != agentID {
		t.Error("agent assignment must keep its value")
	}
}

func TestCreateListingRoleGate(t *testing.T) {
	queue := &fakeEventQueue{}
	storage := &fakeListingStorage{
		CreateFn: func(_ context.Context, _ *domain.Listing) error { return nil },
	}
	uc := NewCreateListingUseCase(storage, queue)

	requester := domain.Claims{UserID: uuid.New(), Role: domain.RoleClient}
	listing := domain.NewListing("flat", "", 900, domain.PriceTypeRent, "apartment", "Minsk", 2, 1, uuid.Nil)

	if _, err := uc.Execute(context.Background(), requester, listing); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Execute error = %v, want ErrForbidden", err)
	}
	if len(queue.published) != 0 {
		t.Error("no event must be published on rejected create")
	}
}

// Агент, публикующий объявление, становится его агентом, если агент не задан.
func TestCreateListingAgentSelfAssignment(t *testing.T) {
	agentID := uuid.New()
	queue := &fakeEventQueue{}
	storage := &fakeListingStorage{
		CreateFn: func(_ context.Context, _ *domain.Listing) error { return nil },
	}
	uc := NewCreateListingUseCase(storage, queue)

	requester := domain.Claims{UserID: agentID, Role: domain.RoleAgent}
	listing := domain.NewListing("flat", "", 900, domain.PriceTypeRent, "apartment", "Minsk", 2, 1, uuid.Nil)

	created, err := uc.Execute(context.Background(), requester, listing)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if created.OwnerID != agentID {
		t.Errorf("owner = %s, want requester %s", created.OwnerID, agentID)
	}
	if created.AgentID == nil || *created.AgentID != agentID {
		t.Error("agent must be self-assigned")
	}
	if len(queue.published) != 1 {
		t.Fatalf("published %d events, want 1", len(queue.published))
	}
	if queue.published[0].Type != domain.ChangeTypeInsert {
		t.Errorf("event type = %q, want insert", queue.published[0].Type)
	}
}
