package usecase

import (
	"context"
	"errors"
	"listings-service/internal/core/domain"
	"testing"

	"github.com/google/uuid"
)

func TestUpdateInquiryStatus(t *testing.T) {
	ownerID := uuid.New()
	agentID := uuid.New()
	strangerID := uuid.New()
	inquiryID := uuid.New()
	listingID := uuid.New()

	inquiry := &domain.Inquiry{ID: inquiryID, ListingID: listingID, Status: domain.InquiryStatusPending}
	listing := &domain.Listing{ID: listingID, OwnerID: ownerID, AgentID: &agentID}

	newStorage := func() (*fakeInquiryStorage, *fakeListingStorage) {
		inquiries := &fakeInquiryStorage{
			GetByIDFn: func(_ context.Context, id uuid.UUID) (*domain.Inquiry, error) {
				if id != inquiryID {
					return nil, domain.ErrInquiryNotFound
				}
				copied := *inquiry
				return &copied, nil
			},
			UpdateStatusFn: func(_ context.Context, id uuid.UUID, status domain.InquiryStatus) (*domain.Inquiry, error) {
				updated := *inquiry
				updated.Status = status
				return &updated, nil
			},
		}
		listings := &fakeListingStorage{
			GetByIDFn: func(_ context.Context, id uuid.UUID) (*domain.Listing, error) {
				if id != listingID {
					return nil, domain.ErrListingNotFound
				}
				copied := *listing
				return &copied, nil
			},
		}
		return inquiries, listings
	}

	tests := []struct {
		name    string
		claims  domain.Claims
		status  domain.InquiryStatus
		wantErr error
	}{
		{name: "owner can respond", claims: domain.Claims{UserID: ownerID, Role: domain.RoleLandlord}, status: domain.InquiryStatusResponded},
		{name: "assigned agent can close", claims: domain.Claims{UserID: agentID, Role: domain.RoleAgent}, status: domain.InquiryStatusClosed},
		{name: "admin can manage any inquiry", claims: domain.Claims{UserID: strangerID, Role: domain.RoleAdmin}, status: domain.InquiryStatusClosed},
		{name: "stranger is rejected", claims: domain.Claims{UserID: strangerID, Role: domain.RoleLandlord}, status: domain.InquiryStatusClosed, wantErr: domain.ErrForbidden},
		{name: "unknown status is rejected", claims: domain.Claims{UserID: ownerID, Role: domain.RoleLandlord}, status: domain.InquiryStatus("archived"), wantErr: domain.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inquiries, listings := newStorage()
			uc := NewUpdateInquiryStatusUseCase(inquiries, listings)

			updated, err := uc.Execute(context.Background(), tt.claims, inquiryID, tt.status)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Execute error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute returned error: %v", err)
			}
			if updated.Status != tt.status {
				t.Errorf("status = %q, want %q", updated.Status, tt.status)
			}
		})
	}
}

func TestUpdateInquiryStatusUnknownInquiry(t *testing.T) {
	inquiries := &fakeInquiryStorage{
		GetByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.Inquiry, error) {
			return nil, domain.ErrInquiryNotFound
		},
	}

	uc := NewUpdateInquiryStatusUseCase(inquiries, &fakeListingStorage{})
	claims := domain.Claims{UserID: uuid.New(), Role: domain.RoleAdmin}
	if _, err := uc.Execute(context.Background(), claims, uuid.New(), domain.InquiryStatusClosed); !errors.Is(err, domain.ErrInquiryNotFound) {
		t.Fatalf("Execute error = %v, want ErrInquiryNotFound", err)
	}
}
