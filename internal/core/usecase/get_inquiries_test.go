package usecase

import (
	"context"
	"listings-service/internal/core/domain"
	"testing"

	"github.com/google/uuid"
)

func TestGetInquiriesRoleScoping(t *testing.T) {
	userID := uuid.New()

	sample := []domain.InquiryWithListing{
		{Inquiry: domain.Inquiry{ID: uuid.New(), Message: "any"}},
	}

	var calledMethod string
	storage := &fakeInquiryStorage{
		FindAllFn: func(_ context.Context) ([]domain.InquiryWithListing, error) {
			calledMethod = "FindAll"
			return sample, nil
		},
		FindByListingOwnerFn: func(_ context.Context, ownerID uuid.UUID) ([]domain.InquiryWithListing, error) {
			calledMethod = "FindByListingOwner"
			if ownerID != userID {
				t.Errorf("owner scope used wrong ID: %s", ownerID)
			}
			return sample, nil
		},
		FindByListingAgentFn: func(_ context.Context, agentID uuid.UUID) ([]domain.InquiryWithListing, error) {
			calledMethod = "FindByListingAgent"
			if agentID != userID {
				t.Errorf("agent scope used wrong ID: %s", agentID)
			}
			return sample, nil
		},
	}

	uc := NewGetInquiriesUseCase(storage)

	tests := []struct {
		role       domain.Role
		wantMethod string
		wantCount  int
	}{
		{role: domain.RoleLandlord, wantMethod: "FindByListingOwner", wantCount: 1},
		{role: domain.RoleAgent, wantMethod: "FindByListingAgent", wantCount: 1},
		{role: domain.RoleAdmin, wantMethod: "FindAll", wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			calledMethod = ""
			result, err := uc.Execute(context.Background(), domain.Claims{UserID: userID, Role: tt.role})
			if err != nil {
				t.Fatalf("Execute returned error: %v", err)
			}
			if calledMethod != tt.wantMethod {
				t.Errorf("called %q, want %q", calledMethod, tt.wantMethod)
			}
			if len(result) != tt.wantCount {
				t.Errorf("got %d inquiries, want %d", len(result), tt.wantCount)
			}
		})
	}
}

// Роль без области видимости получает пустой набор, а не полный список.
func TestGetInquiriesDeniesUnscopedRoles(t *testing.T) {
	storage := &fakeInquiryStorage{
		FindAllFn: func(_ context.Context) ([]domain.InquiryWithListing, error) {
			t.Fatal("FindAll must not be called for unscoped roles")
			return nil, nil
		},
	}

	uc := NewGetInquiriesUseCase(storage)

	for _, role := range []domain.Role{domain.RoleClient, domain.Role("unknown")} {
		result, err := uc.Execute(context.Background(), domain.Claims{UserID: uuid.New(), Role: role})
		if err != nil {
			t.Fatalf("role %q: Execute returned error: %v", role, err)
		}
		if result == nil {
			t.Fatalf("role %q: result must be an empty slice, not nil", role)
		}
		if len(result) != 0 {
			t.Errorf("role %q: got %d inquiries, want empty set", role, len(result))
		}
	}
}

func TestGetInquiriesNilResultBecomesEmptySlice(t *testing.T) {
	storage := &fakeInquiryStorage{
		FindAllFn: func(_ context.Context) ([]domain.InquiryWithListing, error) {
			return nil, nil
		},
	}

	uc := NewGetInquiriesUseCase(storage)
	result, err := uc.Execute(context.Background(), domain.Claims{UserID: uuid.New(), Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result == nil {
		t.Fatal("result must be an empty slice, not nil")
	}
}
