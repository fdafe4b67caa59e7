package postgres_adapter

import (
	"listings-service/internal/core/domain"
	"testing"

	"github.com/google/uuid"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestApplyListingFiltersEmpty(t *testing.T) {
	whereClause, orderClause, args := applyListingFilters(domain.ListingFilters{})

	if whereClause != "WHERE l.is_available = true" {
		t.Errorf("whereClause = %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("got %d args, want 0", len(args))
	}
	if orderClause != "ORDER BY l.created_at DESC, l.id ASC" {
		t.Errorf("orderClause = %q", orderClause)
	}
}

// bedrooms=0 - настоящий фильтр, указатель на ноль не должен теряться.
func TestApplyListingFiltersZeroBedrooms(t *testing.T) {
	whereClause, _, args := applyListingFilters(domain.ListingFilters{Bedrooms: intPtr(0)})

	want := "WHERE l.is_available = true AND l.bedrooms = $1"
	if whereClause != want {
		t.Errorf("whereClause = %q, want %q", whereClause, want)
	}
	if len(args) != 1 || args[0] != 0 {
		t.Errorf("args = %v, want [0]", args)
	}
}

func TestApplyListingFiltersPriceRange(t *testing.T) {
	whereClause, _, args := applyListingFilters(domain.ListingFilters{
		MinPrice: floatPtr(100),
		MaxPrice: floatPtr(900),
	})

	want := "WHERE l.is_available = true AND l.price >= $1 AND l.price <= $2"
	if whereClause != want {
		t.Errorf("whereClause = %q, want %q", whereClause, want)
	}
	if len(args) != 2 || args[0] != 100.0 || args[1] != 900.0 {
		t.Errorf("args = %v, want [100 900]", args)
	}
}

// Поиск добавляет одно OR-условие и занимает три последовательных плейсхолдера.
func TestApplyListingFiltersSearch(t *testing.T) {
	whereClause, _, args := applyListingFilters(domain.ListingFilters{
		Category: "apartment",
		Search:   "river",
	})

	want := "WHERE l.is_available = true AND l.category = $1" +
		" AND (l.title ILIKE $2 OR l.location ILIKE $3 OR l.description ILIKE $4)"
	if whereClause != want {
		t.Errorf("whereClause = %q, want %q", whereClause, want)
	}
	if len(args) != 4 {
		t.Fatalf("got %d args, want 4", len(args))
	}
	for _, i := range []int{1, 2, 3} {
		if args[i] != "%river%" {
			t.Errorf("args[%d] = %v, want %%river%%", i, args[i])
		}
	}
}

func TestApplyListingFiltersCombined(t *testing.T) {
	agentID := uuid.New()
	whereClause, _, args := applyListingFilters(domain.ListingFilters{
		PriceType:  "rent",
		AgentID:    &agentID,
		Bathrooms:  intPtr(2),
		IsVerified: boolPtr(true),
		MinArea:    floatPtr(45),
	})

	want := "WHERE l.is_available = true AND l.price_type = $1 AND l.agent_id = $2" +
		" AND l.bathrooms = $3 AND l.is_verified = $4 AND l.area >= $5"
	if whereClause != want {
		t.Errorf("whereClause = %q, want %q", whereClause, want)
	}
	if len(args) != 5 {
		t.Fatalf("got %d args, want 5", len(args))
	}
	if args[1] != agentID {
		t.Errorf("args[1] = %v, want %v", args[1], agentID)
	}
}

func TestBuildOrderClause(t *testing.T) {
	tests := []struct {
		name    string
		filters domain.ListingFilters
		want    string
	}{
		{
			name:    "default is newest first",
			filters: domain.ListingFilters{},
			want:    "ORDER BY l.created_at DESC, l.id ASC",
		},
		{
			name:    "price ascending",
			filters: domain.ListingFilters{OrderBy: "price", Descending: boolPtr(false)},
			want:    "ORDER BY l.price ASC, l.id ASC",
		},
		{
			name:    "rating keeps default direction",
			filters: domain.ListingFilters{OrderBy: "rating"},
			want:    "ORDER BY l.rating DESC, l.id ASC",
		},
		{
			name:    "unknown column falls back to created_at",
			filters: domain.ListingFilters{OrderBy: "owner_id; DROP TABLE listings"},
			want:    "ORDER BY l.created_at DESC, l.id ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildOrderClause(tt.filters); got != tt.want {
				t.Errorf("buildOrderClause() = %q, want %q", got, tt.want)
			}
		})
	}
}
