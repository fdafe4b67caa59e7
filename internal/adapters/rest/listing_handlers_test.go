package rest

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestParseListingFilters(t *testing.T) {
	agentID := uuid.New()
	target := "/api/v1/listings?category=apartment&price_type=rent&bedrooms=0&is_featured=true" +
		"&min_price=150.5&search=center&order_by=price&desc=false&limit=10&offset=30&agent_id=" + agentID.String()

	filters, err := parseListingFilters(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("parseListingFilters returned error: %v", err)
	}

	if filters.Category != "apartment" || filters.PriceType != "rent" || filters.Search != "center" {
		t.Errorf("unexpected string filters: %+v", filters)
	}
	if filters.Bedrooms == nil || *filters.Bedrooms != 0 {
		t.Error("bedrooms=0 must produce a non-nil zero filter")
	}
	if filters.IsFeatured == nil || !*filters.IsFeatured {
		t.Error("is_featured must be parsed as true")
	}
	if filters.MinPrice == nil || *filters.MinPrice != 150.5 {
		t.Errorf("min_price parsed as %v, want 150.5", filters.MinPrice)
	}
	if filters.MaxPrice != nil || filters.Bathrooms != nil || filters.IsVerified != nil {
		t.Error("absent parameters must stay nil")
	}
	if filters.OrderBy != "price" {
		t.Errorf("order_by = %q, want price", filters.OrderBy)
	}
	if filters.Descending == nil || *filters.Descending {
		t.Error("desc=false must be parsed as explicit ascending order")
	}
	if filters.Limit == nil || *filters.Limit != 10 {
		t.Errorf("limit parsed as %v, want 10", filters.Limit)
	}
	if filters.Offset == nil || *filters.Offset != 30 {
		t.Errorf("offset parsed as %v, want 30", filters.Offset)
	}
	if filters.AgentID == nil || *filters.AgentID != agentID {
		t.Errorf("agent_id parsed as %v, want %s", filters.AgentID, agentID)
	}
}

func TestParseListingFiltersEmptyQuery(t *testing.T) {
	filters, err := parseListingFilters(httptest.NewRequest("GET", "/api/v1/listings", nil))
	if err != nil {
		t.Fatalf("parseListingFilters returned error: %v", err)
	}

	if filters.Category != "" || filters.Search != "" {
		t.Errorf("unexpected string filters: %+v", filters)
	}
	if filters.Bedrooms != nil || filters.MinPrice != nil || filters.IsFeatured != nil ||
		filters.Limit != nil || filters.Offset != nil || filters.AgentID != nil {
		t.Error("all optional filters must stay nil for an empty query")
	}
}

func TestParseListingFiltersInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "non-integer bedrooms", query: "bedrooms=two"},
		{name: "non-numeric min_price", query: "min_price=cheap"},
		{name: "non-boolean is_verified", query: "is_verified=yep"},
		{name: "non-integer limit", query: "limit=ten"},
		{name: "malformed agent_id", query: "agent_id=not-a-uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/listings?"+tt.query, nil)
			if _, err := parseListingFilters(r); err == nil {
				t.Error("expected a parse error")
			}
		})
	}
}
