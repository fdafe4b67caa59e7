package contracts

import (
	"encoding/json"
	"listings-service/internal/core/domain"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestValidateEventAcceptsDomainEvent(t *testing.T) {
	event := domain.ChangeEvent{
		Entity:     domain.EntityListings,
		Type:       domain.ChangeTypeUpdate,
		EntityID:   uuid.New(),
		Payload:    json.RawMessage(`{"title":"flat","price":900}`),
		OccurredAt: time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}

	if err := ValidateEvent("EntityChangeEvent", "1.0.0", body); err != nil {
		t.Errorf("ValidateEvent returned error: %v", err)
	}
}

func TestValidateEventRejections(t *testing.T) {
	validID := uuid.New().String()
	now := time.Now().UTC().Format(time.RFC3339)

	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing required field",
			body: `{"entity":"listings","type":"update","payload":{},"occurred_at":"` + now + `"}`,
		},
		{
			name: "unknown entity",
			body: `{"entity":"bookings","type":"update","entity_id":"` + validID + `","payload":{},"occurred_at":"` + now + `"}`,
		},
		{
			name: "unknown change type",
			body: `{"entity":"listings","type":"upsert","entity_id":"` + validID + `","payload":{},"occurred_at":"` + now + `"}`,
		},
		{
			name: "entity_id is not a uuid",
			body: `{"entity":"listings","type":"update","entity_id":"42","payload":{},"occurred_at":"` + now + `"}`,
		},
		{
			name: "extra property",
			body: `{"entity":"listings","type":"update","entity_id":"` + validID + `","payload":{},"occurred_at":"` + now + `","source":"backfill"}`,
		},
		{
			name: "not a json document",
			body: `entity=listings`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateEvent("EntityChangeEvent", "1.0.0", []byte(tt.body)); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidateEventUnknownSchema(t *testing.T) {
	if err := ValidateEvent("ListingPriceDropEvent", "1.0.0", []byte(`{}`)); err == nil {
		t.Error("expected an error for an unregistered event type")
	}
}

func TestGenerateKeyFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "events/entity-change/v1.json", want: "EntityChangeEvent/1.0.0"},
		{path: "events/entity-change/v2.json", want: "EntityChangeEvent/2.0.0"},
		{path: "events/malformed.json", want: ""},
	}

	for _, tt := range tests {
		if got := generateKeyFromPath(tt.path); got != tt.want {
			t.Errorf("generateKeyFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
