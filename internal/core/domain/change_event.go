package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ChangeType - тип изменения записи
type ChangeType string

const (
	ChangeTypeInsert ChangeType = "insert"
	ChangeTypeUpdate ChangeType = "update"
	ChangeTypeDelete ChangeType = "delete"
)

// Имена коллекций, по которым рассылаются события изменений
const (
	EntityListings = "listings"
	EntityProfiles = "profiles"
)

// ChangeEvent - событие изменения записи в одной из коллекций.
// Payload содержит запись ПОСЛЕ изменения.
type ChangeEvent struct {
	Entity     string          `json:"entity"`
	Type       ChangeType      `json:"type"`
	EntityID   uuid.UUID       `json:"entity_id"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}
