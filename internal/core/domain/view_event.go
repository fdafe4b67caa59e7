package domain

import (
	"time"

	"github.com/google/uuid"
)

// ViewEvent - факт просмотра объявления. Запись только добавляется
// (дедупликация по паре объявление+адрес) и читается только в агрегатах.
type ViewEvent struct {
	ID        uuid.UUID  `json:"id"`
	ListingID uuid.UUID  `json:"listing_id"`
	IPAddress string     `json:"ip_address"`
	UserAgent string     `json:"user_agent"`
	ViewerID  *uuid.UUID `json:"viewer_id,omitempty"` // заполняется, если просмотр был аутентифицирован
	CreatedAt time.Time  `json:"created_at"`
}

// NewViewEvent - конструктор события просмотра
func NewViewEvent(listingID uuid.UUID, ipAddress, userAgent string, viewerID *uuid.UUID) *ViewEvent {
	return &ViewEvent{
		ID:        uuid.New(),
		ListingID: listingID,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		ViewerID:  viewerID,
		CreatedAt: time.Now().UTC(),
	}
}
