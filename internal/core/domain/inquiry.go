package domain

import (
	"time"

	"github.com/google/uuid"
)

// InquiryStatus - перечисление для статусов заявки
type InquiryStatus string

const (
	InquiryStatusPending   InquiryStatus = "pending"
	InquiryStatusResponded InquiryStatus = "responded"
	InquiryStatusClosed    InquiryStatus = "closed"
)

// Valid проверяет, что статус один из трех определенных
func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusPending, InquiryStatusResponded, InquiryStatusClosed:
		return true
	}
	return false
}

// Inquiry - заявка заинтересованного пользователя по объявлению.
// Заявки никогда не удаляются, меняется только статус.
type Inquiry struct {
	ID         uuid.UUID     `json:"id"`
	ListingID  uuid.UUID     `json:"listing_id"`
	InquirerID uuid.UUID     `json:"inquirer_id"`
	Message    string        `json:"message"`
	Status     InquiryStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// NewInquiry - конструктор новой заявки со стартовым статусом pending
func NewInquiry(listingID, inquirerID uuid.UUID, message string) *Inquiry {
	now := time.Now().UTC()
	return &Inquiry{
		ID:         uuid.New(),
		ListingID:  listingID,
		InquirerID: inquirerID,
		Message:    message,
		Status:     InquiryStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// InquiryWithListing - заявка вместе с проекцией связанного объявления
type InquiryWithListing struct {
	Inquiry `json:"inquiry"`
	Listing ListingPreview `json:"listing"`
}
