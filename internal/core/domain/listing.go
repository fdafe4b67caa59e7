package domain

import (
	"time"

	"github.com/google/uuid"
)

// PriceType - тип сделки по объявлению
type PriceType string

const (
	PriceTypeRent PriceType = "rent"
	PriceTypeSale PriceType = "sale"
)

// Valid проверяет, что тип сделки один из поддерживаемых
func (p PriceType) Valid() bool {
	return p == PriceTypeRent || p == PriceTypeSale
}

// Listing - основная доменная сущность: объявление о недвижимости
type Listing struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	PriceType   PriceType  `json:"price_type"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Bedrooms    int        `json:"bedrooms"`
	Bathrooms   int        `json:"bathrooms"`
	Area        *float64   `json:"area,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
	Images      []string   `json:"images"`
	IsAvailable bool       `json:"is_available"`
	IsFeatured  bool       `json:"is_featured"`
	IsVerified  bool       `json:"is_verified"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	AgentID     *uuid.UUID `json:"agent_id,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Geohash     *string    `json:"geohash,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewListing - конструктор нового объявления. Новое объявление сразу доступно
// для показа в общей выдаче.
func NewListing(title, description string, price float64, priceType PriceType, category, location string, bedrooms, bathrooms int, ownerID uuid.UUID) *Listing {
	now := time.Now().UTC()
	return &Listing{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Price:       price,
		PriceType:   priceType,
		Category:    category,
		Location:    location,
		Bedrooms:    bedrooms,
		Bathrooms:   bathrooms,
		Images:      []string{},
		IsAvailable: true,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ListingPreview - облегченная проекция объявления для вложенных ответов
// (например, в списке заявок)
type ListingPreview struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	Price     float64   `json:"price"`
	PriceType PriceType `json:"price_type"`
	Images    []string  `json:"images"`
}

// ListingUpdate - набор изменяемых атрибутов объявления. Поля-указатели:
// nil означает "не менять". Снятие объявления с публикации делается через
// IsAvailable=false, операции удаления у объявлений нет.
type ListingUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	PriceType   *PriceType
	Category    *string
	Location    *string
	Bedrooms    *int
	Bathrooms   *int
	Area        *float64
	Images      []string
	IsAvailable *bool
	IsFeatured  *bool
	IsVerified  *bool
	AgentID     *uuid.UUID
	Latitude    *float64
	Longitude   *float64
}

// ListingFilters - набор необязательных критериев поиска по объявлениям.
// Числовые и булевы фильтры заданы указателями: отсутствие значения означает
// "фильтр не задан", а не нулевое значение (bedrooms=0 - настоящий фильтр).
type ListingFilters struct {
	Category   string
	PriceType  string
	Bedrooms   *int
	Bathrooms  *int
	IsFeatured *bool
	IsVerified *bool
	MinPrice   *float64
	MaxPrice   *float64
	MinArea    *float64
	MaxArea    *float64
	Search     string
	AgentID    *uuid.UUID
	OrderBy    string // price | created_at | rating | area (по умолчанию created_at)
	Descending *bool  // по умолчанию true
	Limit      *int
	Offset     *int
}

// PaginatedListings - страница результатов поиска
type PaginatedListings struct {
	Listings     []Listing `json:"listings"`
	TotalCount   int       `json:"total_count"`
	CurrentPage  int       `json:"current_page"`
	ItemsPerPage int       `json:"items_per_page"`
}
