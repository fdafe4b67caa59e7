package rest

import (
	"listings-service/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

type CreateListingRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	PriceType   string     `json:"price_type"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Bedrooms    int        `json:"bedrooms"`
	Bathrooms   int        `json:"bathrooms"`
	Area        *float64   `json:"area,omitempty"`
	Images      []string   `json:"images,omitempty"`
	IsFeatured  *bool      `json:"is_featured,omitempty"`
	AgentID     *uuid.UUID `json:"agent_id,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
}

type UpdateListingRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	PriceType   *string    `json:"price_type,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Bedrooms    *int       `json:"bedrooms,omitempty"`
	Bathrooms   *int       `json:"bathrooms,omitempty"`
	Area        *float64   `json:"area,omitempty"`
	Images      []string   `json:"images,omitempty"`
	IsAvailable *bool      `json:"is_available,omitempty"`
	IsFeatured  *bool      `json:"is_featured,omitempty"`
	IsVerified  *bool      `json:"is_verified,omitempty"`
	AgentID     *uuid.UUID `json:"agent_id,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
}

type CreateInquiryRequest struct {
	Message string `json:"message"`
}

type UpdateInquiryStatusRequest struct {
	Status domain.InquiryStatus `json:"status"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name,omitempty"`
	Company   *string `json:"company,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// ListingResponse - DTO для ответа с одним объявлением
type ListingResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	PriceType   string    `json:"price_type"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	Area        *float64  `json:"area,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	Images      []string  `json:"images"`
	IsAvailable bool      `json:"is_available"`
	IsFeatured  bool      `json:"is_featured"`
	IsVerified  bool      `json:"is_verified"`
	OwnerID     string    `json:"owner_id"`
	AgentID     *string   `json:"agent_id,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Geohash     *string   `json:"geohash,omitempty"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// PaginatedListingsResponse - DTO для ответа со страницей объявлений
type PaginatedListingsResponse struct {
	Data    []ListingResponse `json:"data"`
	Total   int               `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"perPage"`
}

type ListingPreviewResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Location  string   `json:"location"`
	Price     float64  `json:"price"`
	PriceType string   `json:"price_type"`
	Images    []string `json:"images"`
}

type InquiryResponse struct {
	ID         string `json:"id"`
	ListingID  string `json:"listing_id"`
	InquirerID string `json:"inquirer_id"`
	Message    string `json:"message"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type InquiryWithListingResponse struct {
	InquiryResponse
	Listing ListingPreviewResponse `json:"listing"`
}

type ProfileResponse struct {
	ID         string `json:"id"`
	Role       string `json:"role"`
	FullName   string `json:"full_name"`
	Company    string `json:"company"`
	AvatarURL  string `json:"avatar_url"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// toListingResponse - маппер из доменной модели в DTO
func toListingResponse(listing *domain.Listing) ListingResponse {
	resp := ListingResponse{
		ID:          listing.ID.String(),
		Title:       listing.Title,
		Description: listing.Description,
		Price:       listing.Price,
		PriceType:   string(listing.PriceType),
		Category:    listing.Category,
		Location:    listing.Location,
		Bedrooms:    listing.Bedrooms,
		Bathrooms:   listing.Bathrooms,
		Area:        listing.Area,
		Rating:      listing.Rating,
		Images:      listing.Images,
		IsAvailable: listing.IsAvailable,
		IsFeatured:  listing.IsFeatured,
		IsVerified:  listing.IsVerified,
		OwnerID:     listing.OwnerID.String(),
		Latitude:    listing.Latitude,
		Longitude:   listing.Longitude,
		Geohash:     listing.Geohash,
		CreatedAt:   listing.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   listing.UpdatedAt.Format(time.RFC3339),
	}
	if listing.AgentID != nil {
		agentID := listing.AgentID.String()
		resp.AgentID = &agentID
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	return resp
}

func toInquiryResponse(inquiry *domain.Inquiry) InquiryResponse {
	return InquiryResponse{
		ID:         inquiry.ID.String(),
		ListingID:  inquiry.ListingID.String(),
		InquirerID: inquiry.InquirerID.String(),
		Message:    inquiry.Message,
		Status:     string(inquiry.Status),
		CreatedAt:  inquiry.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  inquiry.UpdatedAt.Format(time.RFC3339),
	}
}

func toInquiryWithListingResponse(item *domain.InquiryWithListing) InquiryWithListingResponse {
	preview := ListingPreviewResponse{
		ID:        item.Listing.ID.String(),
		Title:     item.Listing.Title,
		Location:  item.Listing.Location,
		Price:     item.Listing.Price,
		PriceType: string(item.Listing.PriceType),
		Images:    item.Listing.Images,
	}
	if preview.Images == nil {
		preview.Images = []string{}
	}
	return InquiryWithListingResponse{
		InquiryResponse: toInquiryResponse(&item.Inquiry),
		Listing:         preview,
	}
}

func toProfileResponse(profile *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:         profile.ID.String(),
		Role:       string(profile.Role),
		FullName:   profile.FullName,
		Company:    profile.Company,
		AvatarURL:  profile.AvatarURL,
		Phone:      profile.Phone,
		Email:      profile.Email,
		IsVerified: profile.IsVerified,
		CreatedAt:  profile.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  profile.UpdatedAt.Format(time.RFC3339),
	}
}
