package domain

// Счетчики дашборда. Состав полей зависит от роли запрашивающего,
// поэтому DashboardStats несет роль и заполненную ветку для этой роли;
// вызывающая сторона выбирает ветку по Role.

type AdminStats struct {
	TotalListings  int64 `json:"total_listings"`
	TotalProfiles  int64 `json:"total_profiles"`
	TotalInquiries int64 `json:"total_inquiries"`
}

type AgentStats struct {
	ManagedListings   int64 `json:"managed_listings"`
	AssignedInquiries int64 `json:"assigned_inquiries"`
}

type LandlordStats struct {
	OwnedListings     int64 `json:"owned_listings"`
	ReceivedInquiries int64 `json:"received_inquiries"`
	ListingViews      int64 `json:"listing_views"`
}

type ClientStats struct {
	ViewedListings int64 `json:"viewed_listings"`
}

// DashboardStats - сводка по роли. Всегда заполнена ровно одна ветка.
type DashboardStats struct {
	Role     Role           `json:"role"`
	Admin    *AdminStats    `json:"admin,omitempty"`
	Agent    *AgentStats    `json:"agent,omitempty"`
	Landlord *LandlordStats `json:"landlord,omitempty"`
	Client   *ClientStats   `json:"client,omitempty"`
}
