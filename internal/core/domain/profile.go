package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role определяет область видимости данных пользователя
type Role string

const (
	RoleClient   Role = "client"
	RoleAgent    Role = "agent"
	RoleLandlord Role = "landlord"
	RoleAdmin    Role = "admin"
)

// Valid проверяет, что роль одна из поддерживаемых
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleAgent, RoleLandlord, RoleAdmin:
		return true
	}
	return false
}

// ProfileUpdate - изменяемые атрибуты профиля, nil означает "не менять".
// Роль и флаг верификации через этот тип не меняются.
type ProfileUpdate struct {
	FullName  *string
	Company   *string
	AvatarURL *string
	Phone     *string
	Email     *string
}

// Profile - профиль пользователя. Одна запись на каждую аутентифицированную
// личность; роль определяет видимость заявок и состав статистики.
type Profile struct {
	ID         uuid.UUID `json:"id"`
	Role       Role      `json:"role"`
	FullName   string    `json:"full_name"`
	Company    string    `json:"company"`
	AvatarURL  string    `json:"avatar_url"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
