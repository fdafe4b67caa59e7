package domain

import "github.com/google/uuid"

// Claims - проверенные данные из токена доступа.
// Роль и личность запрашивающего определяют область видимости данных.
type Claims struct {
	UserID uuid.UUID
	Role   Role
}
