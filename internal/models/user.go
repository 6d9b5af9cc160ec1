package models

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// AdminUsername ilk açılışta oluşturulan ve silinemeyen hesap.
const AdminUsername = "admin"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}
