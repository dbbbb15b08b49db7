package models

import "time"

// Roles stored in user_profiles.role
const (
	RoleCashier  = "cajero"
	RoleAdmin    = "administrador"
	RoleEmployee = "empleado"
)

// User is the model for the 'user_profiles' table.
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never return this in JSON
	Role         string    `json:"role" db:"role"`
	Status       string    `json:"status" db:"estado"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
