package models

import (
	"time"

	"github.com/google/uuid"
)

// User defines a login account based on the 'users' table
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`                                  // Unique identifier for the user
	Email        string    `json:"email" db:"email" example:"prof@school.edu"`  // Login email
	PasswordHash string    `json:"-" db:"password_hash"`                        // bcrypt hash (excluded from JSON)
	DisplayName  string    `json:"displayName" db:"display_name" example:"Ana"` // Name shown in the dashboard
	Role         Role      `json:"role" db:"role" example:"professor" enums:"admin,professor,student"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Identity returns the authenticated view of the user
func (u *User) Identity() Identity {
	return Identity{
		UserID:      u.ID,
		Role:        u.Role,
		DisplayName: u.DisplayName,
		Email:       u.Email,
	}
}

// Identity is the authenticated caller threaded through policy checks and controllers
type Identity struct {
	UserID      uuid.UUID `json:"userId"`
	Role        Role      `json:"role"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
}
