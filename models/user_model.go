package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account in the system: patients get a lightweight account at the
// start of the booking flow (name, email, phone, no password), staff accounts
// carry a bcrypt hash and log in for the admin surface.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Phone    string    `gorm:"size:50;not null" json:"phone"`
	Password string    `gorm:"size:255" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'patient'" json:"role"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}
