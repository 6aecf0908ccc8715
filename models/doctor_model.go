package models

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is the practitioner roster entry. Availability, blocked slots and
// appointments all key on Name rather than ID: that is the contract the stored
// data and the frontend already speak. ID exists so a rename migration has a
// stable handle to pivot on.
type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"size:255;not null;unique" json:"name"`
	Specialty *string   `gorm:"size:255" json:"specialty"`
	ImageURL  *string   `gorm:"size:255" json:"imageUrl"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
