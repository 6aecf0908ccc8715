package models

import (
	"time"

	"github.com/google/uuid"
)

// BlockedSlot is a one-off exception (vacation, meeting) that removes a
// doctor's availability inside a single date's time window. Date carries the
// calendar date only, stored at midnight UTC; StartTime/EndTime are wall-clock
// "HH:MM" strings with StartTime < EndTime.
type BlockedSlot struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DoctorName string    `gorm:"size:255;not null;index" json:"doctorName"`
	Date       time.Time `gorm:"not null;index" json:"date"`
	StartTime  string    `gorm:"size:5;not null" json:"startTime"`
	EndTime    string    `gorm:"size:5;not null" json:"endTime"`
	Reason     string    `gorm:"size:255;not null;default:'Unavailable'" json:"reason"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
