package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AppointmentPending   = "pending"
	AppointmentScheduled = "scheduled"
	AppointmentCancelled = "cancelled"
)

// Appointment is a patient booking with a doctor at an exact instant. The
// availability core only reads appointments; any appointment whose status is
// not "cancelled" occupies its slot.
type Appointment struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID             uuid.UUID `gorm:"not null;index" json:"userId"`
	PatientID          uuid.UUID `gorm:"not null;index" json:"patientId"`
	PrimaryPhysician   string    `gorm:"size:255;not null;index" json:"primaryPhysician"`
	Schedule           time.Time `gorm:"not null;index" json:"schedule"`
	Status             string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	Reason             string    `gorm:"type:text;not null" json:"reason"`
	Note               *string   `gorm:"type:text" json:"note"`
	CancellationReason *string   `gorm:"type:text" json:"cancellationReason"`

	Patient Patient `gorm:"foreignkey:PatientID" json:"patient,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}
