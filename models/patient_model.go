package models

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the full registration profile collected on the intake form. One
// patient record per user; PrimaryPhysician holds the chosen doctor's name.
type Patient struct {
	ID                     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID                 uuid.UUID `gorm:"not null;unique" json:"userId"`
	Name                   string    `gorm:"size:255;not null" json:"name"`
	Email                  string    `gorm:"size:255;not null" json:"email"`
	Phone                  string    `gorm:"size:50;not null" json:"phone"`
	BirthDate              time.Time `gorm:"not null" json:"birthDate"`
	Gender                 string    `gorm:"size:10;not null" json:"gender"`
	Address                string    `gorm:"size:500;not null" json:"address"`
	Occupation             string    `gorm:"size:255;not null" json:"occupation"`
	EmergencyContactName   string    `gorm:"size:255;not null" json:"emergencyContactName"`
	EmergencyContactNumber string    `gorm:"size:50;not null" json:"emergencyContactNumber"`
	PrimaryPhysician       string    `gorm:"size:255;not null" json:"primaryPhysician"`
	InsuranceProvider      string    `gorm:"size:255;not null" json:"insuranceProvider"`
	InsurancePolicyNumber  string    `gorm:"size:255;not null" json:"insurancePolicyNumber"`
	Allergies              *string   `gorm:"type:text" json:"allergies"`
	CurrentMedication      *string   `gorm:"type:text" json:"currentMedication"`
	FamilyMedicalHistory   *string   `gorm:"type:text" json:"familyMedicalHistory"`
	PastMedicalHistory     *string   `gorm:"type:text" json:"pastMedicalHistory"`
	IdentificationType     *string   `gorm:"size:100" json:"identificationType"`
	IdentificationNumber   *string   `gorm:"size:100" json:"identificationNumber"`
	PrivacyConsent         bool      `gorm:"not null;default:false" json:"privacyConsent"`

	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}
