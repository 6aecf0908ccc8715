package handlers

import (
	"log"
	"time"

	"github.com/carepulse/carepulse-backend/database"
	"github.com/carepulse/carepulse-backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// CreatePatientUser opens a lightweight account at the start of the booking
// flow. Submitting an email that already has an account returns the existing
// record instead of failing, so a returning patient can pick up where they
// left off.
func CreatePatientUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var existing models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.JSON(fiber.Map{"success": true, "user": existing})
	}

	user := models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  "patient",
	}
	if err := database.DB.Create(&user).Error; err != nil {
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create account. Please try again."})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "user": user})
}

type RegisterPatientRequest struct {
	UserID                 string  `json:"userId" validate:"required,uuid"`
	Name                   string  `json:"name" validate:"required"`
	Email                  string  `json:"email" validate:"required,email"`
	Phone                  string  `json:"phone" validate:"required"`
	BirthDate              string  `json:"birthDate" validate:"required"`
	Gender                 string  `json:"gender" validate:"required,oneof=Male Female Other"`
	Address                string  `json:"address" validate:"required"`
	Occupation             string  `json:"occupation" validate:"required"`
	EmergencyContactName   string  `json:"emergencyContactName" validate:"required"`
	EmergencyContactNumber string  `json:"emergencyContactNumber" validate:"required"`
	PrimaryPhysician       string  `json:"primaryPhysician" validate:"required"`
	InsuranceProvider      string  `json:"insuranceProvider" validate:"required"`
	InsurancePolicyNumber  string  `json:"insurancePolicyNumber" validate:"required"`
	Allergies              *string `json:"allergies"`
	CurrentMedication      *string `json:"currentMedication"`
	FamilyMedicalHistory   *string `json:"familyMedicalHistory"`
	PastMedicalHistory     *string `json:"pastMedicalHistory"`
	IdentificationType     *string `json:"identificationType"`
	IdentificationNumber   *string `json:"identificationNumber"`
	PrivacyConsent         bool    `json:"privacyConsent" validate:"required"`
}

// RegisterPatient records the full intake form for an existing user account.
func RegisterPatient(c *fiber.Ctx) error {
	var req RegisterPatientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid birth date, expected YYYY-MM-DD"})
	}

	userID, _ := uuid.Parse(req.UserID)
	var existing models.Patient
	if err := database.DB.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "This user is already registered as a patient"})
	}

	patient := models.Patient{
		UserID:                 userID,
		Name:                   req.Name,
		Email:                  req.Email,
		Phone:                  req.Phone,
		BirthDate:              birthDate,
		Gender:                 req.Gender,
		Address:                req.Address,
		Occupation:             req.Occupation,
		EmergencyContactName:   req.EmergencyContactName,
		EmergencyContactNumber: req.EmergencyContactNumber,
		PrimaryPhysician:       req.PrimaryPhysician,
		InsuranceProvider:      req.InsuranceProvider,
		InsurancePolicyNumber:  req.InsurancePolicyNumber,
		Allergies:              req.Allergies,
		CurrentMedication:      req.CurrentMedication,
		FamilyMedicalHistory:   req.FamilyMedicalHistory,
		PastMedicalHistory:     req.PastMedicalHistory,
		IdentificationType:     req.IdentificationType,
		IdentificationNumber:   req.IdentificationNumber,
		PrivacyConsent:         req.PrivacyConsent,
	}
	if err := database.DB.Create(&patient).Error; err != nil {
		log.Printf("Error registering patient: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to register patient"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "patient": patient})
}

func GetPatient(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid user id"})
	}

	var patient models.Patient
	if err := database.DB.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Patient not found"})
	}

	return c.JSON(fiber.Map{"success": true, "patient": patient})
}

type FindPatientRequest struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// FindPatient looks a returning patient up by the email+phone pair from the
// landing form.
func FindPatient(c *fiber.Ctx) error {
	var req FindPatientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var patient models.Patient
	if err := database.DB.Where("email = ? AND phone = ?", req.Email, req.Phone).First(&patient).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "No patient found for that email and phone"})
	}

	return c.JSON(fiber.Map{"success": true, "patient": patient})
}
