package handlers

import (
	"log"
	"time"

	"github.com/carepulse/carepulse-backend/database"
	"github.com/carepulse/carepulse-backend/models"
	"github.com/carepulse/carepulse-backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	UserID           string  `json:"userId" validate:"required,uuid"`
	PatientID        string  `json:"patientId" validate:"required,uuid"`
	PrimaryPhysician string  `json:"primaryPhysician" validate:"required"`
	Schedule         string  `json:"schedule" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Reason           string  `json:"reason" validate:"required"`
	Note             *string `json:"note"`
}

// CreateAppointment books a pending appointment. The availability check and
// the insert are separate store round trips; two concurrent requests can both
// pass the check and double-book the same slot.
func CreateAppointment(c *fiber.Ctx) error {
	var req CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	schedule, _ := time.Parse(time.RFC3339, req.Schedule)
	userID, _ := uuid.Parse(req.UserID)
	patientID, _ := uuid.Parse(req.PatientID)

	available, err := services.IsDoctorAvailable(schedules, req.PrimaryPhysician, schedule)
	if err != nil {
		log.Printf("Error checking availability for %s: %v", req.PrimaryPhysician, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to check doctor availability"})
	}
	if !available {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "This time slot is no longer available"})
	}

	appointment := models.Appointment{
		UserID:           userID,
		PatientID:        patientID,
		PrimaryPhysician: req.PrimaryPhysician,
		Schedule:         schedule,
		Status:           models.AppointmentPending,
		Reason:           req.Reason,
		Note:             req.Note,
	}
	if err := database.DB.Create(&appointment).Error; err != nil {
		log.Printf("Error creating appointment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create appointment"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "appointment": appointment})
}

func GetUserAppointments(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid user id"})
	}

	var appointments []models.Appointment
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("schedule desc").
		Find(&appointments).Error; err != nil {
		log.Printf("Error fetching appointments for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch appointments"})
	}

	return c.JSON(fiber.Map{"success": true, "appointments": appointments})
}

// ListAllAppointments backs the admin dashboard: every appointment plus the
// per-status counts shown in the header cards.
func ListAllAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment
	if err := database.DB.
		Preload("Patient").
		Order("schedule desc").
		Find(&appointments).Error; err != nil {
		log.Printf("Error fetching all appointments: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch appointments"})
	}

	counts := fiber.Map{
		models.AppointmentScheduled: 0,
		models.AppointmentPending:   0,
		models.AppointmentCancelled: 0,
	}
	for _, apt := range appointments {
		if n, ok := counts[apt.Status].(int); ok {
			counts[apt.Status] = n + 1
		}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"appointments": appointments,
		"counts":       counts,
	})
}

type UpdateAppointmentRequest struct {
	Type               string  `json:"type" validate:"required,oneof=schedule cancel"`
	Schedule           *string `json:"schedule" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	CancellationReason *string `json:"cancellationReason"`
}

// UpdateAppointment confirms or cancels a pending appointment from the admin
// dashboard.
func UpdateAppointment(c *fiber.Ctx) error {
	appointmentID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid appointment id"})
	}

	var req UpdateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var appointment models.Appointment
	if err := database.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Appointment not found"})
	}

	switch req.Type {
	case "schedule":
		appointment.Status = models.AppointmentScheduled
		if req.Schedule != nil {
			schedule, _ := time.Parse(time.RFC3339, *req.Schedule)
			appointment.Schedule = schedule
		}
	case "cancel":
		appointment.Status = models.AppointmentCancelled
		appointment.CancellationReason = req.CancellationReason
	}

	if err := database.DB.Save(&appointment).Error; err != nil {
		log.Printf("Error updating appointment %s: %v", appointmentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update appointment"})
	}

	return c.JSON(fiber.Map{"success": true, "appointment": appointment})
}
