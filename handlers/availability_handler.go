package handlers

import (
	"errors"
	"log"
	"net/url"
	"time"

	"github.com/carepulse/carepulse-backend/database"
	"github.com/carepulse/carepulse-backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var schedules = services.NewScheduleStore()

// doctorParam decodes the :doctorName path segment; names contain spaces
// ("Dr. Green") and arrive percent-encoded.
func doctorParam(c *fiber.Ctx) string {
	name, err := url.PathUnescape(c.Params("doctorName"))
	if err != nil {
		return c.Params("doctorName")
	}
	return name
}

// parseDateParam accepts a plain calendar date or a full timestamp; only the
// date dimension is used downstream.
func parseDateParam(value string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", value); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, value)
}

func GetDoctorAvailability(c *fiber.Ctx) error {
	doctorName := doctorParam(c)
	if doctorName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Doctor name is required"})
	}

	availability, err := schedules.WeeklySchedule(doctorName)
	if err != nil {
		log.Printf("Error fetching availability for %s: %v", doctorName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch doctor availability"})
	}

	return c.JSON(fiber.Map{"success": true, "availability": availability})
}

func GetAvailableSlots(c *fiber.Ctx) error {
	doctorName := doctorParam(c)
	if doctorName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Doctor name is required"})
	}

	dateParam := c.Query("date")
	if dateParam == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Date parameter is required"})
	}
	date, err := parseDateParam(dateParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid date format, expected YYYY-MM-DD"})
	}

	slots, err := services.GetAvailableTimeSlots(schedules, doctorName, date)
	if err != nil {
		log.Printf("Error computing slots for %s on %s: %v", doctorName, dateParam, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch time slots"})
	}

	return c.JSON(fiber.Map{"success": true, "slots": slots})
}

func GetDoctorSchedule(c *fiber.Ctx) error {
	doctorName := doctorParam(c)
	if doctorName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Doctor name is required"})
	}

	schedule, err := services.GetDoctorSchedule(schedules, doctorName, time.Now(), services.ScheduleWindowDays)
	if err != nil {
		log.Printf("Error fetching schedule for %s: %v", doctorName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch doctor schedule"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"appointments": schedule.Appointments,
		"blockedSlots": schedule.BlockedSlots,
	})
}

type SetAvailabilityRequest struct {
	DoctorName  string `json:"doctorName" validate:"required"`
	DayOfWeek   string `json:"dayOfWeek" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime   string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime     string `json:"endTime" validate:"required,datetime=15:04"`
	IsAvailable *bool  `json:"isAvailable"`
}

func SetDoctorAvailability(c *fiber.Ctx) error {
	var req SetAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	availability, err := services.SetDoctorAvailability(schedules, req.DoctorName, req.DayOfWeek, req.StartTime, req.EndTime, isAvailable)
	if err != nil {
		log.Printf("Error setting availability: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to set availability"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    availability,
		"message": "Availability set successfully",
	})
}

type BlockSlotRequest struct {
	DoctorName string `json:"doctorName" validate:"required"`
	Date       string `json:"date" validate:"required"`
	StartTime  string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime    string `json:"endTime" validate:"required,datetime=15:04"`
	Reason     string `json:"reason"`
}

func BlockDoctorSlot(c *fiber.Ctx) error {
	var req BlockSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if req.StartTime >= req.EndTime {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Start time must be before end time"})
	}

	date, err := parseDateParam(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid date format, expected YYYY-MM-DD"})
	}

	blocked, err := services.BlockDoctorSlot(schedules, req.DoctorName, date, req.StartTime, req.EndTime, req.Reason)
	if err != nil {
		log.Printf("Error blocking slot: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to block time slot"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    blocked,
		"message": "Time slot blocked successfully",
	})
}

func UnblockDoctorSlot(c *fiber.Ctx) error {
	blockID, err := uuid.Parse(c.Params("blockId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid blocked slot id"})
	}

	if err := services.UnblockDoctorSlot(schedules, blockID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Blocked slot not found"})
		}
		log.Printf("Error unblocking slot %s: %v", blockID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to unblock time slot"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Time slot unblocked successfully"})
}

// SetupDefaultAvailability applies the Monday-Friday 09:00-17:00 default to
// every doctor in the configured roster. Each doctor/day is attempted
// independently and reported in the results list.
func SetupDefaultAvailability(c *fiber.Ctx) error {
	roster := database.DoctorRoster()
	if len(roster) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Doctor roster is not configured"})
	}

	results := services.InitializeDefaultAvailability(schedules, roster)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Doctor availability initialized",
		"results": results,
	})
}
