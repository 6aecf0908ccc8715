package routes

import (
	"github.com/carepulse/carepulse-backend/handlers"
	"github.com/carepulse/carepulse-backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func AvailabilityRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/availability/:doctorName", handlers.GetDoctorAvailability)
	api.Get("/availability/:doctorName/slots", handlers.GetAvailableSlots)
	api.Get("/availability/:doctorName/schedule", handlers.GetDoctorSchedule)

	api.Post("/availability/set", middleware.Protected(), middleware.AdminRequired(), handlers.SetDoctorAvailability)
	api.Post("/availability/block", middleware.Protected(), middleware.AdminRequired(), handlers.BlockDoctorSlot)
	api.Delete("/availability/block/:blockId", middleware.Protected(), middleware.AdminRequired(), handlers.UnblockDoctorSlot)
	api.Post("/setup/availability", middleware.Protected(), middleware.AdminRequired(), handlers.SetupDefaultAvailability)
}
