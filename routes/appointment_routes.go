package routes

import (
	"github.com/carepulse/carepulse-backend/handlers"
	"github.com/carepulse/carepulse-backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func AppointmentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/appointments", handlers.CreateAppointment)
	api.Get("/appointments/all", middleware.Protected(), middleware.AdminRequired(), handlers.ListAllAppointments)
	api.Get("/appointments/:userId", handlers.GetUserAppointments)
	api.Put("/appointments/:appointmentId", middleware.Protected(), middleware.AdminRequired(), handlers.UpdateAppointment)
}
