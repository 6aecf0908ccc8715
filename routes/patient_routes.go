package routes

import (
	"github.com/carepulse/carepulse-backend/handlers"
	"github.com/gofiber/fiber/v2"
)

func PatientRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/patients", handlers.CreatePatientUser)
	api.Post("/patients/register", handlers.RegisterPatient)
	api.Post("/patients/find", handlers.FindPatient)
	api.Get("/patients/:userId", handlers.GetPatient)
}
