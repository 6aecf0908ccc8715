package routes

import (
	"github.com/carepulse/carepulse-backend/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/doctors", handlers.ListDoctors)
	api.Post("/auth/login", handlers.Login)
}
