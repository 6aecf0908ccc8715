package handlers

import (
	"log"

	"github.com/carepulse/carepulse-backend/database"
	"github.com/carepulse/carepulse-backend/models"
	"github.com/gofiber/fiber/v2"
)

func ListDoctors(c *fiber.Ctx) error {
	var doctors []models.Doctor
	if err := database.DB.Order("name asc").Find(&doctors).Error; err != nil {
		log.Printf("Error fetching doctors: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch doctors"})
	}

	return c.JSON(fiber.Map{"success": true, "doctors": doctors})
}
