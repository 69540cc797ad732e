package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wendarnation/quimerabackend/internal/database"
	"github.com/wendarnation/quimerabackend/internal/dto"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	status := fiber.StatusOK
	if err := database.Ping(); err != nil {
		dbStatus = "unreachable"
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
