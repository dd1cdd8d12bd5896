package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// HealthCheck reports whether the database answers a ping within two seconds.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

type helloResponse struct {
	Message string `json:"message"`
}

func Hello() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(helloResponse{Message: "hello from fiber"})
	}
}

type echoPayload struct {
	Text *string `json:"text" validate:"required"`
}

// Echo returns the posted {"text": ...} body unchanged.
func Echo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p echoPayload
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}
		if err := validate.Struct(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "text is required")
		}
		return c.JSON(p)
	}
}
