package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"profileviews/internal/logger"
)

// Logger logs one structured line per HTTP request with request_id, method,
// path, status and latency in milliseconds.
func Logger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		fields := []interface{}{
			"request_id", rid,
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", float64(time.Since(start).Microseconds()) / 1000,
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("http_request", fields...)
		} else {
			log.Info("http_request", fields...)
		}
		return err
	}
}
