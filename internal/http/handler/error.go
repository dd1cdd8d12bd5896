package handler

import (
	"github.com/gofiber/fiber/v2"

	"profileviews/internal/http/middleware"
	"profileviews/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response. message must be safe
// to show to clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeImportError maps an import failure onto a status and error code.
// Document problems are 422 and carry their message; anything else is a 500.
func writeImportError(c *fiber.Ctx, err error) error {
	switch kind := service.ErrorKind(err); kind {
	case service.KindStructureMismatch:
		return writeError(c, fiber.StatusUnprocessableEntity, "STRUCTURE_MISMATCH", err.Error())
	case service.KindMissingNode:
		return writeError(c, fiber.StatusUnprocessableEntity, "MISSING_NODE", err.Error())
	case service.KindNodeDecode:
		return writeError(c, fiber.StatusUnprocessableEntity, "NODE_DECODE_ERROR", err.Error())
	case service.KindUnrecognizedDateToken:
		return writeError(c, fiber.StatusUnprocessableEntity, "UNRECOGNIZED_DATE_TOKEN", err.Error())
	case service.KindStorage:
		return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "failed to store profile views")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
