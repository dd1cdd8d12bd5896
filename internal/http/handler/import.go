package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"profileviews/internal/service"
)

type importResponse struct {
	Imported int `json:"imported"`
}

// ImportSnapshot imports the raw snapshot document in the request body.
// The snapshot instant is the snapshot_at query parameter in RFC 3339.
func ImportSnapshot(svc service.ImportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshotAt, err := time.Parse(time.RFC3339, c.Query("snapshot_at"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SNAPSHOT_AT", "snapshot_at must be an RFC 3339 timestamp")
		}
		body := c.Body()
		if len(body) == 0 {
			return writeError(c, fiber.StatusBadRequest, "BODY_REQUIRED", "snapshot document is required")
		}

		n, err := svc.Import(c.UserContext(), body, snapshotAt)
		if err != nil {
			return writeImportError(c, err)
		}
		return c.JSON(importResponse{Imported: n})
	}
}
