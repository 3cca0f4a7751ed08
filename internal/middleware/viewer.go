// Package middleware provides viewer identification, logging, tracing and
// rate limiting middleware for the HTTP API.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"rewear/internal/models"
)

// ViewerHeader carries the id of the user driving the request.
const ViewerHeader = "X-User-ID"

// ViewerLocal is the Fiber locals key holding the viewer id.
const ViewerLocal = "userID"

// Viewer copies the viewer header into locals when present.
func Viewer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := strings.TrimSpace(c.Get(ViewerHeader)); id != "" {
			c.Locals(ViewerLocal, id)
		}
		return c.Next()
	}
}

// ViewerRequired rejects requests that do not identify a viewer.
func ViewerRequired(c *fiber.Ctx) error {
	if ViewerID(c) == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError(ViewerHeader+" header required"))
	}
	return c.Next()
}

// ViewerID returns the viewer id stored by Viewer, or "".
func ViewerID(c *fiber.Ctx) string {
	id, _ := c.Locals(ViewerLocal).(string)
	return id
}
