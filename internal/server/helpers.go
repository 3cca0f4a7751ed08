package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"rewear/internal/filter"
	"rewear/internal/models"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseFilterSpec reads a filter spec from the query string. Style tags
// arrive comma separated in "tags".
func parseFilterSpec(c *fiber.Ctx) filter.Spec {
	return filter.Spec{
		SearchTerm: c.Query("q"),
		Category:   c.Query("category"),
		Size:       c.Query("size"),
		Condition:  c.Query("condition"),
		StyleTags:  filter.ParseTags(c.Query("tags")),
	}
}

// parseBody decodes the JSON body into dest. On failure it writes a 400
// JSON response and returns errResponseWritten.
func parseBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// parseOptionalBody is parseBody for endpoints whose body may be empty.
func parseOptionalBody(c *fiber.Ctx, dest interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return parseBody(c, dest)
}

// respond writes err as an error response, or v as JSON with status.
func respond(c *fiber.Ctx, status int, v interface{}, err error) error {
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(status).JSON(v)
}
