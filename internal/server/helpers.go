package server

import (
	"errors"
	"strconv"
	"strings"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that the handler already wrote an error response
// and the caller should simply return nil.
var errResponseWritten = errors.New("response written")

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// parseID extracts and validates a positive integer route parameter. On
// failure it writes a 400 response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam turns a camelCase route param into a readable label, e.g.
// "postId" becomes "post ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	var b strings.Builder
	for i, r := range param {
		if r >= 'A' && r <= 'Z' && i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := b.String()
	out = strings.ReplaceAll(out, "Id", "ID")
	return out
}

// parsePagination reads page/limit query params with clamping. Out-of-range
// values fall back to defaults rather than erroring.
func parsePagination(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", defaultPageLimit)
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// respondServiceError maps a service-layer error onto an HTTP response using
// the error's code.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}
