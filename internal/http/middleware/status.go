package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// responseStatus resolves the status a request will finish with. When a
// handler returns an error the global ErrorHandler writes the response after
// the middleware chain unwinds, so the code is taken from the error.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
