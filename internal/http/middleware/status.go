package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// responseStatus is the status the client will see once the global error
// handler has run. Handlers that return an error have not written it yet.
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

// routeLabel prefers the matched pattern (/api/files/:fileId) over the raw path.
// The result is copied: fiber strings alias the request buffer, which is
// reused once the handler returns.
func routeLabel(c *fiber.Ctx) string {
	if p := c.Route().Path; p != "" {
		return utils.CopyString(p)
	}
	return utils.CopyString(c.Path())
}
