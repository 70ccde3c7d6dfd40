package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"imageapi/docs"
)

// RegisterSwagger serves the UI at /swagger/*. The advertised host is fixed
// at start-up; the shared swag spec is never written per request.
func RegisterSwagger(app *fiber.App, host string) {
	docs.SwaggerInfo.Host = host
	docs.SwaggerInfo.Schemes = []string{}
	app.Get("/swagger/*", swagger.HandlerDefault)
}
