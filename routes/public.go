package routes

import (
	"github.com/gofiber/fiber/v2"

	publichandlers "kartvizit.link/handlers/public"
	"kartvizit.link/services"
)

// registerPublicRoutes public kartvizit rotasını tanımlar (örn. /acme).
// Diğer özel gruplardan SONRA kaydedilmelidir.
func registerPublicRoutes(app *fiber.App, vcards services.IVCardService) {
	publicHandler := publichandlers.NewPublicCardHandler(vcards)
	app.Get("/:slug", publicHandler.HandleSlug)
}
