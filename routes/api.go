package routes

import (
	"github.com/gofiber/fiber/v2"

	apihandlers "kartvizit.link/handlers/api"
	"kartvizit.link/middlewares"
	"kartvizit.link/services"
)

// registerAPIRoutes /api altındaki JSON uçlarını tanımlar.
func registerAPIRoutes(app *fiber.App, identity services.IIdentityService, vcards services.IVCardService, mirror services.IMirrorService) {
	authHandler := apihandlers.NewAuthHandler(identity)
	vcardHandler := apihandlers.NewVCardHandler(vcards)
	mirrorHandler := apihandlers.NewMirrorHandler(mirror)

	api := app.Group("/api")

	// Kimlik uçları (auth gerektirmez; sync yükü dışarıda doğrulanmış gelir).
	auth := api.Group("/auth")
	auth.Post("/sync", authHandler.Sync)
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Kartvizit uçları: organizasyon kapsamlı erişim.
	protected := api.Group("", middlewares.RequireAuth(identity))
	protected.Post("/vcards", vcardHandler.Create)
	protected.Get("/vcards", vcardHandler.List)
	protected.Get("/vcards/:id", vcardHandler.Get)
	protected.Patch("/vcards/:id", vcardHandler.Update)
	protected.Put("/vcards/:id", vcardHandler.Update)
	protected.Delete("/vcards/:id", vcardHandler.Delete)

	// Mirror yenileme uçları.
	protected.Post("/mirror/regenerate", mirrorHandler.RegenerateAll)
	protected.Post("/mirror/regenerate/:slug", mirrorHandler.Regenerate)
}
