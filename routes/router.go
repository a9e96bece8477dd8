package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"kartvizit.link/configs"
	"kartvizit.link/services"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
// Servisler burada kurulur ve handler'lara constructor injection ile verilir.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) error {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama

	// --- Servisler ---
	identity := services.NewIdentityService(db, cfg.JWTSecret, cfg.JWTTTL)
	mirror, err := services.NewMirrorService(db, cfg.MirrorDir)
	if err != nil {
		return err
	}
	vcards := services.NewVCardService(db, mirror)

	// --- Rota Grupları ---
	registerAPIRoutes(app, identity, vcards, mirror)

	// Public slug rotası en sonda gelmeli: /api ile çakışmayan her yol
	// bir kartvizit slug'ı olarak denenir.
	registerPublicRoutes(app, vcards)

	// --- 404 Handler ---
	app.Use(notFoundHandler)
	return nil
}

// notFoundHandler eşleşmeyen tüm rotaları yakalar.
func notFoundHandler(c *fiber.Ctx) error {
	if c.Accepts("text/html", "application/json") == "application/json" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "kaynak bulunamadı"})
	}
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title":   "Bulunamadı",
		"Message": "Aradığınız sayfa bulunamadı.",
	})
}
