package handlers // handlers/public paketi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/apperr"
	"kartvizit.link/services"
)

// PublicCardHandler public kartvizit isteklerini yönetir.
// Kimlik doğrulaması yoktur; sadece yayındaki kartlar çözümlenir.
type PublicCardHandler struct {
	service services.IVCardService
}

// NewPublicCardHandler yeni bir PublicCardHandler örneği oluşturur.
func NewPublicCardHandler(service services.IVCardService) *PublicCardHandler {
	return &PublicCardHandler{service: service}
}

// HandleSlug gelen :slug parametresine göre kartvizit sayfasını gösterir.
// Accept header'ına göre HTML veya JSON döner; mirror üreticisinin gördüğü
// veriyle aynı veridir.
func (h *PublicCardHandler) HandleSlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return h.renderNotFound(c, "Geçersiz Bağlantı")
	}

	card, err := h.service.GetPublishedBySlug(c.UserContext(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return h.renderNotFound(c, "Kartvizit Bulunamadı")
		}
		configslog.Log.Error("HandleSlug: GetPublishedBySlug hatası", zap.String("slug", slug), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "kartvizit yüklenirken bir sorun oluştu",
		})
	}

	if c.Accepts("text/html", "application/json") == "application/json" {
		return c.JSON(card)
	}
	return c.Render("public/card_view", fiber.Map{"Card": card})
}

// renderNotFound standart 404 cevabını üretir (HTML veya JSON).
func (h *PublicCardHandler) renderNotFound(c *fiber.Ctx, message string) error {
	if c.Accepts("text/html", "application/json") == "application/json" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
	}
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title":   "Bulunamadı",
		"Message": message,
	})
}
