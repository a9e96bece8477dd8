package handlers // handlers/api paketi

import (
	"github.com/gofiber/fiber/v2"

	"kartvizit.link/services"
)

// MirrorHandler statik çıktı (mirror) yenileme uçlarını yönetir.
// Yenileme sonuçları yazma uçlarından bağımsız, kendi cevap şekliyle döner.
type MirrorHandler struct {
	mirror services.IMirrorService
}

// NewMirrorHandler yeni bir MirrorHandler örneği oluşturur.
func NewMirrorHandler(mirror services.IMirrorService) *MirrorHandler {
	return &MirrorHandler{mirror: mirror}
}

// Regenerate tek bir slug'ın artifact'ini yeniden üretir.
// Hata yazma işlemini değil sadece bu çağrıyı etkiler; sonuç slug bazında raporlanır.
func (h *MirrorHandler) Regenerate(c *fiber.Ctx) error {
	slug := c.Params("slug")

	path, err := h.mirror.Regenerate(c.UserContext(), slug)
	if err != nil {
		return c.JSON(services.MirrorResult{Slug: slug, Success: false, Error: err.Error()})
	}
	return c.JSON(services.MirrorResult{Slug: slug, Success: true, Path: path})
}

// RegenerateAll yayındaki tüm kartların artifact'lerini yeniden üretir.
// Kartlar listelenemezse bu bir altyapı hatasıdır ve 5xx döner.
func (h *MirrorHandler) RegenerateAll(c *fiber.Ctx) error {
	results, err := h.mirror.RegenerateAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"results": results})
}
