package handlers // handlers/api paketi

import (
	"github.com/gofiber/fiber/v2"

	"kartvizit.link/dto"
	"kartvizit.link/services"
)

// AuthHandler kimlik senkronizasyonu ve yerel hesap uçlarını yönetir.
type AuthHandler struct {
	identity services.IIdentityService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler(identity services.IIdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// Sync dış kimlik sağlayıcısından gelen kimliği yerel kayıtlarla eşler.
// Aynı kimlikle tekrar çağrılması güvenlidir (idempotent yakınsama).
func (h *AuthHandler) Sync(c *fiber.Ctx) error {
	var req dto.SyncRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "geçersiz istek gövdesi")
	}

	result, err := h.identity.Sync(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Register yerel bir hesap açar.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "geçersiz istek gövdesi")
	}

	result, err := h.identity.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Login e-posta ve şifre ile giriş yapar.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "geçersiz istek gövdesi")
	}

	result, err := h.identity.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
