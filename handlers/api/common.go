package handlers // handlers/api paketi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/apperr"
)

// respondError servis hatasını HTTP status koduna çevirir.
// Validasyon ve sahiplik problemleri 4xx, sadece gerçek altyapı hataları 5xx döner.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case apperr.IsValidation(err):
		status = fiber.StatusBadRequest
	case apperr.IsNotFound(err):
		status = fiber.StatusNotFound
	case apperr.IsConflict(err):
		status = fiber.StatusConflict
	case errors.Is(err, apperr.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		status = fiber.StatusForbidden
	default:
		configslog.Log.Error("Beklenmeyen servis hatası",
			zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// badRequest gövde parse hataları için kısa yol.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
