package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kartvizit.link/models"
	"kartvizit.link/services"
)

// Locals anahtarları: handler'lar kimlik bilgisine bu isimlerle erişir.
const (
	LocalUserID         = "userID"
	LocalOrganizationID = "organizationID"
	LocalUserEmail      = "userEmail"
)

// RequireAuth Bearer token'ı doğrular ve isteği sahibi organizasyona bağlar.
// Token geçerli ama organizasyon kaydı eksikse (yarım kalmış sync) burada
// onarılır; kullanıcı hiçbir zaman organizasyonsuz bir istekle içeri girmez.
func RequireAuth(identity services.IIdentityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "kimlik bilgisi eksik",
			})
		}

		claims, err := identity.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "kimlik bilgisi geçersiz",
			})
		}

		org, err := identity.ResolveOwningOrganization(c.UserContext(), claims.Subject)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "organizasyon çözümlenemedi",
			})
		}

		// Audit hook'ları (CreatedBy/UpdatedBy) işlemi yapan kullanıcıyı
		// context'ten okur; servislere giden her ctx bu bilgiyi taşır.
		c.SetUserContext(models.ContextWithUserID(c.UserContext(), claims.Subject))

		c.Locals(LocalUserID, claims.Subject)
		c.Locals(LocalUserEmail, claims.Email)
		c.Locals(LocalOrganizationID, org.ID)
		return c.Next()
	}
}

// OrganizationID locals'taki organizasyon ID'sini döndürür; yoksa 0.
func OrganizationID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(LocalOrganizationID).(uint); ok {
		return id
	}
	return 0
}

// UserID locals'taki kullanıcı ID'sini döndürür; yoksa boş string.
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(LocalUserID).(string); ok {
		return id
	}
	return ""
}
