package handlers // handlers/api paketi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/dto"
	"kartvizit.link/middlewares"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/services"
)

// VCardHandler organizasyona ait kartvizit CRUD uçlarını yönetir.
// Tüm uçlar RequireAuth arkasındadır; organizasyon kapsamı locals'tan gelir.
type VCardHandler struct {
	service services.IVCardService
}

// NewVCardHandler yeni bir VCardHandler örneği oluşturur.
func NewVCardHandler(service services.IVCardService) *VCardHandler {
	return &VCardHandler{service: service}
}

// Create yeni kartvizit oluşturur (alt koleksiyonlarıyla birlikte).
func (h *VCardHandler) Create(c *fiber.Ctx) error {
	orgID := middlewares.OrganizationID(c)

	var spec dto.VCardSpec
	if err := c.BodyParser(&spec); err != nil {
		return badRequest(c, "geçersiz istek gövdesi")
	}

	card, err := h.service.Create(c.UserContext(), orgID, spec)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(card)
}

// Update kartviziti kısmen günceller; verilen alt koleksiyonları komple değiştirir.
func (h *VCardHandler) Update(c *fiber.Ctx) error {
	orgID := middlewares.OrganizationID(c)
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "geçersiz kartvizit ID")
	}

	var spec dto.VCardSpec
	if err := c.BodyParser(&spec); err != nil {
		return badRequest(c, "geçersiz istek gövdesi")
	}

	card, err := h.service.Update(c.UserContext(), id, orgID, spec)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(card)
}

// Get kartviziti ID ile getirir.
func (h *VCardHandler) Get(c *fiber.Ctx) error {
	orgID := middlewares.OrganizationID(c)
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "geçersiz kartvizit ID")
	}

	card, err := h.service.GetByID(c.UserContext(), id, orgID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(card)
}

// List organizasyonun kartvizitlerini sayfalayarak listeler.
func (h *VCardHandler) List(c *fiber.Ctx) error {
	orgID := middlewares.OrganizationID(c)

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("VCard List: query parse hatası", zap.Error(err))
		params = queryparams.DefaultListParams("created_at")
	}

	result, err := h.service.GetForOrganizationPaginated(c.UserContext(), orgID, params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Delete kartviziti ve alt koleksiyonlarını kalıcı olarak siler.
func (h *VCardHandler) Delete(c *fiber.Ctx) error {
	orgID := middlewares.OrganizationID(c)
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "geçersiz kartvizit ID")
	}

	if err := h.service.Delete(c.UserContext(), id, orgID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
