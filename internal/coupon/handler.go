package coupon

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/coupons/validate", h.validateCoupon)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, admin fiber.Handler) {
	app.Get("/api/coupons", admin, h.listCoupons)
	app.Post("/api/coupons", admin, h.createCoupon)
	app.Put("/api/coupons/:id", admin, h.updateCoupon)
	app.Delete("/api/coupons/:id", admin, h.deleteCoupon)
}

type validateRequest struct {
	Code string `json:"code"`
}

func (h *Handler) validateCoupon(c *fiber.Ctx) error {
	payload := new(validateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	cpn, err := h.service.Validate(payload.Code)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "cupom inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cpn)
}

func (h *Handler) listCoupons(c *fiber.Ctx) error {
	coupons, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(coupons)
}

type couponRequest struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discountAmount"`
	FreeShipping   bool    `json:"freeShipping"`
}

func (p *couponRequest) isInvalid() bool {
	return p.Code == "" || p.DiscountAmount < 0
}

func (h *Handler) createCoupon(c *fiber.Ctx) error {
	payload := new(couponRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if payload.isInvalid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "código e desconto são obrigatórios"})
	}

	created, err := h.service.Create(Coupon{
		Code:           payload.Code,
		DiscountAmount: payload.DiscountAmount,
		FreeShipping:   payload.FreeShipping,
	})
	if err != nil {
		if err == ErrCodeExists {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "código já existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateCoupon(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	payload := new(couponRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if payload.isInvalid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "código e desconto são obrigatórios"})
	}

	updated, err := h.service.Update(id, Coupon{
		Code:           payload.Code,
		DiscountAmount: payload.DiscountAmount,
		FreeShipping:   payload.FreeShipping,
	})
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "cupom não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteCoupon(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "cupom não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
