package order

import (
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the admin order endpoints and the public tracking lookup.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/public/orders/:id", h.publicOrder)
}

// RegisterAdminRoutes registers the authenticated endpoints. The admin
// middleware is supplied by the caller so this package stays independent of
// the auth layer.
func (h *Handler) RegisterAdminRoutes(app *fiber.App, admin fiber.Handler) {
	app.Get("/api/orders", admin, h.listOrders)
	app.Put("/api/orders/:id/status", admin, h.updateStatus)
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	orders, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(orders)
}

type updateStatusRequest struct {
	Status       string `json:"status"`
	TrackingCode string `json:"trackingCode"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ord, err := h.service.UpdateStatus(c.Params("id"), payload.Status, payload.TrackingCode)
	if err != nil {
		switch err {
		case ErrInvalidStatus:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status"})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(ord)
}

// publicItem and publicOrder form the sanitized tracking view: no address,
// no email, no price breakdown beyond the total.
type publicItem struct {
	Nome  string `json:"nome"`
	Qty   int    `json:"qty"`
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

type publicCustomer struct {
	Nome string `json:"nome"`
}

type publicOrder struct {
	ID           string         `json:"_id"`
	Status       string         `json:"status"`
	Data         string         `json:"data"`
	Cliente      publicCustomer `json:"cliente"`
	Itens        []publicItem   `json:"itens"`
	Total        float64        `json:"total"`
	TrackingCode string         `json:"trackingCode,omitempty"`
}

func (h *Handler) publicOrder(c *fiber.Ctx) error {
	ord, err := h.service.PublicLookup(c.Params("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "pedido não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	itens := make([]publicItem, 0, len(ord.Items))
	for _, it := range ord.Items {
		itens = append(itens, publicItem{
			Nome:  it.Nome,
			Qty:   it.Quantidade,
			Size:  it.Tamanho,
			Color: it.Cor,
		})
	}

	return c.JSON(publicOrder{
		ID:           ord.ID,
		Status:       ord.Status,
		Data:         ord.CreatedAt,
		Cliente:      publicCustomer{Nome: ord.Customer.Nome},
		Itens:        itens,
		Total:        ord.Total,
		TrackingCode: ord.TrackingCode,
	})
}
