package payment

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kauanfelipempp/serverfc/internal/logging"
	"github.com/kauanfelipempp/serverfc/internal/order"
)

// gateway statuses reported on the payment object
const (
	gwApproved  = "approved"
	gwRejected  = "rejected"
	gwCancelled = "cancelled"
)

// Fetcher is the slice of the gateway client the webhook needs.
type Fetcher interface {
	GetPayment(ctx context.Context, paymentID string) (Payment, error)
}

// ConfirmNotifier sends the payment-confirmation email.
type ConfirmNotifier interface {
	PaymentConfirmed(ord order.Order)
}

// WebhookHandler reconciles asynchronous payment callbacks against the order
// store. The callback body is never trusted beyond the payment id; the
// authoritative status is always re-fetched from the gateway.
type WebhookHandler struct {
	gateway  Fetcher
	repo     order.Repository
	notifier ConfirmNotifier
	log      *slog.Logger
}

func NewWebhookHandler(gateway Fetcher, repo order.Repository, notifier ConfirmNotifier) *WebhookHandler {
	return &WebhookHandler{
		gateway:  gateway,
		repo:     repo,
		notifier: notifier,
		log:      logging.New("webhook"),
	}
}

func (h *WebhookHandler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/webhook", h.handle)
}

// flexID accepts the payment id whether the gateway sends it as a JSON
// string or a number.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		s = ""
	}
	*f = flexID(s)
	return nil
}

type webhookRequest struct {
	Action string `json:"action"`
	Data   struct {
		ID flexID `json:"id"`
	} `json:"data"`
}

// handle acks with 200 for everything the gateway should not retry
// (non-payment events, malformed bodies, unknown orders) and with 500 only
// for transient failures where a retry can succeed.
func (h *WebhookHandler) handle(c *fiber.Ctx) error {
	payload := new(webhookRequest)
	if err := c.BodyParser(payload); err != nil {
		h.log.Warn("malformed webhook body", "error", err.Error())
		return c.SendStatus(fiber.StatusOK)
	}

	if payload.Action != "payment.created" && payload.Action != "payment.updated" {
		return c.SendStatus(fiber.StatusOK)
	}
	if payload.Data.ID == "" {
		return c.SendStatus(fiber.StatusOK)
	}

	p, err := h.gateway.GetPayment(c.UserContext(), string(payload.Data.ID))
	if errors.Is(err, ErrPaymentNotFound) {
		// a forged or stale id will 404 on every retry; ack it
		h.log.Warn("webhook for unknown payment", "paymentId", string(payload.Data.ID))
		return c.SendStatus(fiber.StatusOK)
	}
	if err != nil {
		h.log.Warn("payment fetch failed, asking gateway to retry", "paymentId", string(payload.Data.ID), "error", err.Error())
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	status, err := h.reconcile(p)
	if err != nil {
		h.log.Error("order update failed", "orderId", p.ExternalReference, "error", err.Error())
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.SendStatus(status)
}

// reconcile maps the gateway status onto the order state machine. Approved
// and rejected only ever transition out of the awaiting-payment state, so
// duplicate or late callbacks are no-ops; the confirmation email is gated on
// the compare-and-set actually firing, which keeps it single-send even under
// concurrent deliveries of the same event.
func (h *WebhookHandler) reconcile(p Payment) (int, error) {
	switch p.Status {
	case gwApproved:
		transitioned, err := h.repo.TransitionStatus(p.ExternalReference, order.StatusAwaitingPayment, order.StatusApproved)
		if err == order.ErrNotFound {
			// acking stops the gateway from retrying forever for an
			// order that will never exist
			h.log.Warn("webhook for unknown order", "orderId", p.ExternalReference, "paymentId", p.ID)
			return fiber.StatusOK, nil
		}
		if err != nil {
			return 0, err
		}
		if transitioned && h.notifier != nil {
			if ord, err := h.repo.GetByID(p.ExternalReference); err == nil {
				h.notifier.PaymentConfirmed(ord)
			}
		}
	case gwRejected, gwCancelled:
		_, err := h.repo.TransitionStatus(p.ExternalReference, order.StatusAwaitingPayment, order.StatusRejected)
		if err == order.ErrNotFound {
			h.log.Warn("webhook for unknown order", "orderId", p.ExternalReference, "paymentId", p.ID)
			return fiber.StatusOK, nil
		}
		if err != nil {
			return 0, err
		}
	default:
		// pending / in_process: leave the order awaiting payment
	}
	return fiber.StatusOK, nil
}
