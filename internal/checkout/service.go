package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kauanfelipempp/serverfc/internal/logging"
	"github.com/kauanfelipempp/serverfc/internal/order"
	"github.com/kauanfelipempp/serverfc/internal/payment"
	"github.com/kauanfelipempp/serverfc/internal/pricing"
)

var (
	ErrInvalidCart = errors.New("invalid cart")
	ErrGateway     = errors.New("payment gateway error")
)

// Gateway is the slice of the payment client checkout depends on.
type Gateway interface {
	CreatePreference(ctx context.Context, pref payment.PreferenceRequest) (payment.Preference, error)
}

// Notifier sends the order-received email with the payment link.
type Notifier interface {
	OrderReceived(ord order.Order, paymentURL string)
}

// URLs are the fixed redirect and callback targets embedded in every
// payment preference.
type URLs struct {
	Success      string
	Failure      string
	Pending      string
	Notification string
}

// Request is a validated checkout submission: the customer snapshot plus
// the cart exactly as the storefront assembled it.
type Request struct {
	Customer order.Customer `json:"cliente"`
	Items    []order.Item   `json:"itens"`
	Frete    float64        `json:"frete"`
	Desconto float64        `json:"desconto"`
	Total    float64        `json:"total"`
}

type Result struct {
	OrderID    string
	PaymentURL string
}

// Service orchestrates a checkout: validate, allocate the coupon discount
// across the cart, open a payment preference at the gateway, persist the
// order awaiting payment and fire the confirmation email.
type Service struct {
	repo     order.Repository
	gateway  Gateway
	notifier Notifier
	urls     URLs
	log      *slog.Logger
}

func NewService(repo order.Repository, gateway Gateway, notifier Notifier, urls URLs) *Service {
	return &Service{
		repo:     repo,
		gateway:  gateway,
		notifier: notifier,
		urls:     urls,
		log:      logging.New("checkout"),
	}
}

func (s *Service) Checkout(ctx context.Context, req Request) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}

	items := make([]pricing.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, pricing.Item{
			Name:      it.Nome,
			UnitPrice: it.Preco,
			Quantity:  it.Quantidade,
		})
	}
	// the gateway gets server-side discounted prices; client-sent unit
	// prices are never forwarded as final
	allocated := pricing.Allocate(items, req.Desconto)
	subtotal, _ := pricing.Subtotal(items).Round(2).Float64()

	// the order id is minted before the gateway call and rides along as
	// the external reference, so the webhook can find the order later
	id := uuid.NewString()

	prefItems := make([]payment.PreferenceItem, 0, len(allocated))
	for _, it := range allocated {
		prefItems = append(prefItems, payment.PreferenceItem{
			Title:      it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.DiscountedUnitPrice,
			CurrencyID: "BRL",
		})
	}

	pref, err := s.gateway.CreatePreference(ctx, payment.PreferenceRequest{
		Items: prefItems,
		Payer: payment.Payer{Name: req.Customer.Nome, Email: req.Customer.Email},
		Shipments: payment.Shipments{
			Cost: req.Frete,
			Mode: "not_specified",
		},
		BackURLs: payment.BackURLs{
			Success: s.urls.Success,
			Failure: s.urls.Failure,
			Pending: s.urls.Pending,
		},
		AutoReturn:        "approved",
		ExternalReference: id,
		NotificationURL:   s.urls.Notification,
	})
	if err != nil {
		// no order is persisted on gateway failure; the client resubmits
		return Result{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	ord, err := s.repo.Create(order.Order{
		ID:        id,
		Customer:  req.Customer,
		Items:     req.Items,
		Subtotal:  subtotal,
		Frete:     req.Frete,
		Desconto:  req.Desconto,
		Total:     req.Total,
		Status:    order.StatusAwaitingPayment,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return Result{}, err
	}

	// best effort, off the critical path: the response never waits on mail
	if s.notifier != nil {
		s.notifier.OrderReceived(ord, pref.InitPoint)
	}

	s.log.Info("order created", "orderId", id, "total", req.Total, "items", len(req.Items))
	return Result{OrderID: id, PaymentURL: pref.InitPoint}, nil
}

func validate(req Request) error {
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: carrinho vazio", ErrInvalidCart)
	}
	for _, it := range req.Items {
		if it.Quantidade <= 0 {
			return fmt.Errorf("%w: quantidade inválida para %q", ErrInvalidCart, it.Nome)
		}
		if it.Preco < 0 {
			return fmt.Errorf("%w: preço inválido para %q", ErrInvalidCart, it.Nome)
		}
	}
	if req.Frete < 0 || req.Desconto < 0 || req.Total < 0 {
		return fmt.Errorf("%w: valores negativos", ErrInvalidCart)
	}
	if req.Customer.Nome == "" || req.Customer.Email == "" {
		return fmt.Errorf("%w: dados do cliente incompletos", ErrInvalidCart)
	}
	return nil
}
