package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrPaymentNotFound marks a payment id the gateway does not know. Retrying
// the lookup can never succeed, so callers ack instead of erroring.
var ErrPaymentNotFound = errors.New("payment not found")

// Client is a minimal MercadoPago REST client covering the two calls the
// store needs: creating a checkout preference and fetching a payment.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		// the preference call sits on the checkout critical path, so it
		// must never hang past a request cycle
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type PreferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

type Payer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Shipments struct {
	Cost float64 `json:"cost"`
	Mode string  `json:"mode"`
}

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PreferenceRequest mirrors POST /checkout/preferences. ExternalReference
// carries the order id and is echoed back on the payment object, which is
// how the webhook finds the order.
type PreferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	Payer             Payer            `json:"payer"`
	Shipments         Shipments        `json:"shipments"`
	BackURLs          BackURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return,omitempty"`
	ExternalReference string           `json:"external_reference"`
	NotificationURL   string           `json:"notification_url"`
}

type Preference struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// Payment is the subset of GET /v1/payments/:id the reconciler uses.
type Payment struct {
	ID                int64  `json:"id"`
	Status            string `json:"status"`
	ExternalReference string `json:"external_reference"`
}

func (c *Client) CreatePreference(ctx context.Context, pref PreferenceRequest) (Preference, error) {
	body, err := json.Marshal(pref)
	if err != nil {
		return Preference{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return Preference{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.http.Do(req)
	if err != nil {
		return Preference{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return Preference{}, fmt.Errorf("mercadopago: create preference: status %d: %s", res.StatusCode, msg)
	}

	var out Preference
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return Preference{}, err
	}
	return out, nil
}

func (c *Client) GetPayment(ctx context.Context, paymentID string) (Payment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payments/"+paymentID, nil)
	if err != nil {
		return Payment{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.http.Do(req)
	if err != nil {
		return Payment{}, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return Payment{}, fmt.Errorf("%w: %s", ErrPaymentNotFound, paymentID)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return Payment{}, fmt.Errorf("mercadopago: get payment %s: status %d: %s", paymentID, res.StatusCode, msg)
	}

	var out Payment
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return Payment{}, err
	}
	return out, nil
}
