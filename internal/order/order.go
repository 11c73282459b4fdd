package order

// Order statuses as stored and exposed to the storefront. The values are the
// customer-facing Portuguese labels, so they are persisted verbatim.
const (
	StatusAwaitingPayment = "Aguardando Pagamento"
	StatusApproved        = "Pagamento Aprovado"
	StatusRejected        = "Pagamento Rejeitado"
	StatusShipped         = "Enviado"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusAwaitingPayment, StatusApproved, StatusRejected, StatusShipped:
		return true
	}
	return false
}

// Customer is the checkout-time snapshot of the buyer. It is denormalized on
// purpose: later profile edits must not change historical orders.
type Customer struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Endereco string `json:"endereco"`
	Cidade   string `json:"cidade"`
	Estado   string `json:"estado"`
	CEP      string `json:"cep"`
	Telefone string `json:"telefone,omitempty"`
}

// Item is a point-in-time snapshot of one cart line.
type Item struct {
	Nome       string  `json:"nome"`
	Preco      float64 `json:"preco"`
	Quantidade int     `json:"quantidade"`
	Tamanho    string  `json:"tamanho,omitempty"`
	Cor        string  `json:"cor,omitempty"`
	Img        string  `json:"img,omitempty"`
}

// Order is the aggregate persisted at checkout. ID doubles as the external
// reference sent to the payment gateway; it is the only join key the webhook
// has to locate the order later.
type Order struct {
	ID           string   `json:"_id"`
	Customer     Customer `json:"cliente"`
	Items        []Item   `json:"itens"`
	Subtotal     float64  `json:"subtotal"`
	Frete        float64  `json:"frete"`
	Desconto     float64  `json:"desconto"`
	Total        float64  `json:"total"`
	Status       string   `json:"status"`
	TrackingCode string   `json:"trackingCode,omitempty"`
	CreatedAt    string   `json:"createdAt"`
}
