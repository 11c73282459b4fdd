package mailer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kauanfelipempp/serverfc/internal/logging"
	"github.com/kauanfelipempp/serverfc/internal/order"
)

// Notifier builds the storefront emails and dispatches them in the
// background. Delivery is best effort: a failure is logged and never reaches
// the caller, so a flaky relay cannot fail a checkout or a webhook ack.
type Notifier struct {
	sender Sender
	log    *slog.Logger
}

func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender, log: logging.New("mailer")}
}

// OrderReceived is sent right after checkout with the payment link.
func (n *Notifier) OrderReceived(ord order.Order, paymentURL string) {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Olá, %s!</h2>", ord.Customer.Nome)
	fmt.Fprintf(&b, "<p>Recebemos seu pedido <strong>%s</strong>.</p>", ord.ID)
	writeItems(&b, ord)
	fmt.Fprintf(&b, "<p>Total: R$ %.2f</p>", ord.Total)
	fmt.Fprintf(&b, `<p>Para concluir, realize o pagamento: <a href="%s">pagar agora</a></p>`, paymentURL)

	n.dispatch(ord.Customer.Email, "Recebemos seu pedido", b.String())
}

// PaymentConfirmed is sent once, when the gateway reports the payment as
// approved.
func (n *Notifier) PaymentConfirmed(ord order.Order) {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Pagamento confirmado!</h2>")
	fmt.Fprintf(&b, "<p>%s, o pagamento do pedido <strong>%s</strong> foi aprovado.</p>", ord.Customer.Nome, ord.ID)
	fmt.Fprintf(&b, "<p>Em breve ele será preparado para envio.</p>")

	n.dispatch(ord.Customer.Email, "Pagamento confirmado", b.String())
}

// OrderShipped is sent on the admin-triggered shipment transition.
func (n *Notifier) OrderShipped(ord order.Order) {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Pedido enviado!</h2>")
	fmt.Fprintf(&b, "<p>%s, seu pedido <strong>%s</strong> está a caminho.</p>", ord.Customer.Nome, ord.ID)
	if ord.TrackingCode != "" {
		fmt.Fprintf(&b, "<p>Código de rastreio: <strong>%s</strong></p>", ord.TrackingCode)
	}

	n.dispatch(ord.Customer.Email, "Seu pedido foi enviado", b.String())
}

func (n *Notifier) dispatch(to, subject, html string) {
	go func() {
		if err := n.sender.Send(to, subject, html); err != nil {
			n.log.Warn("email delivery failed", "to", to, "subject", subject, "error", err.Error())
		}
	}()
}

func writeItems(b *strings.Builder, ord order.Order) {
	b.WriteString("<ul>")
	for _, it := range ord.Items {
		fmt.Fprintf(b, "<li>%dx %s", it.Quantidade, it.Nome)
		if it.Tamanho != "" {
			fmt.Fprintf(b, " (%s)", it.Tamanho)
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
}
