package notifier

import (
	"context"
	"errors"
	"time"

	"github.com/pfrederiksen/carta-conjuntura/internal/observe"
	"github.com/pfrederiksen/carta-conjuntura/internal/report"
)

// ErrNoRecipient is returned when a message has no destination address.
var ErrNoRecipient = errors.New("no recipient address")

// Message is one composed e-mail.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers composed messages
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// Notifier e-mails a report to a recipient.
type Notifier struct {
	mailer   Mailer
	observer observe.Observer
}

// New creates a Notifier sending through m.
func New(m Mailer, obs observe.Observer) *Notifier {
	return &Notifier{mailer: m, observer: observe.OrNop(obs)}
}

// Notify composes and sends the report e-mail. Failures are reported in the
// returned status, never as an error.
func (n *Notifier) Notify(ctx context.Context, r report.Report, recipient string) report.DeliveryStatus {
	start := time.Now()
	err := n.send(ctx, r, recipient)
	n.observer.Observe(observe.Event{
		Kind:      observe.SendResult,
		Recipient: recipient,
		Duration:  time.Since(start),
		Err:       err,
	})

	if err != nil {
		return report.Failure("Falha ao enviar e-mail: %v", err)
	}
	return report.Success("E-mail enviado para %s.", recipient)
}

func (n *Notifier) send(ctx context.Context, r report.Report, recipient string) error {
	if recipient == "" {
		return ErrNoRecipient
	}

	msg, err := Compose(r)
	if err != nil {
		return err
	}
	msg.To = recipient

	return n.mailer.Send(ctx, msg)
}
