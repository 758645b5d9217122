package notifier

import (
	"context"
	"fmt"
	"io"
)

// DryRunMailer prints what would be sent without sending it
type DryRunMailer struct {
	out io.Writer
}

// NewDryRunMailer creates a dry-run mailer writing to out.
func NewDryRunMailer(out io.Writer) *DryRunMailer {
	return &DryRunMailer{out: out}
}

// Send prints the message headers and plain-text body.
func (d *DryRunMailer) Send(_ context.Context, msg *Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	_, err := fmt.Fprintf(d.out, "--- E-mail ---\nPara: %s\nAssunto: %s\n\n%s\n\n(HTML: %d bytes)\n",
		msg.To, msg.Subject, msg.Text, len(msg.HTML))
	return err
}
