// Package notify holds the confirmation-channel strategies. Each strategy
// sends at most one message per call through the opaque transport and
// reports an unreachable channel as an error without side effects.
package notify

import (
	"context"

	"github.com/Zhima-Mochi/payflow/internal/domain/notification"
	"github.com/Zhima-Mochi/payflow/internal/domain/payment"
	"github.com/Zhima-Mochi/payflow/internal/observability"
	"github.com/Zhima-Mochi/payflow/internal/observability/logctx"
)

const (
	confirmationSubject = "Payment Confirmation"
	confirmationBody    = "Thank you for your payment"
)

// EmailNotifier sends the fixed confirmation to the customer's email.
type EmailNotifier struct {
	transport notification.Transport
	log       observability.Logger
}

func NewEmailNotifier(transport notification.Transport, tel observability.Observability) *EmailNotifier {
	if tel == nil {
		tel = observability.Nop()
	}
	return &EmailNotifier{
		transport: transport,
		log:       tel.Logger().With(observability.F("component", "email_notifier")),
	}
}

func (n *EmailNotifier) SendConfirmation(ctx context.Context, customer payment.CustomerData) error {
	if customer.Contact == nil || customer.Contact.Email == "" {
		return notification.ErrNoEmailChannel
	}

	if err := n.transport.Send(ctx, customer.Contact.Email, confirmationSubject, confirmationBody); err != nil {
		return err
	}

	logctx.FromOr(ctx, n.log).Info("confirmation_sent",
		observability.F("channel", "email"),
		observability.F("to", customer.Contact.Email),
	)
	return nil
}
