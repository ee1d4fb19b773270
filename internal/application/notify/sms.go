package notify

import (
	"context"

	"github.com/Zhima-Mochi/payflow/internal/domain/notification"
	"github.com/Zhima-Mochi/payflow/internal/domain/payment"
	"github.com/Zhima-Mochi/payflow/internal/observability"
	"github.com/Zhima-Mochi/payflow/internal/observability/logctx"
)

// SMSNotifier sends the fixed confirmation to the customer's phone through
// the named SMS gateway.
type SMSNotifier struct {
	gatewayName string
	transport   notification.Transport
	log         observability.Logger
}

func NewSMSNotifier(gatewayName string, transport notification.Transport, tel observability.Observability) *SMSNotifier {
	if tel == nil {
		tel = observability.Nop()
	}
	return &SMSNotifier{
		gatewayName: gatewayName,
		transport:   transport,
		log:         tel.Logger().With(observability.F("component", "sms_notifier")),
	}
}

func (n *SMSNotifier) SendConfirmation(ctx context.Context, customer payment.CustomerData) error {
	if customer.Contact == nil || customer.Contact.Phone == "" {
		return notification.ErrNoPhoneChannel
	}

	// SMS has no subject line; the transport ignores it.
	if err := n.transport.Send(ctx, customer.Contact.Phone, "", confirmationBody); err != nil {
		return err
	}

	logctx.FromOr(ctx, n.log).Info("confirmation_sent",
		observability.F("channel", "sms"),
		observability.F("gateway", n.gatewayName),
		observability.F("to", customer.Contact.Phone),
	)
	return nil
}
