package processor

import (
	"context"
	"time"

	"github.com/Zhima-Mochi/payflow/internal/domain/gateway"
	"github.com/Zhima-Mochi/payflow/internal/domain/payment"
	"github.com/Zhima-Mochi/payflow/internal/observability"
	"github.com/Zhima-Mochi/payflow/internal/observability/logctx"
)

// RecurringBiller implements payment.RecurringProcessor. It walks the
// four-step gateway flow (profile → payment method → default → subscription)
// and aborts on the first failing step. De-duplicating profile creation
// across retries is the gateway implementation's responsibility, not ours.
type RecurringBiller struct {
	gw      gateway.Gateway
	priceID string
	ins     instruments
}

func NewRecurringBiller(gw gateway.Gateway, priceID string, tel observability.Observability) *RecurringBiller {
	return &RecurringBiller{
		gw:      gw,
		priceID: priceID,
		ins:     newInstruments(tel, "recurring_processor"),
	}
}

func (b *RecurringBiller) ProcessRecurringPayment(ctx context.Context, customer payment.CustomerData, pay payment.PaymentData) payment.Result {
	logger := logctx.FromOr(ctx, b.ins.log).With(observability.F("customer", customer.Name))

	start := time.Now()
	profile, err := b.gw.ResolveOrCreateCustomer(ctx, customer)
	b.ins.observe("resolve_or_create_customer", start, err)
	if err != nil {
		logger.Warn("recurring_profile_failed", observability.F("error", err.Error()))
		return payment.Failed(0, err.Error())
	}

	start = time.Now()
	method, err := b.gw.AttachPaymentMethod(ctx, profile.ID, pay.Source)
	b.ins.observe("attach_payment_method", start, err)
	if err != nil {
		logger.Warn("recurring_attach_failed", observability.F("error", err.Error()))
		return payment.Failed(0, err.Error())
	}

	start = time.Now()
	err = b.gw.SetDefaultPaymentMethod(ctx, profile.ID, method.ID)
	b.ins.observe("set_default_payment_method", start, err)
	if err != nil {
		logger.Warn("recurring_default_failed", observability.F("error", err.Error()))
		return payment.Failed(0, err.Error())
	}

	start = time.Now()
	sub, err := b.gw.CreateSubscription(ctx, profile.ID, b.priceID)
	b.ins.observe("create_subscription", start, err)
	if err != nil {
		logger.Warn("recurring_subscribe_failed", observability.F("error", err.Error()))
		return payment.Failed(0, err.Error())
	}

	logger.Info("subscription_created",
		observability.F("subscription_id", sub.ID),
		observability.F("amount", sub.Amount),
	)
	// The billed amount comes from the subscription's first line item, not
	// from the request: the price id decides what the plan costs.
	return payment.Succeeded(sub.Amount, sub.ID)
}
