package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/Zhima-Mochi/payflow/internal/domain/gateway"
	"github.com/Zhima-Mochi/payflow/internal/domain/payment"
	"github.com/Zhima-Mochi/payflow/internal/observability"
	"github.com/Zhima-Mochi/payflow/internal/observability/logctx"
)

// Charger implements payment.ChargeProcessor over the gateway capability.
// The currency is fixed at construction; this core handles exactly one.
type Charger struct {
	gw       gateway.Gateway
	currency string
	ins      instruments
}

func NewCharger(gw gateway.Gateway, currency string, tel observability.Observability) *Charger {
	return &Charger{
		gw:       gw,
		currency: currency,
		ins:      newInstruments(tel, "charge_processor"),
	}
}

func (c *Charger) ProcessTransaction(ctx context.Context, customer payment.CustomerData, pay payment.PaymentData) payment.Result {
	logger := logctx.FromOr(ctx, c.ins.log)

	start := time.Now()
	charge, err := c.gw.CreateCharge(ctx, gateway.ChargeRequest{
		Amount:      pay.Amount,
		Currency:    c.currency,
		Source:      pay.Source,
		Description: fmt.Sprintf("Payment from %s", customer.Name),
	})
	c.ins.observe("create_charge", start, err)

	if err != nil {
		logger.Warn("charge_declined",
			observability.F("customer", customer.Name),
			observability.F("amount", pay.Amount),
			observability.F("error", err.Error()),
		)
		return payment.Failed(pay.Amount, err.Error())
	}

	logger.Info("charge_created",
		observability.F("transaction_id", charge.ID),
		observability.F("amount", pay.Amount),
	)
	return payment.Succeeded(pay.Amount, charge.ID)
}
