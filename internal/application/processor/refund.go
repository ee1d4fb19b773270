package processor

import (
	"context"
	"time"

	"github.com/Zhima-Mochi/payflow/internal/domain/gateway"
	"github.com/Zhima-Mochi/payflow/internal/domain/payment"
	"github.com/Zhima-Mochi/payflow/internal/observability"
	"github.com/Zhima-Mochi/payflow/internal/observability/logctx"
)

// Refunder implements payment.RefundProcessor over the gateway capability.
type Refunder struct {
	gw  gateway.Gateway
	ins instruments
}

func NewRefunder(gw gateway.Gateway, tel observability.Observability) *Refunder {
	return &Refunder{
		gw:  gw,
		ins: newInstruments(tel, "refund_processor"),
	}
}

func (r *Refunder) RefundPayment(ctx context.Context, transactionID string) payment.Result {
	logger := logctx.FromOr(ctx, r.ins.log)

	start := time.Now()
	refund, err := r.gw.CreateRefund(ctx, transactionID)
	r.ins.observe("create_refund", start, err)

	if err != nil {
		logger.Warn("refund_rejected",
			observability.F("transaction_id", transactionID),
			observability.F("error", err.Error()),
		)
		return payment.Failed(0, err.Error())
	}

	logger.Info("refund_created",
		observability.F("transaction_id", transactionID),
		observability.F("refund_id", refund.ID),
		observability.F("amount", refund.Amount),
	)
	return payment.Succeeded(refund.Amount, refund.ID)
}
