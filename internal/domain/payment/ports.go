package payment

import "context"

// The three processor capabilities are deliberately separate interfaces:
// a refund-only integration must not be forced to implement recurring
// billing. All of them share one conversion contract: a gateway-level
// failure is returned as a failed Result, never as an error value, so
// the orchestrator treats "payment declined" as ordinary data and any
// variant is swappable without its sequencing changing.

// ChargeProcessor moves money once for a validated customer/payment pair.
type ChargeProcessor interface {
	ProcessTransaction(ctx context.Context, customer CustomerData, pay PaymentData) Result
}

// RefundProcessor reverses a prior charge identified by its transaction id.
// On failure the Result carries amount 0 and no transaction id.
type RefundProcessor interface {
	RefundPayment(ctx context.Context, transactionID string) Result
}

// RecurringProcessor establishes a billing profile and subscription for
// the customer. The multi-step gateway flow is not idempotent across
// retries unless the gateway itself de-duplicates profile creation.
type RecurringProcessor interface {
	ProcessRecurringPayment(ctx context.Context, customer CustomerData, pay PaymentData) Result
}
