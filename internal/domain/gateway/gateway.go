// Package gateway defines the opaque payment-gateway capability the
// processor strategies depend on. Concrete network clients (Stripe, a
// scripted in-memory double, ...) live in infrastructure and are injected
// at startup together with their credentials.
package gateway

import (
	"context"
	"fmt"

	"github.com/Zhima-Mochi/payflow/internal/domain/payment"
)

// Error is the failure every gateway operation may return. Timeouts and
// transport problems inside an implementation surface as an Error like any
// declined operation; the processors convert all of them uniformly.
type Error struct {
	Op      string
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway: %s: %s (%s)", e.Op, e.Message, e.Code)
	}
	return fmt.Sprintf("gateway: %s: %s", e.Op, e.Message)
}

type ChargeRequest struct {
	Amount      int64
	Currency    string
	Source      string
	Description string
}

type Charge struct {
	ID     string
	Amount int64
}

type Refund struct {
	ID       string
	ChargeID string
	Amount   int64
}

type Customer struct {
	ID string
}

type PaymentMethod struct {
	ID string
}

// Subscription carries the identifier of the created subscription and the
// unit price of its first line item in minor currency units.
type Subscription struct {
	ID     string
	Amount int64
}

// Gateway is the full capability surface required by the three processor
// variants. Implementations own credential lifecycle (established once at
// process scope, read-only afterwards) and any de-duplication of
// ResolveOrCreateCustomer: calling it twice for the same customer must not
// create two profiles.
type Gateway interface {
	CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error)
	CreateRefund(ctx context.Context, chargeID string) (*Refund, error)
	ResolveOrCreateCustomer(ctx context.Context, customer payment.CustomerData) (*Customer, error)
	AttachPaymentMethod(ctx context.Context, customerID, source string) (*PaymentMethod, error)
	SetDefaultPaymentMethod(ctx context.Context, customerID, methodID string) error
	CreateSubscription(ctx context.Context, customerID, priceID string) (*Subscription, error)
}
