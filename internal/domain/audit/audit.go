// Package audit defines the append-only record of transaction outcomes.
// Losing an audit write is unacceptable for a financial system, so sink
// failures are always surfaced, never retried or swallowed here.
package audit

import (
	"context"
	"errors"

	"github.com/Zhima-Mochi/payflow/internal/domain/payment"
)

// ErrSinkUnavailable wraps a failed append so callers can recognise audit
// loss regardless of the concrete sink.
var ErrSinkUnavailable = errors.New("audit: sink unavailable")

// Sink is the opaque durable append capability. Appends of a single line
// must be atomic with respect to concurrent appenders.
type Sink interface {
	AppendLine(ctx context.Context, line string) error
}

// TransactionLogger records one two-line entry per orchestration call:
//
//	<name> paid <amount>
//	Payment status: <status>
//
// Implementations must keep the pair contiguous under concurrent calls.
type TransactionLogger interface {
	Log(ctx context.Context, customer payment.CustomerData, pay payment.PaymentData, result payment.Result) error
}
