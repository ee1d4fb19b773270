// Package auditlog writes the durable two-line transaction record.
package auditlog

import (
	"context"
	"fmt"
	"sync"

	"github.com/Zhima-Mochi/payflow/internal/domain/audit"
	"github.com/Zhima-Mochi/payflow/internal/domain/payment"
)

// Logger appends one record per orchestration call to the audit sink.
// The mutex keeps the two lines of a record contiguous when orchestration
// calls run concurrently; the sink only guarantees atomicity per line.
type Logger struct {
	mu   sync.Mutex
	sink audit.Sink
}

func New(sink audit.Sink) *Logger {
	return &Logger{sink: sink}
}

func (l *Logger) Log(ctx context.Context, customer payment.CustomerData, pay payment.PaymentData, result payment.Result) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.sink.AppendLine(ctx, fmt.Sprintf("%s paid %d", customer.Name, result.Amount)); err != nil {
		return fmt.Errorf("%w: %w", audit.ErrSinkUnavailable, err)
	}
	if err := l.sink.AppendLine(ctx, fmt.Sprintf("Payment status: %s", result.Status)); err != nil {
		return fmt.Errorf("%w: %w", audit.ErrSinkUnavailable, err)
	}
	return nil
}
