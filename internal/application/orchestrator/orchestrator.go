// Package orchestrator sequences one payment pipeline:
//
//	validate → process → notify → log
//
// Validation failures abort before any external side effect. The processor
// stage is structurally infallible (gateway failures arrive converted into
// a failed Result). A notification failure is surfaced but never aborts:
// money has already moved. An audit failure fails the whole call even
// though the charge stands, because silently losing an audit record is
// unacceptable; callers must read Outcome.Result to see what the money did.
package orchestrator

import (
	"context"
	"time"

	"github.com/Zhima-Mochi/payflow/internal/domain/audit"
	"github.com/Zhima-Mochi/payflow/internal/domain/notification"
	"github.com/Zhima-Mochi/payflow/internal/domain/payment"
	"github.com/Zhima-Mochi/payflow/internal/observability"
	"github.com/Zhima-Mochi/payflow/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "payment-orchestrator"
	spanPrefix  = "UC."

	opProcess   = "payment.process"
	opRefund    = "payment.refund"
	opRecurring = "payment.recurring"
)

// Outcome is what a completed (or audit-failed) pipeline run hands back.
// NotifyErr carries the non-fatal notification failure, if any; the Result
// is returned exactly as the processor produced it.
type Outcome struct {
	Result    payment.Result
	NotifyErr error
}

// Service composes the validators, one processor per variant, a notifier,
// and the transaction logger. All collaborators are injected at
// construction; the orchestrator never selects them by type inspection.
type Service struct {
	customers payment.CustomerValidator
	payments  payment.PaymentValidator

	charger   payment.ChargeProcessor
	refunder  payment.RefundProcessor
	recurring payment.RecurringProcessor

	notifier notification.Notifier
	txLog    audit.TransactionLogger
	idGen    IDGenerator

	tel observability.Observability
	log observability.Logger

	reqCounter     observability.Counter   // payment_requests_total{operation,outcome}
	durHistogram   observability.Histogram // payment_duration_seconds{operation}
	notifyFailures observability.Counter   // notification_failures_total{operation}
}

func NewService(
	charger payment.ChargeProcessor,
	refunder payment.RefundProcessor,
	recurring payment.RecurringProcessor,
	notifier notification.Notifier,
	txLog audit.TransactionLogger,
	idGen IDGenerator,
	tel observability.Observability,
) *Service {
	if tel == nil {
		tel = observability.Nop()
	}
	metrics := tel.Metrics()
	return &Service{
		charger:        charger,
		refunder:       refunder,
		recurring:      recurring,
		notifier:       notifier,
		txLog:          txLog,
		idGen:          idGen,
		tel:            tel,
		log:            tel.Logger().With(observability.F("service", serviceName)),
		reqCounter:     metrics.Counter(observability.MPaymentRequests),
		durHistogram:   metrics.Histogram(observability.MPaymentDuration),
		notifyFailures: metrics.Counter(observability.MNotificationFailures),
	}
}

// Process runs the charge pipeline for one customer/payment pair.
func (s *Service) Process(ctx context.Context, customer payment.CustomerData, pay payment.PaymentData) (*Outcome, error) {
	return s.run(ctx, opProcess, "ProcessPayment", customer, &pay, func(ctx context.Context) payment.Result {
		return s.charger.ProcessTransaction(ctx, customer, pay)
	})
}

// Refund runs the refund pipeline for a prior charge. There is no payment
// input to validate; the customer is still validated because the notify and
// audit stages need a reachable, named customer.
func (s *Service) Refund(ctx context.Context, customer payment.CustomerData, transactionID string) (*Outcome, error) {
	return s.run(ctx, opRefund, "RefundPayment", customer, nil, func(ctx context.Context) payment.Result {
		return s.refunder.RefundPayment(ctx, transactionID)
	})
}

// ProcessRecurring runs the subscription pipeline.
func (s *Service) ProcessRecurring(ctx context.Context, customer payment.CustomerData, pay payment.PaymentData) (*Outcome, error) {
	return s.run(ctx, opRecurring, "ProcessRecurringPayment", customer, &pay, func(ctx context.Context) payment.Result {
		return s.recurring.ProcessRecurringPayment(ctx, customer, pay)
	})
}

// run owns the stage sequencing and the use-case harness (span, RED
// metrics, structured completion log). pay is nil on the refund path.
func (s *Service) run(
	ctx context.Context,
	operation, spanName string,
	customer payment.CustomerData,
	pay *payment.PaymentData,
	exec func(ctx context.Context) payment.Result,
) (_ *Outcome, err error) {
	attemptID := ""
	if s.idGen != nil {
		attemptID = s.idGen.NewID()
	}
	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("operation", operation),
		observability.F("attempt_id", attemptID),
	)

	ctx, span := s.tel.Tracer().Start(ctx, spanPrefix+spanName,
		attribute.String("operation", operation),
		attribute.String("payment.attempt_id", attemptID),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"
	var notifyErr error

	defer func() {
		lat := time.Since(start).Seconds()

		if span != nil {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, statusText)
			} else {
				span.SetStatus(codes.Ok, statusText)
			}
			span.End()
		}

		s.reqCounter.Add(1,
			observability.L("operation", operation),
			observability.L("outcome", outcome),
		)
		s.durHistogram.Observe(lat,
			observability.L("operation", operation),
		)

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", lat),
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if notifyErr != nil {
			fields = append(fields, observability.F("notify_error", notifyErr.Error()))
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}

		logger.Info("payment_pipeline_done", fields...)
	}()

	// Start → Validated. First failure aborts with zero external effects.
	if verr := s.customers.Validate(customer); verr != nil {
		outcome, statusText = "error", "CUSTOMER_INVALID"
		return nil, &StageError{Stage: StageValidation, Err: verr}
	}
	if pay != nil {
		if verr := s.payments.Validate(*pay); verr != nil {
			outcome, statusText = "error", "PAYMENT_INVALID"
			return nil, &StageError{Stage: StageValidation, Err: verr}
		}
	}
	if cerr := ctx.Err(); cerr != nil {
		outcome, statusText = "error", "CONTEXT_CANCELED"
		return nil, cerr
	}

	// Validated → Processed. Always yields a Result; a declined payment is
	// data, not an error.
	result := exec(ctx)
	span.SetAttributes(
		attribute.String("payment.status", string(result.Status)),
		attribute.String("payment.transaction_id", result.TransactionID),
	)
	if !result.Ok() {
		statusText = "PAYMENT_DECLINED"
	}

	// Processed → Notified. Non-fatal: the charge already happened.
	notifyErr = s.notifier.SendConfirmation(ctx, customer)
	if notifyErr != nil {
		if statusText == "OK" {
			statusText = "NOTIFY_FAILED"
		}
		s.notifyFailures.Add(1, observability.L("operation", operation))
		logger.Warn("confirmation_failed",
			observability.F("customer", customer.Name),
			observability.F("error", notifyErr.Error()),
		)
		span.AddEvent("notification.failed")
	}

	// Notified → Logged. Fatal on failure; the charge still stands.
	var payData payment.PaymentData
	if pay != nil {
		payData = *pay
	}
	if lerr := s.txLog.Log(ctx, customer, payData, result); lerr != nil {
		outcome, statusText = "error", "AUDIT_WRITE_FAILED"
		err = &StageError{Stage: StageAudit, Err: lerr}
		return &Outcome{Result: result, NotifyErr: notifyErr}, err
	}

	// Logged → Done.
	return &Outcome{Result: result, NotifyErr: notifyErr}, nil
}
