// Package notification defines the confirmation-sending capability and the
// opaque message transport it delegates to.
package notification

import (
	"context"
	"errors"

	"github.com/Zhima-Mochi/payflow/internal/domain/payment"
)

var (
	// ErrNoEmailChannel is returned when an email confirmation was requested
	// for a customer without an email address.
	ErrNoEmailChannel = errors.New("notification: customer has no email address")
	// ErrNoPhoneChannel is returned when an SMS confirmation was requested
	// for a customer without a phone number.
	ErrNoPhoneChannel = errors.New("notification: customer has no phone number")
)

// Notifier sends exactly one confirmation per call, at most once.
// Notifiers never inspect the payment result; whether to skip confirmation
// on a failed payment is the orchestrator's call.
type Notifier interface {
	SendConfirmation(ctx context.Context, customer payment.CustomerData) error
}

// Transport is the opaque outbound-message capability (SMTP relay, SMS
// gateway client, ...). Subject may be empty for transports without one.
type Transport interface {
	Send(ctx context.Context, to, subject, body string) error
}
