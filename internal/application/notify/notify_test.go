package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/payflow/internal/domain/notification"
	"github.com/Zhima-Mochi/payflow/internal/domain/payment"
	"github.com/Zhima-Mochi/payflow/internal/infrastructure/memory"
)

func TestEmailNotifierSendsOnce(t *testing.T) {
	transport := memory.NewTransport(nil)
	n := NewEmailNotifier(transport, nil)

	customer := payment.CustomerData{Name: "Alice", Contact: &payment.ContactInfo{Email: "alice@x.com"}}
	require.NoError(t, n.SendConfirmation(context.Background(), customer))

	msgs := transport.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "alice@x.com", msgs[0].To)
	assert.Equal(t, "Payment Confirmation", msgs[0].Subject)
	assert.Equal(t, "Thank you for your payment", msgs[0].Body)
}

func TestEmailNotifierNoChannel(t *testing.T) {
	transport := memory.NewTransport(nil)
	n := NewEmailNotifier(transport, nil)

	customer := payment.CustomerData{Name: "Bob", Contact: &payment.ContactInfo{Phone: "+1555"}}
	err := n.SendConfirmation(context.Background(), customer)

	require.ErrorIs(t, err, notification.ErrNoEmailChannel)
	assert.Empty(t, transport.Messages(), "no message may leave on a missing channel")
}

func TestSMSNotifierSendsOnce(t *testing.T) {
	transport := memory.NewTransport(nil)
	n := NewSMSNotifier("Twilio", transport, nil)

	customer := payment.CustomerData{Name: "Bob", Contact: &payment.ContactInfo{Phone: "+1555"}}
	require.NoError(t, n.SendConfirmation(context.Background(), customer))

	msgs := transport.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "+1555", msgs[0].To)
	assert.Equal(t, "Thank you for your payment", msgs[0].Body)
}

func TestSMSNotifierNoChannel(t *testing.T) {
	transport := memory.NewTransport(nil)
	n := NewSMSNotifier("Twilio", transport, nil)

	customer := payment.CustomerData{Name: "Alice", Contact: &payment.ContactInfo{Email: "alice@x.com"}}
	err := n.SendConfirmation(context.Background(), customer)

	require.ErrorIs(t, err, notification.ErrNoPhoneChannel)
	assert.Empty(t, transport.Messages())
}

func TestNotifierSurfacesTransportFailure(t *testing.T) {
	transport := memory.NewTransport(nil)
	transport.SetErr(errors.New("relay down"))
	n := NewEmailNotifier(transport, nil)

	customer := payment.CustomerData{Name: "Alice", Contact: &payment.ContactInfo{Email: "alice@x.com"}}
	err := n.SendConfirmation(context.Background(), customer)

	require.EqualError(t, err, "relay down")
	assert.Empty(t, transport.Messages())
}
