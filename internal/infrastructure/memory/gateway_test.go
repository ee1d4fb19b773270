package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/payflow/internal/domain/gateway"
	"github.com/Zhima-Mochi/payflow/internal/domain/payment"
)

func TestGatewayRejectsDoubleRefund(t *testing.T) {
	gw := NewGateway(999)
	ctx := context.Background()

	ch, err := gw.CreateCharge(ctx, gateway.ChargeRequest{Amount: 100, Currency: "usd", Source: "tok_visa"})
	require.NoError(t, err)

	ref, err := gw.CreateRefund(ctx, ch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), ref.Amount)

	_, err = gw.CreateRefund(ctx, ch.ID)
	var gwErr *gateway.Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, "charge_already_refunded", gwErr.Code)
}

func TestGatewayRefundUnknownCharge(t *testing.T) {
	gw := NewGateway(999)

	_, err := gw.CreateRefund(context.Background(), "ch_missing")

	var gwErr *gateway.Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, "charge_not_found", gwErr.Code)
}

func TestGatewayDeduplicatesCustomerProfiles(t *testing.T) {
	gw := NewGateway(999)
	ctx := context.Background()
	alice := payment.CustomerData{Name: "Alice", Contact: &payment.ContactInfo{Email: "alice@x.com"}}

	first, err := gw.ResolveOrCreateCustomer(ctx, alice)
	require.NoError(t, err)
	second, err := gw.ResolveOrCreateCustomer(ctx, alice)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "resolve-or-create must not mint a second profile")
}

func TestGatewayReusesCallerSuppliedProfile(t *testing.T) {
	gw := NewGateway(999)

	cust, err := gw.ResolveOrCreateCustomer(context.Background(), payment.CustomerData{
		Name:       "Alice",
		Contact:    &payment.ContactInfo{Email: "alice@x.com"},
		CustomerID: "cus_known",
	})

	require.NoError(t, err)
	assert.Equal(t, "cus_known", cust.ID)
}

func TestGatewaySubscriptionRequiresDefaultMethod(t *testing.T) {
	gw := NewGateway(999)
	ctx := context.Background()

	cust, err := gw.ResolveOrCreateCustomer(ctx, payment.CustomerData{Name: "Alice"})
	require.NoError(t, err)

	_, err = gw.CreateSubscription(ctx, cust.ID, "price_monthly")
	var gwErr *gateway.Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, "no_default_payment_method", gwErr.Code)

	pm, err := gw.AttachPaymentMethod(ctx, cust.ID, "pm_card")
	require.NoError(t, err)
	require.NoError(t, gw.SetDefaultPaymentMethod(ctx, cust.ID, pm.ID))

	sub, err := gw.CreateSubscription(ctx, cust.ID, "price_monthly")
	require.NoError(t, err)
	assert.Equal(t, int64(999), sub.Amount)
}
