// Package stripegw implements the gateway capability against Stripe.
// The API key is client state injected at construction, never the SDK's
// process-global stripe.Key, so credentials are established once at
// startup and read-only afterwards.
package stripegw

import (
	"context"

	stripe "github.com/stripe/stripe-go"
	"github.com/stripe/stripe-go/client"
	"go.uber.org/zap"

	"github.com/Zhima-Mochi/payflow/internal/domain/gateway"
	"github.com/Zhima-Mochi/payflow/internal/domain/payment"
)

type Gateway struct {
	api *client.API
	l   *zap.Logger
}

func New(apiKey string, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.L()
	}
	return &Gateway{
		api: client.New(apiKey, nil),
		l:   logger.Named("stripe_gateway"),
	}
}

func (g *Gateway) CreateCharge(ctx context.Context, req gateway.ChargeRequest) (*gateway.Charge, error) {
	params := &stripe.ChargeParams{
		Params:      stripe.Params{Context: ctx},
		Amount:      stripe.Int64(req.Amount),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
	}
	if err := params.SetSource(req.Source); err != nil {
		return nil, convert("create_charge", err)
	}

	ch, err := g.api.Charges.New(params)
	if err != nil {
		g.l.Warn("create_charge_failed", zap.Int64("amount", req.Amount), zap.Error(err))
		return nil, convert("create_charge", err)
	}
	return &gateway.Charge{ID: ch.ID, Amount: ch.Amount}, nil
}

func (g *Gateway) CreateRefund(ctx context.Context, chargeID string) (*gateway.Refund, error) {
	ref, err := g.api.Refunds.New(&stripe.RefundParams{
		Params: stripe.Params{Context: ctx},
		Charge: stripe.String(chargeID),
	})
	if err != nil {
		g.l.Warn("create_refund_failed", zap.String("charge_id", chargeID), zap.Error(err))
		return nil, convert("create_refund", err)
	}
	return &gateway.Refund{ID: ref.ID, ChargeID: chargeID, Amount: ref.Amount}, nil
}

// ResolveOrCreateCustomer reuses the caller-supplied gateway customer id
// when present; otherwise it creates a fresh profile. Stripe offers no
// server-side de-duplication by name, so callers that may retry must carry
// the id they were handed back.
func (g *Gateway) ResolveOrCreateCustomer(ctx context.Context, customer payment.CustomerData) (*gateway.Customer, error) {
	if customer.CustomerID != "" {
		return &gateway.Customer{ID: customer.CustomerID}, nil
	}

	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Name:   stripe.String(customer.Name),
	}
	if customer.Contact != nil {
		if customer.Contact.Email != "" {
			params.Email = stripe.String(customer.Contact.Email)
		}
		if customer.Contact.Phone != "" {
			params.Phone = stripe.String(customer.Contact.Phone)
		}
	}

	cs, err := g.api.Customers.New(params)
	if err != nil {
		g.l.Warn("create_customer_failed", zap.String("name", customer.Name), zap.Error(err))
		return nil, convert("resolve_or_create_customer", err)
	}
	return &gateway.Customer{ID: cs.ID}, nil
}

func (g *Gateway) AttachPaymentMethod(ctx context.Context, customerID, source string) (*gateway.PaymentMethod, error) {
	pm, err := g.api.PaymentMethods.Attach(source, &stripe.PaymentMethodAttachParams{
		Params:   stripe.Params{Context: ctx},
		Customer: stripe.String(customerID),
	})
	if err != nil {
		g.l.Warn("attach_payment_method_failed", zap.String("customer_id", customerID), zap.Error(err))
		return nil, convert("attach_payment_method", err)
	}
	return &gateway.PaymentMethod{ID: pm.ID}, nil
}

func (g *Gateway) SetDefaultPaymentMethod(ctx context.Context, customerID, methodID string) error {
	_, err := g.api.Customers.Update(customerID, &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(methodID),
		},
	})
	if err != nil {
		g.l.Warn("set_default_payment_method_failed", zap.String("customer_id", customerID), zap.Error(err))
		return convert("set_default_payment_method", err)
	}
	return nil
}

func (g *Gateway) CreateSubscription(ctx context.Context, customerID, priceID string) (*gateway.Subscription, error) {
	sub, err := g.api.Subscriptions.New(&stripe.SubscriptionParams{
		Params:   stripe.Params{Context: ctx},
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Plan: stripe.String(priceID)},
		},
	})
	if err != nil {
		g.l.Warn("create_subscription_failed", zap.String("customer_id", customerID), zap.Error(err))
		return nil, convert("create_subscription", err)
	}

	var amount int64
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Plan != nil {
		amount = sub.Items.Data[0].Plan.Amount
	}
	return &gateway.Subscription{ID: sub.ID, Amount: amount}, nil
}

// convert maps an SDK error (including timeouts, which are just another
// failed operation to this core) onto the domain gateway error.
func convert(op string, err error) *gateway.Error {
	if stripeErr, ok := err.(*stripe.Error); ok {
		return &gateway.Error{Op: op, Code: string(stripeErr.Code), Message: stripeErr.Msg}
	}
	return &gateway.Error{Op: op, Message: err.Error()}
}
