// Package memory provides in-process implementations of the external
// capabilities. They back the dev wiring of the binary and the package
// tests; nothing here survives a restart.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Zhima-Mochi/payflow/internal/domain/gateway"
	"github.com/Zhima-Mochi/payflow/internal/domain/payment"
)

type chargeRecord struct {
	amount   int64
	refunded bool
}

// Gateway is an in-memory payment gateway. Charges always succeed, refunds
// succeed exactly once per charge (a second attempt is rejected, like a
// real gateway refusing double refunds), and customer profiles are
// de-duplicated by customer name.
type Gateway struct {
	mu        sync.Mutex
	seq       int
	charges   map[string]*chargeRecord
	customers map[string]string // customer name -> profile id
	attached  map[string]string // profile id -> default method id
	planPrice int64
}

// NewGateway returns a gateway whose subscriptions bill planPrice minor
// units per period regardless of the price id they are created with.
func NewGateway(planPrice int64) *Gateway {
	return &Gateway{
		charges:   make(map[string]*chargeRecord),
		customers: make(map[string]string),
		attached:  make(map[string]string),
		planPrice: planPrice,
	}
}

func (g *Gateway) nextID(prefix string) string {
	g.seq++
	return fmt.Sprintf("%s_%d", prefix, g.seq)
}

func (g *Gateway) CreateCharge(_ context.Context, req gateway.ChargeRequest) (*gateway.Charge, error) {
	if req.Source == "" {
		return nil, &gateway.Error{Op: "create_charge", Code: "missing_source", Message: "no source token"}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextID("ch")
	g.charges[id] = &chargeRecord{amount: req.Amount}
	return &gateway.Charge{ID: id, Amount: req.Amount}, nil
}

func (g *Gateway) CreateRefund(_ context.Context, chargeID string) (*gateway.Refund, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.charges[chargeID]
	if !ok {
		return nil, &gateway.Error{Op: "create_refund", Code: "charge_not_found", Message: "no such charge: " + chargeID}
	}
	if rec.refunded {
		return nil, &gateway.Error{Op: "create_refund", Code: "charge_already_refunded", Message: "charge already refunded: " + chargeID}
	}
	rec.refunded = true

	return &gateway.Refund{ID: g.nextID("re"), ChargeID: chargeID, Amount: rec.amount}, nil
}

func (g *Gateway) ResolveOrCreateCustomer(_ context.Context, customer payment.CustomerData) (*gateway.Customer, error) {
	if customer.CustomerID != "" {
		return &gateway.Customer{ID: customer.CustomerID}, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if id, ok := g.customers[customer.Name]; ok {
		return &gateway.Customer{ID: id}, nil
	}
	id := g.nextID("cus")
	g.customers[customer.Name] = id
	return &gateway.Customer{ID: id}, nil
}

func (g *Gateway) AttachPaymentMethod(_ context.Context, customerID, source string) (*gateway.PaymentMethod, error) {
	if source == "" {
		return nil, &gateway.Error{Op: "attach_payment_method", Code: "missing_source", Message: "no source token"}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return &gateway.PaymentMethod{ID: g.nextID("pm")}, nil
}

func (g *Gateway) SetDefaultPaymentMethod(_ context.Context, customerID, methodID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.attached[customerID] = methodID
	return nil
}

func (g *Gateway) CreateSubscription(_ context.Context, customerID, priceID string) (*gateway.Subscription, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.attached[customerID]; !ok {
		return nil, &gateway.Error{Op: "create_subscription", Code: "no_default_payment_method", Message: "customer has no default payment method"}
	}
	return &gateway.Subscription{ID: g.nextID("sub"), Amount: g.planPrice}, nil
}
