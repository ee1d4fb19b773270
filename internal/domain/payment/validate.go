package payment

// CustomerValidator performs the pure pre-flight checks on customer input.
// Checks run in a fixed order and short-circuit on the first failure.
// No side effects: the validator never logs, notifies, or touches the
// gateway.
type CustomerValidator struct{}

func (CustomerValidator) Validate(customer CustomerData) error {
	if customer.Name == "" {
		return ErrMissingName
	}
	if customer.Contact == nil {
		return ErrMissingContactInfo
	}
	if !customer.Contact.HasChannel() {
		return ErrNoReachableChannel
	}
	return nil
}

// PaymentValidator performs the pure pre-flight checks on payment input.
type PaymentValidator struct{}

func (PaymentValidator) Validate(pay PaymentData) error {
	if pay.Source == "" {
		return ErrMissingSource
	}
	if pay.Amount <= 0 {
		return ErrNonPositiveAmount
	}
	return nil
}
