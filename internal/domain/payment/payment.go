package payment

// PaymentData describes a single requested monetary movement.
// Amount is expressed in minor currency units and must be strictly
// positive. Source is an opaque funding-instrument token produced
// upstream; this core never inspects it.
type PaymentData struct {
	Amount int64
	Source string
}

type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Result is the uniform outcome value every processor variant produces.
// It is created exactly once per pipeline run and flows forward to the
// notifier and the transaction logger unchanged; those stages are side
// effects, not transformations.
type Result struct {
	Status        Status
	Amount        int64
	TransactionID string
	Message       string
}

// Succeeded builds the success result for a completed gateway operation.
func Succeeded(amount int64, transactionID string) Result {
	return Result{
		Status:        StatusSucceeded,
		Amount:        amount,
		TransactionID: transactionID,
	}
}

// Failed builds the converted-failure result. Gateway errors are carried
// as data in Message so callers distinguish "payment declined" from a code
// defect through Status alone.
func Failed(amount int64, message string) Result {
	return Result{
		Status:  StatusFailed,
		Amount:  amount,
		Message: message,
	}
}

// Ok reports whether the monetary operation completed.
func (r Result) Ok() bool {
	return r.Status == StatusSucceeded
}
