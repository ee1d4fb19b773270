package payment

// ContactInfo carries the channels a customer can be reached on.
// A customer is notifiable when at least one channel is set.
type ContactInfo struct {
	Email string
	Phone string
}

// HasChannel reports whether any notification channel is available.
func (c *ContactInfo) HasChannel() bool {
	return c != nil && (c.Email != "" || c.Phone != "")
}

// CustomerData identifies the paying customer for the duration of one
// orchestration call. It is caller-constructed and read-only inside the
// pipeline. Contact is nil when the caller supplied no contact block at
// all, which is a distinct validation failure from an empty one.
// CustomerID is assigned by the gateway once a recurring-billing profile
// exists and is empty for first-time customers.
type CustomerData struct {
	Name       string
	Contact    *ContactInfo
	CustomerID string
}
