package orchestrator

// IDGenerator supplies the attempt id stamped on every pipeline run's logs
// and span.
type IDGenerator interface {
	NewID() string
}
