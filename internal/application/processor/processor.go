// Package processor holds the gateway-backed payment strategies. Every
// strategy obeys one conversion contract: a gateway failure is turned into
// a failed payment.Result and never escapes as an error, so the
// orchestrator can treat a declined payment as ordinary data.
package processor

import (
	"time"

	"github.com/Zhima-Mochi/payflow/internal/observability"
)

const gatewayPeer = "gateway"

// instruments bundles the component logger and external-call metrics every
// strategy records around its gateway invocations.
type instruments struct {
	log      observability.Logger
	requests observability.Counter
	duration observability.Histogram
}

func newInstruments(tel observability.Observability, component string) instruments {
	if tel == nil {
		tel = observability.Nop()
	}
	return instruments{
		log:      tel.Logger().With(observability.F("component", component)),
		requests: tel.Metrics().Counter(observability.MExternalRequests),
		duration: tel.Metrics().Histogram(observability.MExternalRequestDuration),
	}
}

func (i instruments) observe(endpoint string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	i.requests.Add(1,
		observability.L("peer", gatewayPeer),
		observability.L("endpoint", endpoint),
		observability.L("outcome", outcome),
	)
	i.duration.Observe(time.Since(start).Seconds(),
		observability.L("peer", gatewayPeer),
		observability.L("endpoint", endpoint),
	)
}
