package auditlog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/payflow/internal/domain/audit"
	"github.com/Zhima-Mochi/payflow/internal/domain/payment"
	"github.com/Zhima-Mochi/payflow/internal/infrastructure/memory"
)

func TestLogWritesTwoLines(t *testing.T) {
	sink := memory.NewSink()
	l := New(sink)

	customer := payment.CustomerData{Name: "Alice", Contact: &payment.ContactInfo{Email: "alice@x.com"}}
	pay := payment.PaymentData{Amount: 100, Source: "tok_visa"}
	res := payment.Succeeded(100, "ch_1")

	require.NoError(t, l.Log(context.Background(), customer, pay, res))

	assert.Equal(t, []string{
		"Alice paid 100",
		"Payment status: succeeded",
	}, sink.Lines())
}

func TestLogRecordsFailedResults(t *testing.T) {
	sink := memory.NewSink()
	l := New(sink)

	customer := payment.CustomerData{Name: "Bob", Contact: &payment.ContactInfo{Phone: "+1555"}}
	res := payment.Failed(250, "card declined")

	require.NoError(t, l.Log(context.Background(), customer, payment.PaymentData{Amount: 250, Source: "tok"}, res))

	assert.Equal(t, []string{
		"Bob paid 250",
		"Payment status: failed",
	}, sink.Lines())
}

func TestLogSurfacesSinkFailure(t *testing.T) {
	sink := memory.NewSink()
	sink.SetErr(errors.New("disk full"))
	l := New(sink)

	customer := payment.CustomerData{Name: "Alice", Contact: &payment.ContactInfo{Email: "alice@x.com"}}
	err := l.Log(context.Background(), customer, payment.PaymentData{Amount: 100, Source: "tok"}, payment.Succeeded(100, "ch_1"))

	require.ErrorIs(t, err, audit.ErrSinkUnavailable)
	assert.Empty(t, sink.Lines())
}

func TestConcurrentRecordsNeverInterleave(t *testing.T) {
	sink := memory.NewSink()
	l := New(sink)

	const calls = 50
	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			customer := payment.CustomerData{
				Name:    fmt.Sprintf("customer-%d", i),
				Contact: &payment.ContactInfo{Email: "c@x.com"},
			}
			res := payment.Succeeded(int64(i+1), fmt.Sprintf("ch_%d", i))
			_ = l.Log(context.Background(), customer, payment.PaymentData{Amount: int64(i + 1), Source: "tok"}, res)
		}(i)
	}
	wg.Wait()

	lines := sink.Lines()
	require.Len(t, lines, calls*2)

	// Lines must strictly alternate paid/status; an interleaved record
	// would put two "paid" lines next to each other.
	for i := 0; i < len(lines); i += 2 {
		assert.Contains(t, lines[i], " paid ")
		assert.Equal(t, "Payment status: succeeded", lines[i+1])
	}
}
