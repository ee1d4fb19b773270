package httppresentation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/payflow/internal/application/auditlog"
	"github.com/Zhima-Mochi/payflow/internal/application/notify"
	"github.com/Zhima-Mochi/payflow/internal/application/orchestrator"
	"github.com/Zhima-Mochi/payflow/internal/application/processor"
	"github.com/Zhima-Mochi/payflow/internal/infrastructure/id"
	"github.com/Zhima-Mochi/payflow/internal/infrastructure/memory"
)

func newTestRouter(t *testing.T) (http.Handler, *memory.Sink) {
	t.Helper()

	gw := memory.NewGateway(999)
	sink := memory.NewSink()
	transport := memory.NewTransport(nil)

	pipeline := orchestrator.NewService(
		processor.NewCharger(gw, "usd", nil),
		processor.NewRefunder(gw, nil),
		processor.NewRecurringBiller(gw, "price_monthly", nil),
		notify.NewEmailNotifier(transport, nil),
		auditlog.New(sink),
		id.NewUUIDGenerator(),
		nil,
	)
	return NewHandler(pipeline, nil, nil).Router(), sink
}

func TestHandleProcessPayment(t *testing.T) {
	router, sink := newTestRouter(t)

	body := `{
		"customer": {"name": "Alice", "contact_info": {"email": "alice@x.com"}},
		"payment": {"amount": 100, "source": "tok_visa"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Status        string `json:"status"`
		Amount        int64  `json:"amount"`
		TransactionID string `json:"transaction_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "succeeded", resp.Status)
	assert.Equal(t, int64(100), resp.Amount)
	assert.Equal(t, "ch_1", resp.TransactionID)

	assert.Len(t, sink.Lines(), 2)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHandleProcessPaymentValidationFailure(t *testing.T) {
	router, sink := newTestRouter(t)

	body := `{
		"customer": {"name": "Bob", "contact_info": {"phone": "+1555"}},
		"payment": {"amount": 0, "source": "tok_visa"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sink.Lines(), "a rejected request must not reach the sink")
}

func TestHandleRefund(t *testing.T) {
	router, _ := newTestRouter(t)

	charge := `{
		"customer": {"name": "Alice", "contact_info": {"email": "alice@x.com"}},
		"payment": {"amount": 100, "source": "tok_visa"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(charge))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	refund := `{
		"customer": {"name": "Alice", "contact_info": {"email": "alice@x.com"}},
		"transaction_id": "ch_1"
	}`
	req = httptest.NewRequest(http.MethodPost, "/payments/refund", strings.NewReader(refund))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Status string `json:"status"`
		Amount int64  `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "succeeded", resp.Status)
	assert.Equal(t, int64(100), resp.Amount)
}

func TestHandleUnknownFieldRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{"bogus": true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/payments", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
