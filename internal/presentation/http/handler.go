package httppresentation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Zhima-Mochi/payflow/internal/application/orchestrator"
	domainPayment "github.com/Zhima-Mochi/payflow/internal/domain/payment"
	"github.com/Zhima-Mochi/payflow/internal/observability"
	"github.com/Zhima-Mochi/payflow/internal/observability/logctx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	pipeline *orchestrator.Service
	log      observability.Logger
	tel      observability.Observability
}

const (
	componentHTTPHandler = "http_server"
	headerRequestID      = "X-Request-ID"
	headerTenantID       = "X-Tenant-ID"
)

func NewHandler(pipeline *orchestrator.Service, logger observability.Logger, tel observability.Observability) *Handler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = observability.NopLogger()
	}
	return &Handler{
		pipeline: pipeline,
		log:      baseLogger.With(observability.F("component", componentHTTPHandler)),
		tel:      tel,
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	// Wire each route with middlewares:
	// Trace → ObservabilityMiddleware (request logger + HTTP metrics) → Access log → Handler
	h.muxHandle(mux, http.MethodPost, "/payments", h.handleProcessPayment)
	h.muxHandle(mux, http.MethodPost, "/payments/refund", h.handleRefundPayment)
	h.muxHandle(mux, http.MethodPost, "/subscriptions", h.handleProcessRecurring)
	h.muxHandle(mux, http.MethodGet, "/health", h.handleHealth)

	return mux
}

func (h *Handler) muxHandle(mux *http.ServeMux, method, route string, handler http.HandlerFunc) {
	mux.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Store stable route template for low-cardinality labels
		ctx := contextWithRoute(r.Context(), route)
		r = r.WithContext(ctx)

		// Wrap: Trace → Request Logger + Metrics → Access Log → Handler
		wrapped := h.withTrace(
			ObservabilityMiddleware(
				logctx.FromOr(ctx, h.log),
				func(r *http.Request) string {
					return r.Header.Get(headerRequestID)
				},
				func(r *http.Request) string {
					return r.Header.Get(headerTenantID)
				},
				h.tel,
			)(
				h.withAccessLog(http.HandlerFunc(handler)),
			),
		)
		wrapped.ServeHTTP(w, r)
	})
}

type contactDTO struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type customerDTO struct {
	Name       string      `json:"name"`
	Contact    *contactDTO `json:"contact_info"`
	CustomerID string      `json:"customer_id,omitempty"`
}

func (c customerDTO) toDomain() domainPayment.CustomerData {
	customer := domainPayment.CustomerData{
		Name:       c.Name,
		CustomerID: c.CustomerID,
	}
	if c.Contact != nil {
		customer.Contact = &domainPayment.ContactInfo{
			Email: c.Contact.Email,
			Phone: c.Contact.Phone,
		}
	}
	return customer
}

type paymentDTO struct {
	Amount int64  `json:"amount"`
	Source string `json:"source"`
}

type processRequest struct {
	Customer customerDTO `json:"customer"`
	Payment  paymentDTO  `json:"payment"`
}

type refundRequest struct {
	Customer      customerDTO `json:"customer"`
	TransactionID string      `json:"transaction_id"`
}

type resultResponse struct {
	Status        domainPayment.Status `json:"status"`
	Amount        int64                `json:"amount"`
	TransactionID string               `json:"transaction_id,omitempty"`
	Message       string               `json:"message,omitempty"`
	NotifyError   string               `json:"notify_error,omitempty"`
}

func toResponse(out *orchestrator.Outcome) resultResponse {
	resp := resultResponse{
		Status:        out.Result.Status,
		Amount:        out.Result.Amount,
		TransactionID: out.Result.TransactionID,
		Message:       out.Result.Message,
	}
	if out.NotifyErr != nil {
		resp.NotifyError = out.NotifyErr.Error()
	}
	return resp
}

func (h *Handler) handleProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out, err := h.pipeline.Process(r.Context(), req.Customer.toDomain(), domainPayment.PaymentData{
		Amount: req.Payment.Amount,
		Source: req.Payment.Source,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(out))
}

func (h *Handler) handleRefundPayment(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out, err := h.pipeline.Refund(r.Context(), req.Customer.toDomain(), req.TransactionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(out))
}

func (h *Handler) handleProcessRecurring(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out, err := h.pipeline.ProcessRecurring(r.Context(), req.Customer.toDomain(), domainPayment.PaymentData{
		Amount: req.Payment.Amount,
		Source: req.Payment.Source,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(out))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// withAccessLog writes a single access log after the handler completes.
// It relies on the request-scoped logger already injected by ObservabilityMiddleware.
func (h *Handler) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		logctx.FromOr(r.Context(), h.log).Info("http_access",
			observability.F("method", r.Method),
			observability.F("route", routeFromContext(r.Context())),
			observability.F("path", r.URL.Path),
			observability.F("status", lrw.status),
			observability.F("latency_ms", time.Since(start).Milliseconds()),
		)
	})
}

// withTrace creates a server span for the request using OTel and W3C propagation.
func (h *Handler) withTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tracer := otel.Tracer("payflow.http")
		parentCtx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := routeFromContext(parentCtx)
		spanName := route
		if spanName == "unknown" {
			spanName = r.Method + " " + r.URL.Path
		}
		template := route
		if idx := strings.Index(template, " "); idx >= 0 {
			template = template[idx+1:]
		}
		if template == "unknown" || template == "" {
			template = r.URL.Path
		}

		ctxWithSpan, span := tracer.Start(parentCtx,
			spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", template),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.user_agent", r.UserAgent()),
			),
		)
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctxWithSpan))
	})
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	var stageErr *orchestrator.StageError
	switch {
	case errors.As(err, &stageErr) && stageErr.Stage == orchestrator.StageValidation:
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

type routeKey struct{}

// contextWithRoute stores the stable route template in the context so downstream
// metrics/logging can rely on low-cardinality values.
func contextWithRoute(ctx context.Context, route string) context.Context {
	if route == "" {
		return ctx
	}
	return context.WithValue(ctx, routeKey{}, route)
}

func routeFromContext(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return "unknown"
}
