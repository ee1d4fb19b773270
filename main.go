package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zhima-Mochi/payflow/internal/application/auditlog"
	"github.com/Zhima-Mochi/payflow/internal/application/notify"
	"github.com/Zhima-Mochi/payflow/internal/application/orchestrator"
	"github.com/Zhima-Mochi/payflow/internal/application/processor"
	"github.com/Zhima-Mochi/payflow/internal/domain/gateway"
	"github.com/Zhima-Mochi/payflow/internal/domain/notification"
	"github.com/Zhima-Mochi/payflow/internal/infrastructure/fs"
	"github.com/Zhima-Mochi/payflow/internal/infrastructure/id"
	"github.com/Zhima-Mochi/payflow/internal/infrastructure/memory"
	"github.com/Zhima-Mochi/payflow/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/payflow/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/payflow/internal/infrastructure/observability/telemetry"
	"github.com/Zhima-Mochi/payflow/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/payflow/internal/infrastructure/stripegw"
	"github.com/Zhima-Mochi/payflow/internal/observability"
	"github.com/Zhima-Mochi/payflow/internal/pkg/logging"
	httptransport "github.com/Zhima-Mochi/payflow/internal/presentation/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	serviceName := getenvDefault("SERVICE_NAME", "payflow")
	env := getenvDefault("ENV", "dev")
	baseLogger := logging.MustNewLogger(serviceName, env)
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	systemLogger := logging.WithTrace(baseLogger, logging.SystemTraceID, logging.SystemSpanID)

	reg := prometrics.New(serviceName, "")
	counters := map[observability.MetricKey]observability.Counter{
		observability.MPaymentRequests:      reg.Counter(string(observability.MPaymentRequests), "Total number of orchestration calls.", "operation", "outcome"),
		observability.MNotificationFailures: reg.Counter(string(observability.MNotificationFailures), "Count of non-fatal confirmation failures.", "operation"),
		observability.MExternalRequests:     reg.Counter(string(observability.MExternalRequests), "Total number of external capability calls.", "peer", "endpoint", "outcome"),
		observability.MHTTPRequests:         reg.Counter(string(observability.MHTTPRequests), "Total number of HTTP requests.", "method", "route", "status"),
	}
	histograms := map[observability.MetricKey]observability.Histogram{
		observability.MPaymentDuration:         reg.Histogram(string(observability.MPaymentDuration), "Duration of orchestration calls in seconds.", nil, "operation"),
		observability.MExternalRequestDuration: reg.Histogram(string(observability.MExternalRequestDuration), "Duration of external capability calls in seconds.", nil, "peer", "endpoint"),
		observability.MHTTPRequestDuration:     reg.Histogram(string(observability.MHTTPRequestDuration), "Duration of HTTP requests in seconds.", nil, "method", "route", "status"),
	}
	tel := telemetry.New(
		oteltrace.New(serviceName),
		zaplogger.Wrap(baseLogger),
		counters,
		histograms,
	)

	// Gateway credentials are read once here and live as constructor state;
	// without a key the binary runs against the in-memory gateway.
	var gw gateway.Gateway
	if apiKey := os.Getenv("STRIPE_API_KEY"); apiKey != "" {
		gw = stripegw.New(apiKey, baseLogger)
	} else {
		systemLogger.Info("gateway_dev_mode")
		gw = memory.NewGateway(2500)
	}

	sink, err := fs.OpenSink(getenvDefault("AUDIT_LOG_FILE", "transactions.log"))
	if err != nil {
		systemLogger.Fatal("audit_sink_open_failed", zap.Error(err))
	}
	defer func() { _ = sink.Close() }()

	transport := memory.NewTransport(baseLogger)
	var notifier notification.Notifier = notify.NewEmailNotifier(transport, tel)
	if getenvDefault("NOTIFY_CHANNEL", "email") == "sms" {
		notifier = notify.NewSMSNotifier(getenvDefault("SMS_GATEWAY", "Twilio"), transport, tel)
	}

	currency := getenvDefault("PAYFLOW_CURRENCY", "usd")
	priceID := getenvDefault("PAYFLOW_PRICE_ID", "price_monthly")

	pipeline := orchestrator.NewService(
		processor.NewCharger(gw, currency, tel),
		processor.NewRefunder(gw, tel),
		processor.NewRecurringBiller(gw, priceID, tel),
		notifier,
		auditlog.New(sink),
		id.NewUUIDGenerator(),
		tel,
	)

	handler := httptransport.NewHandler(pipeline, tel.Logger(), tel)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:    getenvDefault("ADDR", ":8080"),
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		systemLogger.Info("http_server_start",
			zap.String("addr", server.Addr),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			systemLogger.Error("http_server_error",
				zap.Error(err),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		systemLogger.Error("http_server_shutdown_error",
			zap.Error(err),
		)
	} else {
		systemLogger.Info("http_server_stopped")
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
