package observability

const (
	MPaymentRequests         MetricKey = "payment_requests_total"
	MPaymentDuration         MetricKey = "payment_duration_seconds"
	MNotificationFailures    MetricKey = "notification_failures_total"
	MHTTPRequests            MetricKey = "http_requests_total"
	MHTTPRequestDuration     MetricKey = "http_request_duration_seconds"
	MExternalRequests        MetricKey = "external_requests_total"
	MExternalRequestDuration MetricKey = "external_request_duration_seconds"
)
