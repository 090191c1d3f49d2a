// Package observability provides OpenTelemetry metric instruments for
// the stream client lifecycle.
//
// The package records through the global meter provider only; SDK and
// exporter setup belongs to the host application. Without a configured
// provider the instruments are no-ops, so the client can always record.
//
//	metrics, _ := observability.NewStreamMetrics(observability.Meter())
//	metrics.RecordConnectAttempt(ctx)
package observability
