// Package tracing wraps the orchestrator's build phases in OpenTelemetry
// spans. It wires no exporter; the caller's process-wide TracerProvider
// (or the default no-op one) decides where spans go.
package tracing
