// Package observe provides OpenTelemetry-based telemetry for operation
// execution: tracing, metrics, and structured JSON logging, with noop
// fallbacks so consumers that want no telemetry pay nothing.
//
// The middleware wraps any flow.Op so retried, rate-limited, or timed-out
// work is observed uniformly.
package observe
