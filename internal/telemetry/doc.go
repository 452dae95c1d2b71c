// Package telemetry holds the Prometheus collectors and the OpenTelemetry
// tracer used by the reactive runtime, the reconciler and the wire server.
//
// Both *Metrics and *Tracer are nil-safe: a component that was built without
// telemetry calls the same methods and they do nothing.
package telemetry
