package relay

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName is the scope name used for tracers and meters created
// by this package.
const instrumentationName = "github.com/graphline/relay"

// options holds dispatcher configuration collected from Option values.
type options struct {
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Option configures a Dispatcher.
type Option func(*options)

// WithLogger enables structured debug logging of dispatch misses.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTracerProvider enables a span per dispatch, named "relay.node.get",
// carrying the node type and outcome as attributes.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// WithMeterProvider enables the relay.dispatch.count counter and
// relay.dispatch.duration histogram, labelled by outcome and node type.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}
