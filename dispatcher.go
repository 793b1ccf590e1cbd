package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Dispatch outcome labels used on spans, metrics and log records.
const (
	outcomeOK         = "ok"
	outcomeMalformed  = "malformed_id"
	outcomeUnknownTag = "unknown_tag"
	outcomeNotFound   = "not_found"
	outcomeLoadFailed = "load_failed"
)

// Dispatcher is the generic "refetch by global id" entry point. It decodes
// an opaque identifier, resolves its tag against the registry, invokes the
// matching type's loader and wraps the result in a Node.
//
// The dispatcher is a pure routing layer: it holds no mutable state beyond
// the immutable registry and optional observability handles, so concurrent
// Get calls are fully independent. Its only side effects are the loader's
// own.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *dispatchMetrics
}

// dispatchMetrics holds the OpenTelemetry instruments for the dispatcher.
// Created once in NewDispatcher when a MeterProvider is configured.
type dispatchMetrics struct {
	// dispatchCount increments once per Get call, labelled by outcome.
	dispatchCount metric.Int64Counter

	// dispatchDuration records Get duration in milliseconds, labelled by
	// outcome.
	dispatchDuration metric.Float64Histogram
}

// NewDispatcher creates a dispatcher over the given registry. Observability
// is opt-in via options; a dispatcher built with no options performs no
// logging, tracing or metric recording.
//
// Example:
//
//	disp, err := relay.NewDispatcher(reg,
//	    relay.WithLogger(logger),
//	    relay.WithTracerProvider(tp),
//	    relay.WithMeterProvider(mp),
//	)
func NewDispatcher(registry *Registry, opts ...Option) (*Dispatcher, error) {
	if registry == nil {
		return nil, fmt.Errorf("%w: nil registry", ErrInvalidRegistry)
	}

	d := &Dispatcher{registry: registry}
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	d.logger = cfg.logger
	if cfg.tracerProvider != nil {
		d.tracer = cfg.tracerProvider.Tracer(instrumentationName)
	}
	if cfg.meterProvider != nil {
		m, err := newDispatchMetrics(cfg.meterProvider.Meter(instrumentationName))
		if err != nil {
			return nil, fmt.Errorf("relay: create dispatch metrics: %w", err)
		}
		d.metrics = m
	}
	return d, nil
}

func newDispatchMetrics(meter metric.Meter) (*dispatchMetrics, error) {
	m := &dispatchMetrics{}
	var err error

	m.dispatchCount, err = meter.Int64Counter(
		"relay.dispatch.count",
		metric.WithDescription("Number of node dispatches performed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create dispatch counter: %w", err)
	}

	m.dispatchDuration, err = meter.Float64Histogram(
		"relay.dispatch.duration",
		metric.WithDescription("Node dispatch duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create dispatch duration histogram: %w", err)
	}

	return m, nil
}

// Registry returns the registry this dispatcher routes against.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Get resolves an opaque global identifier to its object, wrapped in a Node.
//
// Protocol:
//  1. Decode the identifier. Too short -> ErrMalformedID.
//  2. Match the raw tag remainder against every registered tag string, in
//     registry order, by exact string equality. No match -> ErrUnknownTypeTag.
//  3. Invoke the matched type's loader with the canonical local identifier.
//     This is the single suspension point; ctx cancellation propagates to
//     the loader.
//  4. A loader miss -> ErrNodeNotFound; any other loader error is passed
//     through wrapped. Otherwise the value is wrapped in the type's Node
//     case.
//
// A populated Node is returned only when all three steps succeed.
func (d *Dispatcher) Get(ctx context.Context, globalID string) (*Node, error) {
	start := time.Now()

	var span trace.Span
	if d.tracer != nil {
		ctx, span = d.tracer.Start(ctx, "relay.node.get")
		defer span.End()
	}

	decoded, err := DecodeID(globalID)
	if err != nil {
		d.miss(ctx, span, start, outcomeMalformed, "", err)
		return nil, err
	}

	nt, tag, ok := d.registry.lookupTag(decoded.Tag)
	if !ok {
		err = fmt.Errorf("%w: %q", ErrUnknownTypeTag, decoded.Tag)
		d.miss(ctx, span, start, outcomeUnknownTag, "", err)
		return nil, err
	}

	value, err := nt.Loader.Load(ctx, decoded.Local)
	if err != nil {
		if errors.Is(err, ErrNodeNotFound) {
			d.miss(ctx, span, start, outcomeNotFound, nt.Name, err)
			return nil, err
		}
		err = fmt.Errorf("relay: load %s %s: %w", nt.Name, decoded.Local, err)
		d.miss(ctx, span, start, outcomeLoadFailed, nt.Name, err)
		return nil, err
	}
	if value == nil {
		err = fmt.Errorf("%w: %s %s", ErrNodeNotFound, nt.Name, decoded.Local)
		d.miss(ctx, span, start, outcomeNotFound, nt.Name, err)
		return nil, err
	}

	d.record(ctx, span, start, outcomeOK, nt.Name)
	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
	return &Node{Type: nt.Name, Tag: tag, Value: value}, nil
}

// miss records observability data for a failed dispatch.
func (d *Dispatcher) miss(ctx context.Context, span trace.Span, start time.Time, outcome, nodeType string, err error) {
	d.record(ctx, span, start, outcome, nodeType)
	if span != nil {
		span.SetStatus(codes.Error, outcome)
		span.RecordError(err)
	}
	if d.logger != nil {
		d.logger.Debug("node dispatch miss",
			"outcome", outcome,
			"node_type", nodeType,
			"error", err)
	}
}

// record emits the per-dispatch span attributes and metric points.
func (d *Dispatcher) record(ctx context.Context, span trace.Span, start time.Time, outcome, nodeType string) {
	attrs := []attribute.KeyValue{
		attribute.String("relay.outcome", outcome),
	}
	if nodeType != "" {
		attrs = append(attrs, attribute.String("relay.node.type", nodeType))
	}

	if span != nil {
		span.SetAttributes(attrs...)
	}
	if d.metrics != nil {
		opt := metric.WithAttributes(attrs...)
		d.metrics.dispatchCount.Add(ctx, 1, opt)
		d.metrics.dispatchDuration.Record(ctx, float64(time.Since(start).Milliseconds()), opt)
	}
}
