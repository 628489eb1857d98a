package astar

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation name callers should pass to otel.Tracer.
const TracerName = "github.com/pdrpinto/astar"

// searchObserver bundles the tracing, logging and metrics of one search.
type searchObserver struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics *Metrics
}

func newSearchObserver(options Options) searchObserver {
	tracer := options.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(TracerName)
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return searchObserver{tracer: tracer, logger: logger, metrics: options.Metrics}
}

func (o searchObserver) start(ctx context.Context, runID string, options Options) (context.Context, trace.Span) {
	ctx, span := o.tracer.Start(ctx, "astar.search",
		trace.WithAttributes(
			attribute.String("astar.run_id", runID),
			attribute.String("astar.timeout", options.Timeout.String()),
			attribute.Int("astar.max_expansions", options.MaxExpansions),
			attribute.Bool("astar.closed_set", options.ClosedSet),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	o.logger.DebugContext(ctx, "search started",
		slog.String("run_id", runID),
		slog.Duration("timeout", options.Timeout),
		slog.Bool("closed_set", options.ClosedSet),
	)
	return ctx, span
}

func (o searchObserver) finish(ctx context.Context, span trace.Span, summary searchSummary, err error) {
	span.SetAttributes(
		attribute.String("astar.status", summary.status.String()),
		attribute.Int("astar.expanded_nodes", summary.expanded),
		attribute.Int("astar.frontier_peak", summary.frontierPeak),
		attribute.String("astar.elapsed", summary.elapsed.String()),
	)
	if summary.status == StatusFound {
		span.SetAttributes(
			attribute.Float64("astar.path_cost", summary.pathCost),
			attribute.Int("astar.path_length", summary.pathLength),
		)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()

	level := slog.LevelInfo
	if summary.status != StatusFound {
		level = slog.LevelWarn
	}
	o.logger.LogAttrs(ctx, level, "search finished",
		slog.String("run_id", summary.runID),
		slog.String("status", summary.status.String()),
		slog.Int("expanded", summary.expanded),
		slog.Duration("elapsed", summary.elapsed),
	)

	o.metrics.ObserveSearch(summary.status, summary.elapsed, summary.expanded, summary.frontierPeak)
}
