package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lixenwraith/astar-grid/core"
	"github.com/lixenwraith/astar-grid/navigation"
)

const tracerName = "github.com/lixenwraith/astar-grid/telemetry"

// Searcher is the part of the engine a traced search needs
type Searcher interface {
	Scan() (navigation.Result, error)
	GridSize() (width, height int)
	Start() core.Point
	End() core.Point
	ObstacleCount() int
}

// Instrument wraps searches in a span and feeds metrics
type Instrument struct {
	tracer  trace.Tracer
	metrics *Metrics
}

// NewInstrument creates an instrument, nil tp uses the global provider and nil metrics skips recording
func NewInstrument(tp trace.TracerProvider, metrics *Metrics) *Instrument {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Instrument{
		tracer:  tp.Tracer(tracerName),
		metrics: metrics,
	}
}

// Search runs one Scan inside a span
func (in *Instrument) Search(ctx context.Context, s Searcher) (navigation.Result, error) {
	width, height := s.GridSize()
	start, end := s.Start(), s.End()
	obstacles := s.ObstacleCount()

	_, span := in.tracer.Start(ctx, "navigation.Engine.Scan",
		trace.WithAttributes(
			attribute.Int("grid_width", width),
			attribute.Int("grid_height", height),
			attribute.String("start", start.String()),
			attribute.String("end", end.String()),
			attribute.Int("obstacles", obstacles),
		),
	)
	defer span.End()

	res, err := s.Scan()
	if in.metrics != nil {
		in.metrics.Observe(res, obstacles, err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scan failed")
		return res, err
	}

	span.SetAttributes(
		attribute.String("outcome", outcomeOf(res, nil)),
		attribute.Int("expanded", res.Expanded),
		attribute.Float64("cost", res.Cost),
		attribute.Int("steps", res.Steps()),
		attribute.Int64("duration_us", res.Duration.Microseconds()),
	)
	if res.Found() {
		span.SetStatus(codes.Ok, "path found")
	} else {
		span.SetStatus(codes.Ok, "target unreachable")
	}
	return res, nil
}
