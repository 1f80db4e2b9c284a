package orchestration

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/hprogress/internal/errors"
	"github.com/agbru/hprogress/internal/logging"
	"github.com/agbru/hprogress/internal/progress"
)

const tracerName = "github.com/agbru/hprogress/internal/orchestration"

// tracer looks the provider up on every call so a provider installed after
// startup is honored.
func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// ExecuteScenario runs s against root inside a span and reports how it went.
// Context errors are wrapped so callers can map them to exit codes.
func ExecuteScenario(ctx context.Context, s Scenario, root *progress.Node, p Params) Result {
	log := p.logger()
	ctx, span := tracer().Start(ctx, "scenario.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("scenario.name", s.Name()),
		attribute.Int("scenario.workers", p.Workers),
		attribute.Int("scenario.steps", p.Steps),
		attribute.Int64("scenario.delay_ms", p.Delay.Milliseconds()),
	)

	log.Info("scenario started", logging.String("scenario", s.Name()))
	start := time.Now()
	err := s.Run(ctx, root, p)
	elapsed := time.Since(start)

	if err != nil {
		if apperrors.IsContextError(err) {
			err = apperrors.WrapError(err, "scenario %s interrupted", s.Name())
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("scenario failed", err, logging.String("scenario", s.Name()), logging.Duration("elapsed", elapsed))
	} else {
		span.SetStatus(codes.Ok, "")
		log.Info("scenario finished", logging.String("scenario", s.Name()), logging.Duration("elapsed", elapsed))
	}
	span.SetAttributes(attribute.Float64("progress.final", root.Progress()))

	return Result{Name: s.Name(), Duration: elapsed, Err: err}
}
