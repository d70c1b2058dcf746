// Package roller parses and evaluates notation in one call, tracing each
// step.
package roller

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/dicelang/internal/core/dice"
	"github.com/louisbranch/dicelang/internal/core/notation"
	"github.com/louisbranch/dicelang/internal/platform/otel"
)

// Roller rolls notation strings with a single evaluator.
type Roller struct {
	eval   *dice.Evaluator
	tracer trace.Tracer
}

// Outcome is a detailed roll of one notation string.
type Outcome struct {
	Notation string
	Roll     dice.Roll
	dice.Result
	// TraceID identifies the evaluation span when tracing is active.
	TraceID string
}

// New returns a Roller that evaluates with eval.
func New(eval *dice.Evaluator) *Roller {
	return &Roller{eval: eval, tracer: otel.Tracer()}
}

// Roll returns the total of text.
func (r *Roller) Roll(ctx context.Context, text string) (int, error) {
	out, err := r.RollDetailed(ctx, text)
	if err != nil {
		return 0, err
	}
	return out.Value, nil
}

// RollDetailed parses text and evaluates it. Parse failures are returned
// as NOTATION_INVALID errors.
func (r *Roller) RollDetailed(ctx context.Context, text string) (Outcome, error) {
	roll, err := r.parse(ctx, text)
	if err != nil {
		return Outcome{}, err
	}
	return r.evaluate(ctx, text, roll)
}

func (r *Roller) parse(ctx context.Context, text string) (dice.Roll, error) {
	_, span := r.tracer.Start(ctx, "dice.parse", trace.WithAttributes(
		attribute.String("dice.notation", text),
	))
	defer span.End()

	roll, err := notation.Parse(text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid notation")
		return nil, err
	}
	return roll, nil
}

func (r *Roller) evaluate(ctx context.Context, text string, roll dice.Roll) (Outcome, error) {
	ctx, span := r.tracer.Start(ctx, "dice.evaluate", trace.WithAttributes(
		attribute.String("dice.notation", text),
		attribute.String("dice.roll", roll.String()),
	))
	defer span.End()

	res, err := r.eval.EvaluateDetailed(roll)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		return Outcome{}, err
	}
	span.SetAttributes(
		attribute.Int("dice.total", res.Value),
		attribute.Int("dice.events", len(res.Events)),
	)

	out := Outcome{Notation: text, Roll: roll, Result: res}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		out.TraceID = sc.TraceID().String()
	}
	return out, nil
}
