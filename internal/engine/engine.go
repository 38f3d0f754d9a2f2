package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/metalpath/metalpath/internal/factors"
	"github.com/metalpath/metalpath/internal/logging"
)

// Engine runs the estimation pipeline over an immutable set of factor
// tables. It holds no per-request state; a single Engine serves concurrent
// callers without synchronization as long as its Noise implementation is
// concurrency-safe (both shipped implementations are).
type Engine struct {
	tables factors.Tables
	noise  Noise
	bounds Bounds
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithNoise injects a variance model. The default is DisabledNoise, which
// keeps estimation deterministic.
func WithNoise(n Noise) Option {
	return func(e *Engine) {
		if n != nil {
			e.noise = n
		}
	}
}

// WithBounds overrides the normalizer clamp limits.
func WithBounds(b Bounds) Option {
	return func(e *Engine) {
		e.bounds = b
	}
}

// New constructs an Engine over the given factor tables.
func New(tables factors.Tables, opts ...Option) *Engine {
	e := &Engine{
		tables: tables,
		noise:  DisabledNoise(),
		bounds: DefaultBounds(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tables returns the factor tables the engine was constructed with.
func (e *Engine) Tables() factors.Tables {
	return e.tables
}

// requiredFields are the top-level fields ValidateRequest enforces. The
// pipeline itself defaults silently; boundary layers opt into this check so
// a caller who sent nothing meaningful gets a 400 instead of an aluminum
// estimate they never asked for.
//
//nolint:gochecknoglobals // Package-level lookup table, read-only after init.
var requiredFields = []string{"metal_type", "quantity", "production_route"}

// ValidateRequest checks that the raw input carries the required top-level
// fields. It returns ErrMissingField naming the first absent one.
func ValidateRequest(raw map[string]any) error {
	for _, field := range requiredFields {
		if v, ok := raw[field]; !ok || v == nil {
			return fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}
	return nil
}

// EstimateAll runs the full pipeline for one raw input: normalization,
// physical-metric estimation, and composite scoring. The pipeline is total;
// the error return only reports context cancellation.
func (e *Engine) EstimateAll(ctx context.Context, raw map[string]any) (AssessmentResult, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return AssessmentResult{}, err
	}

	input := e.Normalize(raw)

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "estimate_all").
		Str("metal", string(input.Metal)).
		Str("route", string(input.Route)).
		Float64("quantity_kg", input.QuantityKg).
		Float64("completeness", input.Completeness).
		Msg("input normalized")

	metrics := e.Estimate(input)
	result := e.Score(input, metrics)

	log.Info().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "estimate_all").
		Str("metal", string(input.Metal)).
		Str("route", string(input.Route)).
		Float64("carbon_kg", result.CarbonKg).
		Float64("sustainability", result.Sustainability).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("estimation complete")

	return result, nil
}
