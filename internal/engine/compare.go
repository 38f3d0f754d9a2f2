package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/metalpath/metalpath/internal/engine/batch"
	"github.com/metalpath/metalpath/internal/logging"
)

// minComparisonPathways is the smallest set a comparison accepts.
const minComparisonPathways = 2

// Compare assesses each raw pathway and derives comparative insights.
// Pathways are processed concurrently; IDs are 1-based positions and names
// default to "Pathway N" when the input does not carry one.
func (e *Engine) Compare(ctx context.Context, raws []map[string]any) (Insights, error) {
	if len(raws) < minComparisonPathways {
		return Insights{}, fmt.Errorf("%w: got %d", ErrTooFewPathways, len(raws))
	}

	log := logging.FromContext(ctx)
	start := time.Now()

	processor := batch.NewProcessorWithDefaults[map[string]any, PathwayResult]()
	pathways, err := processor.ProcessConcurrent(ctx, raws,
		func(ctx context.Context, index int, raw map[string]any) (PathwayResult, error) {
			result, err := e.EstimateAll(ctx, raw)
			if err != nil {
				return PathwayResult{}, err
			}
			return PathwayResult{
				ID:     index + 1,
				Name:   pathwayName(raw, index),
				Result: result,
			}, nil
		})
	if err != nil {
		return Insights{}, fmt.Errorf("comparing pathways: %w", err)
	}

	insights, err := CompareResults(pathways)
	if err != nil {
		return Insights{}, err
	}

	log.Info().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "compare").
		Int("pathways", len(pathways)).
		Str("lowest_carbon", insights.BestCarbon.Name).
		Str("highest_sustainability", insights.BestSustainability.Name).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("Pathway comparison complete")

	return insights, nil
}

// CompareResults picks the winners from already-computed pathway results:
// lowest carbon footprint and highest sustainability score. Ties keep the
// earliest pathway.
func CompareResults(pathways []PathwayResult) (Insights, error) {
	if len(pathways) < minComparisonPathways {
		return Insights{}, fmt.Errorf("%w: got %d", ErrTooFewPathways, len(pathways))
	}

	bestCarbon := pathways[0]
	bestSustainability := pathways[0]
	for _, p := range pathways[1:] {
		if p.Result.CarbonKg < bestCarbon.Result.CarbonKg {
			bestCarbon = p
		}
		if p.Result.Sustainability > bestSustainability.Result.Sustainability {
			bestSustainability = p
		}
	}

	return Insights{
		Pathways: pathways,
		BestCarbon: BestEntry{
			PathwayID: bestCarbon.ID,
			Name:      bestCarbon.Name,
			Value:     bestCarbon.Result.CarbonKg,
		},
		BestSustainability: BestEntry{
			PathwayID: bestSustainability.ID,
			Name:      bestSustainability.Name,
			Value:     bestSustainability.Result.Sustainability,
		},
	}, nil
}

// pathwayName reads the optional display name from the raw input, falling
// back to a positional label.
func pathwayName(raw map[string]any, index int) string {
	if name := strings.TrimSpace(stringField(raw, "name")); name != "" {
		return name
	}
	return fmt.Sprintf("Pathway %d", index+1)
}
