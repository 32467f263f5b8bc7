package services

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"logistic-viability-service/internal/domain"
)

// Upper bound on concurrent evaluations; candidate trial solves inside one
// evaluation already fan out work, so a small limit is enough.
const maxConcurrentEvaluations = 4

// CompareScenarios evaluates a named batch of scenarios against the same
// base network and returns the results ranked by margin descending, scenario
// name ascending on ties.
//
// Evaluations only read base and write to their own derived copies, so they
// run concurrently without locking. The first structural error cancels the
// remaining evaluations and is returned to the caller.
func CompareScenarios(
	ctx context.Context,
	base BaseInputs,
	scenarios []domain.ScenarioParams,
	cfg EngineConfig,
) ([]domain.ViabilityResult, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("compare scenarios: empty scenario batch")
	}

	results := make([]domain.ViabilityResult, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEvaluations)
	for i, params := range scenarios {
		i, params := i, params
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := RunScenario(base, params, cfg)
			if err != nil {
				return fmt.Errorf("compare scenarios: %w", err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Margin != results[j].Margin {
			return results[i].Margin > results[j].Margin
		}
		return results[i].Scenario < results[j].Scenario
	})

	return results, nil
}
