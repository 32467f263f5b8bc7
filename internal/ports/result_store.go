package ports

import (
	"context"

	"logistic-viability-service/internal/domain"
)

// Port: audit persistence of evaluation outputs. Implementations must be
// safe for concurrent use; the engine itself never reads these back.
type ResultStore interface {
	// Persist one scenario evaluation under a caller-supplied run ID.
	SaveResult(ctx context.Context, runID string, result domain.ViabilityResult) error
	// Persist estimated fixed costs so derived figures can be audited later.
	SaveEstimates(ctx context.Context, runID string, estimates map[string]domain.FixedCost) error
}
