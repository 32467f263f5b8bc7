package ports

import (
	"context"

	"logistic-viability-service/internal/domain"
)

// Port: cache of evaluated scenarios keyed by an input fingerprint.
// Evaluations are deterministic, so a hit is always safe to serve.
type ResultCache interface {
	// Get returns the cached result for key, reporting whether it was found.
	Get(ctx context.Context, key string) (domain.ViabilityResult, bool, error)
	// Put stores a result under key. Implementations may expire entries.
	Put(ctx context.Context, key string, result domain.ViabilityResult) error
}
