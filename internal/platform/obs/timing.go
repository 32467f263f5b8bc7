package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// RunIDKey carries the evaluation run identifier through a request.
const RunIDKey ctxKey = "run_id"

// Time logs the duration and outcome of one named operation. Use with a
// deferred call capturing the operation's error pointer:
//
//	defer obs.Time(ctx, "engine.RunScenario")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	runID, _ := ctx.Value(RunIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("run_id=%s op=%s dur=%dms err=%v", runID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("run_id=%s op=%s dur=%dms", runID, name, dur.Milliseconds())
	}
}
