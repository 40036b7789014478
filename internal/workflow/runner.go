package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"TickerBrief/internal/metrics"
	"TickerBrief/internal/models"
)

// StepStore persists step outcomes keyed by (run id, step name). It is the
// durability substrate: a step recorded as succeeded is replayed from the
// store on any later execution of the same run.
type StepStore interface {
	StepResult(ctx context.Context, runID, name string) (*models.StepResult, error)
	SaveStepResult(ctx context.Context, runID, name string, result []byte) error
	SaveStepFailure(ctx context.Context, runID, name, errorMsg string) error
}

type Runner struct {
	store   StepStore
	log     *zap.Logger
	retries int
}

func NewRunner(store StepStore, retries int, log *zap.Logger) *Runner {
	return &Runner{
		store:   store,
		log:     log,
		retries: retries,
	}
}

// RunStep executes fn as a named step of the run. If the step already
// succeeded for this run its persisted result is returned without
// re-executing fn. Otherwise fn runs under exponential-backoff retry; the
// result is recorded before it is returned, so a crash after recording never
// repeats the step. Wrap an error in backoff.Permanent to skip retries.
func RunStep[T any](ctx context.Context, r *Runner, runID, name string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	prior, err := r.store.StepResult(ctx, runID, name)
	if err != nil {
		return zero, fmt.Errorf("step %s: loading prior result: %w", name, err)
	}

	if prior != nil && prior.Status == models.StepSucceeded {
		var replayed T
		if err := json.Unmarshal(prior.Result, &replayed); err != nil {
			return zero, fmt.Errorf("step %s: decoding persisted result: %w", name, err)
		}

		r.log.Info("replaying persisted step result",
			zap.String("run_id", runID),
			zap.String("step", name),
		)
		metrics.StepsReplayed.Inc()

		return replayed, nil
	}

	var result T

	operation := func() error {
		var opErr error
		result, opErr = fn(ctx)
		return opErr
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = time.Duration(r.retries) * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		if saveErr := r.store.SaveStepFailure(ctx, runID, name, err.Error()); saveErr != nil {
			r.log.Error("failed to record step failure",
				zap.String("run_id", runID),
				zap.String("step", name),
				zap.Error(saveErr),
			)
		}
		return zero, fmt.Errorf("step %s: %w", name, err)
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return zero, fmt.Errorf("step %s: encoding result: %w", name, err)
	}

	if err := r.store.SaveStepResult(ctx, runID, name, encoded); err != nil {
		return zero, fmt.Errorf("step %s: recording result: %w", name, err)
	}

	return result, nil
}
