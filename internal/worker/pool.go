package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"TickerBrief/internal/events"
	"TickerBrief/internal/workflow"
)

// StartPool launches workers that execute one newsletter run per inbound
// event. A failed run is logged and recorded by the pipeline; workers keep
// draining the channel.
func StartPool(
	ctx context.Context,
	wg *sync.WaitGroup,
	workers int,
	runs <-chan events.Event,
	pipeline *workflow.Pipeline,
	logger *zap.Logger,
) {

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func(id int) {
			defer wg.Done()

			logger.Info("worker started", zap.Int("worker_id", id))

			for {
				select {

				case <-ctx.Done():
					logger.Info("worker shutting down", zap.Int("worker_id", id))
					return

				case ev, ok := <-runs:
					if !ok {
						logger.Info("run channel closed", zap.Int("worker_id", id))
						return
					}

					if err := pipeline.Execute(ctx, ev.ID, ev.Data); err != nil {
						logger.Error("newsletter run ended in failure",
							zap.Int("worker_id", id),
							zap.String("run_id", ev.ID),
							zap.Error(err),
						)
						continue
					}

					logger.Info("newsletter run completed",
						zap.Int("worker_id", id),
						zap.String("run_id", ev.ID),
					)
				}
			}
		}(i)
	}
}
