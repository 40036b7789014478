package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"TickerBrief/internal/models"
)

// Scheduler enqueues a newsletter-schedule event on a fixed interval, the
// way a hosted cron trigger would.
type Scheduler struct {
	bus       *Bus
	email     string
	frequency string
	interval  time.Duration
	log       *zap.Logger
}

func NewScheduler(bus *Bus, email, frequency string, log *zap.Logger) *Scheduler {
	return &Scheduler{
		bus:       bus,
		email:     email,
		frequency: frequency,
		interval:  FrequencyInterval(frequency),
		log:       log,
	}
}

// FrequencyInterval maps the frequency enum onto a delivery interval.
// Unknown values fall back to daily.
func FrequencyInterval(frequency string) time.Duration {
	switch frequency {
	case "weekly":
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Run blocks until ctx is cancelled, publishing one event per interval.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return

		case now := <-ticker.C:
			ev := Event{
				ID:   uuid.NewString(),
				Name: NewsletterSchedule,
				Data: models.NewsletterRequest{
					UserID:        "scheduler",
					Email:         s.email,
					TickerSymbols: models.DefaultSymbols,
					Frequency:     s.frequency,
					ScheduledFor:  now.UTC(),
				},
			}

			if err := s.bus.Publish(ctx, ev); err != nil {
				s.log.Error("failed to publish scheduled event", zap.Error(err))
				continue
			}

			s.log.Info("scheduled newsletter event published",
				zap.String("event_id", ev.ID),
				zap.String("email", s.email),
			)
		}
	}
}
