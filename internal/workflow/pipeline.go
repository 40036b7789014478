package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"TickerBrief/internal/digest"
	"TickerBrief/internal/metrics"
	"TickerBrief/internal/models"
	"TickerBrief/internal/render"
)

type ArticleFetcher interface {
	FetchArticles(ctx context.Context, symbols []string) ([]models.Article, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, symbols []string, articles []models.Article) (models.Digest, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, to string, symbols []string, currentDate, htmlBody, preview string, articles []models.Article) error
}

// RunStore persists run lifecycle state on top of the step store.
type RunStore interface {
	StepStore
	CreateRun(ctx context.Context, run *models.Run) error
	UpdateRunStatus(ctx context.Context, id string, status models.RunStatus) error
	UpdateRunFailure(ctx context.Context, id string, errorMsg string) error
}

// Pipeline sequences the newsletter steps for one run:
// fetch-news -> summarize-news (render inline) -> send-email.
type Pipeline struct {
	fetcher ArticleFetcher
	synth   Synthesizer
	sender  Dispatcher
	store   RunStore
	runner  *Runner
	log     *zap.Logger
}

func NewPipeline(
	fetcher ArticleFetcher,
	synth Synthesizer,
	sender Dispatcher,
	store RunStore,
	retries int,
	log *zap.Logger,
) *Pipeline {
	return &Pipeline{
		fetcher: fetcher,
		synth:   synth,
		sender:  sender,
		store:   store,
		runner:  NewRunner(store, retries, log),
		log:     log,
	}
}

type sendReceipt struct {
	To     string    `json:"to"`
	SentAt time.Time `json:"sent_at"`
}

// Execute runs the full pipeline for one triggering event. Steps already
// recorded as succeeded for this run id are replayed, not re-executed, so a
// redelivered event resumes where the previous attempt stopped. Any
// unrecovered step error marks the run failed; no partial email is sent.
func (p *Pipeline) Execute(ctx context.Context, runID string, req models.NewsletterRequest) error {
	symbols := req.Symbols()

	run := &models.Run{
		ID:           runID,
		UserID:       req.UserID,
		Email:        req.Email,
		Symbols:      symbols,
		Frequency:    req.Frequency,
		ScheduledFor: req.ScheduledFor,
		IsTest:       req.IsTest,
		Status:       models.RunQueued,
	}

	if err := p.store.CreateRun(ctx, run); err != nil {
		return fmt.Errorf("creating run: %w", err)
	}

	if err := p.store.UpdateRunStatus(ctx, runID, models.RunRunning); err != nil {
		return fmt.Errorf("marking run running: %w", err)
	}

	metrics.RunsStarted.Inc()

	p.log.Info("newsletter run started",
		zap.String("run_id", runID),
		zap.Strings("symbols", symbols),
		zap.String("email", req.Email),
	)

	articles, err := RunStep(ctx, p.runner, runID, models.StepFetchNews,
		func(ctx context.Context) ([]models.Article, error) {
			return p.fetcher.FetchArticles(ctx, symbols)
		})
	if err != nil {
		return p.fail(ctx, runID, models.StepFetchNews, symbols, err)
	}

	p.log.Info("articles fetched",
		zap.String("run_id", runID),
		zap.Int("count", len(articles)),
	)

	dg, err := RunStep(ctx, p.runner, runID, models.StepSummarizeNews,
		func(ctx context.Context) (models.Digest, error) {
			d, synthErr := p.synth.Synthesize(ctx, symbols, articles)
			if errors.Is(synthErr, digest.ErrNoContent) {
				// Empty generation output is fatal, not retried.
				return d, backoff.Permanent(synthErr)
			}
			return d, synthErr
		})
	if err != nil {
		return p.fail(ctx, runID, models.StepSummarizeNews, symbols, err)
	}

	// Guard: the send step is only reached with non-empty digest content.
	if dg.Content == "" {
		return p.fail(ctx, runID, models.StepSummarizeNews, symbols, digest.ErrNoContent)
	}

	htmlBody := render.HTML(dg.Content)
	currentDate := time.Now().Format("January 2, 2006")

	_, err = RunStep(ctx, p.runner, runID, models.StepSendEmail,
		func(ctx context.Context) (sendReceipt, error) {
			if sendErr := p.sender.Dispatch(ctx, req.Email, symbols, currentDate, htmlBody, dg.Preview, articles); sendErr != nil {
				return sendReceipt{}, sendErr
			}
			return sendReceipt{To: req.Email, SentAt: time.Now().UTC()}, nil
		})
	if err != nil {
		metrics.EmailFailures.Inc()
		return p.fail(ctx, runID, models.StepSendEmail, symbols, err)
	}

	metrics.EmailsSent.Inc()

	if err := p.store.UpdateRunStatus(ctx, runID, models.RunSucceeded); err != nil {
		return fmt.Errorf("marking run succeeded: %w", err)
	}

	metrics.RunsSucceeded.Inc()

	p.log.Info("newsletter run succeeded",
		zap.String("run_id", runID),
		zap.String("email", req.Email),
		zap.Int("article_count", len(articles)),
	)

	return nil
}

func (p *Pipeline) fail(ctx context.Context, runID, step string, symbols []string, err error) error {
	p.log.Error("newsletter run failed",
		zap.String("run_id", runID),
		zap.String("step", step),
		zap.Strings("symbols", symbols),
		zap.Error(err),
	)

	if dbErr := p.store.UpdateRunFailure(ctx, runID, err.Error()); dbErr != nil {
		p.log.Error("failed to record run failure",
			zap.String("run_id", runID),
			zap.Error(dbErr),
		)
	}

	metrics.RunsFailed.Inc()

	return err
}
