package models

import "time"

type RunStatus string

const (
	RunQueued    RunStatus = "queued"
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepSucceeded StepStatus = "succeeded"
	StepFailed    StepStatus = "failed"
)

// Pipeline step names, in execution order. Rendering happens inline after
// summarize and is not a recorded step of its own.
const (
	StepFetchNews     = "fetch-news"
	StepSummarizeNews = "summarize-news"
	StepSendEmail     = "send-email"
)

// DefaultSymbols is substituted when a newsletter-schedule event arrives
// with no ticker symbols.
var DefaultSymbols = []string{"MSFT", "NVDA", "META", "FTNT"}

// NewsletterRequest is the payload of a newsletter-schedule event. It is
// immutable for the lifetime of the Run it triggers.
type NewsletterRequest struct {
	UserID        string    `json:"userId"`
	Email         string    `json:"email"`
	TickerSymbols []string  `json:"tickerSymbols"`
	Frequency     string    `json:"frequency"`
	ScheduledFor  time.Time `json:"scheduledFor"`
	IsTest        bool      `json:"isTest,omitempty"`
}

// Symbols returns the requested tickers, or DefaultSymbols when the event
// carried none. A malformed event never crashes the pipeline.
func (r *NewsletterRequest) Symbols() []string {
	if len(r.TickerSymbols) == 0 {
		return DefaultSymbols
	}
	return r.TickerSymbols
}

// Article is one news item, fields always defaulted before use downstream.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Digest is the synthesized newsletter prose plus its derived preview.
type Digest struct {
	Content string `json:"content"`
	Preview string `json:"preview"`
}

// Run is one end-to-end execution of the pipeline for one triggering event.
type Run struct {
	ID           string
	UserID       string
	Email        string
	Symbols      []string
	Frequency    string
	ScheduledFor time.Time
	IsTest       bool

	Status   RunStatus
	ErrorMsg string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StepResult is a persisted step outcome keyed by (run id, step name).
// Once recorded as succeeded it is never recomputed by a retry of the Run.
type StepResult struct {
	RunID    string
	Name     string
	Status   StepStatus
	Result   []byte
	ErrorMsg string

	CreatedAt time.Time
}
