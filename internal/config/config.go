package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	// ----------------------------
	// News source
	// ----------------------------
	NewsAPIKey     string `envconfig:"NEWS_API_KEY" required:"true"`
	NewsAPIBaseURL string `envconfig:"NEWS_API_BASE_URL" default:"https://newsapi.org/v2"`
	NewsRateLimit  int    `envconfig:"NEWS_RATE_LIMIT" default:"5"`

	// ----------------------------
	// Generation
	// ----------------------------
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY" required:"true"`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o"`

	// ----------------------------
	// SMTP
	// ----------------------------
	SMTPHost     string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"1025"`
	SMTPUser     string `envconfig:"SMTP_USER" default:""`
	SMTPPassword string `envconfig:"SMTP_PASSWORD" default:""`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"newsletter@tickerbrief.dev"`

	// ----------------------------
	// Events
	// ----------------------------
	// Optional: inbound events are accepted unsigned when empty.
	EventSigningKey string `envconfig:"EVENT_SIGNING_KEY" default:""`

	// ----------------------------
	// Schedules
	// ----------------------------
	ScheduleEnabled   bool   `envconfig:"SCHEDULE_ENABLED" default:"false"`
	ScheduleEmail     string `envconfig:"SCHEDULE_EMAIL" default:""`
	ScheduleFrequency string `envconfig:"SCHEDULE_FREQUENCY" default:"daily"`

	// ----------------------------
	// Workers
	// ----------------------------
	WorkerCount   int `envconfig:"WORKER_COUNT" default:"5"`
	RetryAttempts int `envconfig:"RETRY_ATTEMPTS" default:"3"`

	// ----------------------------
	// HTTP API
	// ----------------------------
	APIPort string `envconfig:"API_PORT" default:"8080"`

	// ----------------------------
	// Metrics
	// ----------------------------
	MetricsPort string `envconfig:"METRICS_PORT" default:"9090"`

	// ----------------------------
	// Storage
	// ----------------------------
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	RedisURL    string `envconfig:"REDIS_URL" default:"redis://localhost:6379"`
}

func Load() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return &cfg, err
}
