package digest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"TickerBrief/internal/models"
	"TickerBrief/internal/render"
)

// ErrNoContent means the generation capability returned no usable content.
// This is fatal to the Run.
var ErrNoContent = errors.New("no usable content in generation response")

const systemPrompt = `You are an expert newsletter editor creating a personalized newsletter. Write a concise, engaging summary that:
- highlights the most important stories
- uses a friendly, conversational tone
- keeps the reader informed and engaged
- provides context and insights

Format the response as a proper newsletter with a title and organized content.
Clearly separate summaries for each stock and make it email-friendly with clear sections for each ticker symbol and engaging subject lines.
Focus on news that might move the stock price.`

type Synthesizer struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewSynthesizer(apiKey, model string, opts ...option.RequestOption) *Synthesizer {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(60 * time.Second),
	}, opts...)
	client := openai.NewClient(opts...)
	return &Synthesizer{
		client: &client,
		model:  openai.ChatModel(model),
	}
}

// Synthesize invokes the generation model over the aggregated articles and
// returns the newsletter digest. A retry re-invokes generation and may
// produce different prose; results are not diffed.
func (s *Synthesizer) Synthesize(ctx context.Context, symbols []string, articles []models.Article) (models.Digest, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildUserPrompt(symbols, articles)),
		},
	})
	if err != nil {
		return models.Digest{}, fmt.Errorf("generation API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return models.Digest{}, ErrNoContent
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return models.Digest{}, ErrNoContent
	}

	return models.Digest{
		Content: content,
		Preview: render.Preview(content),
	}, nil
}
