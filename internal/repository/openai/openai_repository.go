package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shiftHire/domain"
	"shiftHire/pkg/logger"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

const DefaultModel = "gpt-4o-mini"

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIRepository is a chat completion client behind a circuit breaker.
// Without an API key every call fails fast so callers take their fallback.
type OpenAIRepository struct {
	client *openai.Client
	model  string
	cb     *gobreaker.CircuitBreaker
}

func NewOpenAIRepository(cfg OpenAIConfig) *OpenAIRepository {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	var client *openai.Client
	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		client = openai.NewClientWithConfig(clientCfg)
	}

	cbSettings := gobreaker.Settings{
		Name:        "openai-chat",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &OpenAIRepository{
		client: client,
		model:  model,
		cb:     gobreaker.NewCircuitBreaker(cbSettings),
	}
}

func (r *OpenAIRepository) Enabled() bool {
	return r.client != nil
}

// CompleteWithSystem returns the first choice's content. Empty replies are errors.
func (r *OpenAIRepository) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if r.client == nil {
		return "", fmt.Errorf("%w: llm client disabled", domain.ErrExternalService)
	}

	out, err := r.cb.Execute(func() (interface{}, error) {
		resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: r.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
		})
		if err != nil {
			return "", err
		}

		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			return "", fmt.Errorf("empty completion")
		}

		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}

	return out.(string), nil
}
