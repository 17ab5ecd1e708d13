package service

import (
	"context"
	"errors"
	"fmt"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrAIGenerationFailed signals that the upstream text-generation API could
// not produce a story.
var ErrAIGenerationFailed = errors.New("AI text generation failed")

const defaultMaxTokens = 100

const generatorSystemPrompt = "You are a storyteller who writes short folklore-inspired stories. " +
	"Write a single self-contained story for the given prompt."

// GeneratorConfig holds the settings for the AI proxy.
type GeneratorConfig struct {
	BaseURL string // OpenAI-compatible endpoint; empty for the default
	APIKey  string
	Model   string
}

// GeneratorService proxies story-generation prompts to an OpenAI-compatible
// chat-completion endpoint.
type GeneratorService struct {
	client *openaigo.Client
	model  string
	logger *zap.Logger
}

// NewGeneratorService creates a GeneratorService.
func NewGeneratorService(cfg GeneratorConfig, logger *zap.Logger) *GeneratorService {
	openaiConfig := openaigo.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		openaiConfig.BaseURL = cfg.BaseURL
	}

	return &GeneratorService{
		client: openaigo.NewClientWithConfig(openaiConfig),
		model:  cfg.Model,
		logger: logger.Named("GeneratorService"),
	}
}

// GenerateStory sends the prompt upstream and returns the generated text.
// maxTokens <= 0 falls back to a small default.
func (g *GeneratorService) GenerateStory(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openaigo.ChatCompletionRequest{
			Model: g.model,
			Messages: []openaigo.ChatCompletionMessage{
				{
					Role:    openaigo.ChatMessageRoleSystem,
					Content: generatorSystemPrompt,
				},
				{
					Role:    openaigo.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens: maxTokens,
		},
	)
	if err != nil {
		aiGenerationsTotal.WithLabelValues("error").Inc()
		g.logger.Error("AI generation request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		aiGenerationsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: empty response", ErrAIGenerationFailed)
	}

	aiGenerationsTotal.WithLabelValues("success").Inc()
	return resp.Choices[0].Message.Content, nil
}
