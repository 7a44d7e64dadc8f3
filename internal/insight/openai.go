package insight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/satyalabs/trustmem/internal/model"
)

// OpenAIProvider generates report summaries via the Chat Completions API
type OpenAIProvider struct {
	client *openai.Client
	cfg    model.InsightConfig
}

// NewOpenAIProvider creates an OpenAI-backed summarizer
func NewOpenAIProvider(cfg model.InsightConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Summarize generates a natural-language summary of the report
func (p *OpenAIProvider) Summarize(ctx context.Context, report model.TrustReport) (model.InsightSummary, error) {
	chatModel := p.cfg.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}
	maxTokens := p.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 400
	}
	timeout := p.cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize claim-history reports with strict adherence to the observed evidence.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(report),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return model.InsightSummary{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.InsightSummary{}, fmt.Errorf("no response from openai")
	}

	return model.InsightSummary{
		Provider: "openai",
		Model:    chatModel,
		Summary:  strings.TrimSpace(resp.Choices[0].Message.Content),
	}, nil
}
