package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/satyalabs/trustmem/internal/model"
)

// OpenAIEmbedder embeds text through the OpenAI embeddings API, requesting
// vectors truncated to the text collection's 384 dimensions.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEmbedder creates a text embedder from the embedding config
func NewOpenAIEmbedder(cfg model.EmbeddingConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	embModel := openai.EmbeddingModel(cfg.Model)
	if cfg.Model == "" {
		embModel = openai.SmallEmbedding3
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(clientConfig),
		model:  embModel,
	}, nil
}

// EmbedText returns the 384-d embedding of the text
func (e *OpenAIEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      e.model,
		Dimensions: model.TextDim,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embeddings: empty response")
	}
	return checkDim(resp.Data[0].Embedding, model.TextDim)
}
