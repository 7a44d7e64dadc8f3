// Package embedding defines the embedding provider the linker depends on
// and its OpenAI / CLIP-service implementations. The core only assumes that
// semantically similar inputs embed to vectors with high cosine similarity.
package embedding

import (
	"context"
	"fmt"
)

// Provider turns content into fixed-length vectors: 384-d for text,
// 512-d for images and video frames.
type Provider interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedImage(ctx context.Context, ref string) ([]float32, error)
}

// Composite routes text and image embedding to separate backends
type Composite struct {
	Text  TextEmbedder
	Image ImageEmbedder
}

// TextEmbedder embeds text only
type TextEmbedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// ImageEmbedder embeds image references only
type ImageEmbedder interface {
	EmbedImage(ctx context.Context, ref string) ([]float32, error)
}

// EmbedText delegates to the text backend
func (c Composite) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if c.Text == nil {
		return nil, fmt.Errorf("no text embedding backend configured")
	}
	return c.Text.EmbedText(ctx, text)
}

// EmbedImage delegates to the image backend
func (c Composite) EmbedImage(ctx context.Context, ref string) ([]float32, error) {
	if c.Image == nil {
		return nil, fmt.Errorf("no image embedding backend configured")
	}
	return c.Image.EmbedImage(ctx, ref)
}

// checkDim guards against a provider silently returning a wrong-dimension
// vector, which would poison the collection it lands in.
func checkDim(vec []float32, want int) ([]float32, error) {
	if len(vec) != want {
		return nil, fmt.Errorf("embedding dimension %d, want %d", len(vec), want)
	}
	return vec, nil
}
