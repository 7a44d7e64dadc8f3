package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/satyalabs/trustmem/internal/model"
)

// ClipEmbedder talks to a CLIP embedding service over HTTP. The service
// loads the vision model once and serves 512-d vectors for image or frame
// references it can read.
type ClipEmbedder struct {
	baseURL string
	client  *http.Client
}

// NewClipEmbedder creates a client for the CLIP service at baseURL
func NewClipEmbedder(baseURL string, timeout time.Duration) *ClipEmbedder {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &ClipEmbedder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type clipRequest struct {
	Path string `json:"path"`
}

type clipResponse struct {
	Embedding []float32 `json:"embedding"`
}

// EmbedImage returns the 512-d CLIP embedding for the referenced image
func (e *ClipEmbedder) EmbedImage(ctx context.Context, ref string) ([]float32, error) {
	body, err := json.Marshal(clipRequest{Path: ref})
	if err != nil {
		return nil, fmt.Errorf("marshal clip request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embed/image", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("clip request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("clip service error %d: %s", resp.StatusCode, string(b))
	}

	var result clipResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode clip response: %w", err)
	}
	return checkDim(result.Embedding, model.ImageDim)
}
