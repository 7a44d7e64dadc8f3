package embedding

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/satyalabs/trustmem/internal/cache"
	"github.com/satyalabs/trustmem/internal/model"
)

// NewProvider assembles the configured provider stack: OpenAI for text and
// the CLIP service for images, wrapped in a rate limiter and, when enabled,
// a layered content-hash cache.
func NewProvider(cfg *model.Config) (Provider, error) {
	text, err := NewOpenAIEmbedder(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("text embedder: %w", err)
	}

	var provider Provider = Composite{
		Text:  text,
		Image: NewClipEmbedder(cfg.Embedding.ClipURL, cfg.Embedding.Timeout),
	}

	provider = NewRateLimited(provider, cfg.Concurrency.EmbedPerSecond, cfg.Concurrency.EmbedBurst)

	if cfg.Cache.Enabled {
		// Embeddings are deterministic per content, so the disk layer can
		// hold them far longer than the in-memory TTL.
		layered := cache.NewLayeredCache(cfg.Cache.TTL, cacheDir(), 30*24*time.Hour)
		provider = NewCached(provider, layered, cfg.Cache.TTL)
	}
	return provider, nil
}

func cacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "trustmem-cache")
	}
	return filepath.Join(home, ".trustmem", "cache")
}
