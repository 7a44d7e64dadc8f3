package embedding

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/time/rate"

	"github.com/satyalabs/trustmem/internal/cache"
)

// Cached wraps a provider with a content-hash cache. Identical content
// embeds to an identical vector, so a hit skips a paid API call entirely.
type Cached struct {
	next  Provider
	cache cache.Cache
	ttl   time.Duration
}

// NewCached wraps next with the given cache
func NewCached(next Provider, c cache.Cache, ttl time.Duration) *Cached {
	return &Cached{next: next, cache: c, ttl: ttl}
}

// EmbedText returns a cached vector when the exact text was seen before
func (c *Cached) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return c.embed(ctx, cache.Key("embed:text", text), text, c.next.EmbedText)
}

// EmbedImage returns a cached vector when the exact reference was seen before
func (c *Cached) EmbedImage(ctx context.Context, ref string) ([]float32, error) {
	return c.embed(ctx, cache.Key("embed:image", ref), ref, c.next.EmbedImage)
}

func (c *Cached) embed(ctx context.Context, key, content string, fn func(context.Context, string) ([]float32, error)) ([]float32, error) {
	if data, found := c.cache.Get(key); found {
		var vec []float32
		if err := json.Unmarshal(data, &vec); err == nil {
			return vec, nil
		}
		// Undecodable entry: drop it and recompute
		_ = c.cache.Delete(key)
	}

	vec, err := fn(ctx, content)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(vec); err == nil {
		_ = c.cache.Set(key, data, c.ttl)
	}
	return vec, nil
}

// RateLimited throttles embedding calls to stay inside provider quotas
type RateLimited struct {
	next    Provider
	limiter *rate.Limiter
}

// NewRateLimited wraps next with a token-bucket limiter
func NewRateLimited(next Provider, perSecond float64, burst int) *RateLimited {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// EmbedText waits for rate clearance, then delegates
func (r *RateLimited) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.next.EmbedText(ctx, text)
}

// EmbedImage waits for rate clearance, then delegates
func (r *RateLimited) EmbedImage(ctx context.Context, ref string) ([]float32, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.next.EmbedImage(ctx, ref)
}
