package vectorstore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// MemoryStore is an embedded, non-persistent store backed by an exact
// cosine scan. It mirrors the local embedded mode of the production
// deployment and backs the test suite; Milvus is the networked backend.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

type memCollection struct {
	dim    int
	order  []string // insertion order, for stable scrolls
	points map[string]Point
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memCollection)}
}

// EnsureCollection creates the collection if it does not exist
func (s *MemoryStore) EnsureCollection(_ context.Context, collection string, dim int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.collections[collection]; ok {
		if c.dim != dim {
			return fmt.Errorf("collection %q exists with dimension %d, requested %d", collection, c.dim, dim)
		}
		return nil
	}
	s.collections[collection] = &memCollection{
		dim:    dim,
		points: make(map[string]Point),
	}
	return nil
}

// Upsert inserts or replaces a point by id
func (s *MemoryStore) Upsert(_ context.Context, collection string, p Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return fmt.Errorf("unknown collection %q", collection)
	}
	if len(p.Vector) != c.dim {
		return fmt.Errorf("collection %q expects dimension %d, got %d", collection, c.dim, len(p.Vector))
	}
	if _, exists := c.points[p.ID]; !exists {
		c.order = append(c.order, p.ID)
	}
	c.points[p.ID] = p
	return nil
}

// Query performs an exact cosine scan and returns the top k hits
func (s *MemoryStore) Query(_ context.Context, collection string, vector []float32, k int) ([]ScoredPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
	if len(vector) != c.dim {
		return nil, fmt.Errorf("collection %q expects dimension %d, got %d", collection, c.dim, len(vector))
	}

	hits := make([]ScoredPoint, 0, len(c.points))
	for _, p := range c.points {
		hits = append(hits, ScoredPoint{
			ID:      p.ID,
			Score:   cosineSimilarity(vector, p.Vector),
			Payload: p.Payload,
		})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Scroll returns up to limit payloads in insertion order
func (s *MemoryStore) Scroll(_ context.Context, collection string, limit int) ([]map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	n := len(c.order)
	if limit > 0 && limit < n {
		n = limit
	}
	payloads := make([]map[string]interface{}, 0, n)
	for _, id := range c.order[:n] {
		payloads = append(payloads, c.points[id].Payload)
	}
	return payloads, nil
}

// Close is a no-op for the embedded store
func (s *MemoryStore) Close() error { return nil }

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
