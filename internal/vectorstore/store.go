// Package vectorstore defines the similarity store the memory engine writes
// to, plus its two backends: an embedded in-process store and Milvus.
package vectorstore

import "context"

// Point is one stored vector with its payload
type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]interface{}
}

// ScoredPoint is one nearest-neighbor hit, higher score = more similar
type ScoredPoint struct {
	ID      string
	Score   float64
	Payload map[string]interface{}
}

// Store is a per-collection vector store. Each upsert is atomic per point;
// there are no cross-point transactions, and Scroll reflects a point-in-time
// snapshot that may be skewed under concurrent writes.
type Store interface {
	// EnsureCollection makes sure a collection exists with the given
	// vector dimension. Idempotent.
	EnsureCollection(ctx context.Context, collection string, dim int) error

	// Upsert writes a single point into the collection
	Upsert(ctx context.Context, collection string, p Point) error

	// Query returns up to k nearest neighbors of the vector, ordered by
	// descending cosine similarity. An empty result is not an error.
	Query(ctx context.Context, collection string, vector []float32, k int) ([]ScoredPoint, error)

	// Scroll enumerates up to limit payloads from the collection
	Scroll(ctx context.Context, collection string, limit int) ([]map[string]interface{}, error)

	// Close releases backend resources
	Close() error
}
