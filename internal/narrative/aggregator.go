package narrative

import (
	"context"
	"errors"
	"fmt"

	"github.com/satyalabs/trustmem/internal/model"
	"github.com/satyalabs/trustmem/internal/vectorstore"
)

// ErrNarrativeNotFound is returned when a narrative id has no items
var ErrNarrativeNotFound = errors.New("narrative not found")

// Aggregator reconstructs narrative histories by scanning every modality
// collection and grouping payloads by narrative id. It is the aggregation
// primitive every analytics component consumes; each call re-reads the
// store in full, so the result is a point-in-time snapshot.
type Aggregator struct {
	store vectorstore.Store
	cfg   model.StoreConfig
}

// NewAggregator creates an aggregator over the store
func NewAggregator(store vectorstore.Store, cfg model.StoreConfig) *Aggregator {
	return &Aggregator{store: store, cfg: cfg}
}

// All groups up to limit items per collection by narrative id. Points
// without a narrative id are skipped; they cannot belong to any history.
func (a *Aggregator) All(ctx context.Context, limit int) (map[string][]model.Item, error) {
	if limit <= 0 {
		limit = a.cfg.ScrollLimit
	}

	collections := []string{a.cfg.TextCollection, a.cfg.ImageCollection, a.cfg.VideoCollection}
	narratives := make(map[string][]model.Item)

	for _, collection := range collections {
		payloads, err := a.store.Scroll(ctx, collection, limit)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		for _, p := range payloads {
			item, err := model.ItemFromPayload(p)
			if err != nil {
				continue
			}
			narratives[item.NarrativeID] = append(narratives[item.NarrativeID], item)
		}
	}
	return narratives, nil
}

// Get returns the items of a single narrative, or ErrNarrativeNotFound
func (a *Aggregator) Get(ctx context.Context, narrativeID string) ([]model.Item, error) {
	narratives, err := a.All(ctx, 0)
	if err != nil {
		return nil, err
	}
	items, ok := narratives[narrativeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNarrativeNotFound, narrativeID)
	}
	return items, nil
}
