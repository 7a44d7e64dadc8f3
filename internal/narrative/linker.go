// Package narrative holds the linking and intelligence core: assigning
// incoming items to narrative identities by embedding similarity, and
// deriving longitudinal statistics from the clusters that emerge.
package narrative

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/satyalabs/trustmem/internal/embedding"
	"github.com/satyalabs/trustmem/internal/model"
	"github.com/satyalabs/trustmem/internal/vectorstore"
)

// Linker decides whether a new item reinforces an existing narrative or
// starts a new one. Exactly one item is upserted per successful call; a
// failed embedding or search leaves the store untouched.
type Linker struct {
	provider embedding.Provider
	store    vectorstore.Store
	cfg      *model.Config
	log      *logrus.Entry
}

// NewLinker creates a linker over the given provider and store
func NewLinker(provider embedding.Provider, store vectorstore.Store, cfg *model.Config) *Linker {
	return &Linker{
		provider: provider,
		store:    store,
		cfg:      cfg,
		log:      logrus.WithField("component", "linker"),
	}
}

// LinkText links a text claim to a narrative and stores the new item
func (l *Linker) LinkText(ctx context.Context, claim string, year int, source string) (model.LinkResult, error) {
	vec, err := l.provider.EmbedText(ctx, claim)
	if err != nil {
		return model.LinkResult{}, fmt.Errorf("embed claim: %w", err)
	}

	item := model.Item{
		Modality: model.ModalityText,
		Claim:    claim,
		Year:     year,
		Source:   source,
	}
	return l.link(ctx, item, vec, l.cfg.Linking.TextThreshold)
}

// LinkImage links an image reference to a visual narrative and stores it
func (l *Linker) LinkImage(ctx context.Context, ref string, year int, source string) (model.LinkResult, error) {
	vec, err := l.provider.EmbedImage(ctx, ref)
	if err != nil {
		return model.LinkResult{}, fmt.Errorf("embed image: %w", err)
	}

	item := model.Item{
		Modality:   model.ModalityImage,
		ContentRef: ref,
		Year:       year,
		Source:     source,
	}
	return l.link(ctx, item, vec, l.cfg.Linking.ImageThreshold)
}

func (l *Linker) link(ctx context.Context, item model.Item, vec []float32, threshold float64) (model.LinkResult, error) {
	collection := collectionFor(l.cfg.Store, item.Modality)

	hits, err := l.store.Query(ctx, collection, vec, l.cfg.Linking.SearchDepth)
	if err != nil {
		return model.LinkResult{}, fmt.Errorf("query neighbors: %w", err)
	}

	if len(hits) > 0 && hits[0].Score >= threshold {
		item.Reinforced = true
		item.NarrativeID, _ = hits[0].Payload["narrative_id"].(string)
		if item.NarrativeID == "" {
			// Neighbor without an identity should not exist; do not
			// inherit the hole.
			item.NarrativeID = newNarrativeID()
		}
	} else {
		item.Reinforced = false
		item.NarrativeID = newNarrativeID()
	}

	item.ID = uuid.New().String()
	item.Timestamp = time.Now().Unix()

	point := vectorstore.Point{ID: item.ID, Vector: vec, Payload: item.Payload()}
	if err := l.store.Upsert(ctx, collection, point); err != nil {
		return model.LinkResult{}, fmt.Errorf("store item: %w", err)
	}

	l.log.WithFields(logrus.Fields{
		"narrative_id": item.NarrativeID,
		"modality":     item.Modality,
		"source":       item.Source,
		"reinforced":   item.Reinforced,
	}).Info("item linked")

	return model.LinkResult{NarrativeID: item.NarrativeID, Reinforced: item.Reinforced}, nil
}

// Search runs a text similarity search and returns scored hits
func (l *Linker) Search(ctx context.Context, query string, limit int) ([]model.SearchResult, error) {
	vec, err := l.provider.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := l.store.Query(ctx, collectionFor(l.cfg.Store, model.ModalityText), vec, limit)
	if err != nil {
		return nil, fmt.Errorf("search claims: %w", err)
	}

	results := make([]model.SearchResult, 0, len(hits))
	for _, h := range hits {
		results = append(results, resultFromHit(h))
	}
	return results, nil
}

// newNarrativeID mints a NAR_<8-hex> identifier. Collisions are considered
// negligible at this id size; no uniqueness check is made against the store.
func newNarrativeID() string {
	return "NAR_" + uuid.New().String()[:8]
}

func resultFromHit(h vectorstore.ScoredPoint) model.SearchResult {
	// A hit without a narrative id still carries display fields; keep it.
	it, _ := model.ItemFromPayload(h.Payload)
	return model.SearchResult{
		Score:       h.Score,
		NarrativeID: it.NarrativeID,
		Claim:       it.Claim,
		ContentRef:  it.ContentRef,
		Year:        it.Year,
		Source:      it.Source,
		Modality:    it.Modality,
	}
}

// collectionFor maps a modality onto its logical collection
func collectionFor(cfg model.StoreConfig, m model.Modality) string {
	switch m {
	case model.ModalityImage:
		return cfg.ImageCollection
	case model.ModalityVideoFrame:
		return cfg.VideoCollection
	default:
		return cfg.TextCollection
	}
}
