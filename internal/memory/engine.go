// Package memory wires the trust memory together: validation, embedding,
// linking, aggregation, intelligence, reports, and fleet analytics behind a
// single engine facade.
package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/satyalabs/trustmem/internal/analytics"
	"github.com/satyalabs/trustmem/internal/embedding"
	"github.com/satyalabs/trustmem/internal/insight"
	"github.com/satyalabs/trustmem/internal/model"
	"github.com/satyalabs/trustmem/internal/narrative"
	"github.com/satyalabs/trustmem/internal/report"
	"github.com/satyalabs/trustmem/internal/validate"
	"github.com/satyalabs/trustmem/internal/vectorstore"
)

// narrativesCacheKey holds the aggregation snapshot in the engine cache
const narrativesCacheKey = "narratives:all"

// Engine is the service facade over the trust memory core. All input
// validation happens here, before any embedding or store call.
type Engine struct {
	cfg      *model.Config
	store    vectorstore.Store
	linker   *narrative.Linker
	agg      *narrative.Aggregator
	intel    *narrative.Intelligence
	reports  *report.Generator
	aggCache *gocache.Cache
	log      *logrus.Entry
}

// New builds an engine from configuration: store backend, embedding provider
// stack, and the optional insight summarizer.
func New(ctx context.Context, cfg *model.Config) (*Engine, error) {
	store, err := newStore(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := ensureCollections(ctx, store, cfg.Store); err != nil {
		store.Close()
		return nil, err
	}

	provider, err := embedding.NewProvider(cfg)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("embedding provider: %w", err)
	}

	summarizer, err := insight.NewSummarizer(cfg.Insight)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("insight provider: %w", err)
	}

	return NewWithComponents(cfg, store, provider, summarizer), nil
}

// NewWithComponents assembles an engine from preconstructed collaborators.
// Useful when embedding the engine into a service that manages its own
// provider and store lifecycles.
func NewWithComponents(cfg *model.Config, store vectorstore.Store, provider embedding.Provider, summarizer report.Summarizer) *Engine {
	linker := narrative.NewLinker(provider, store, cfg)
	intel := narrative.NewIntelligence(cfg.Threat)
	return &Engine{
		cfg:      cfg,
		store:    store,
		linker:   linker,
		agg:      narrative.NewAggregator(store, cfg.Store),
		intel:    intel,
		reports:  report.NewGenerator(linker, intel, summarizer),
		aggCache: gocache.New(cfg.Cache.TTL, cfg.Cache.CleanupInterval),
		log:      logrus.WithField("component", "engine"),
	}
}

func newStore(ctx context.Context, cfg model.StoreConfig) (vectorstore.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return vectorstore.NewMemoryStore(), nil
	case "milvus":
		return vectorstore.NewMilvusStore(ctx, cfg.MilvusAddress)
	default:
		return nil, fmt.Errorf("unknown store backend: %s (supported: memory, milvus)", cfg.Backend)
	}
}

func ensureCollections(ctx context.Context, store vectorstore.Store, cfg model.StoreConfig) error {
	collections := map[string]int{
		cfg.TextCollection:  model.TextDim,
		cfg.ImageCollection: model.ImageDim,
		cfg.VideoCollection: model.VideoDim,
	}
	for name, dim := range collections {
		if err := store.EnsureCollection(ctx, name, dim); err != nil {
			return fmt.Errorf("ensure collection %s: %w", name, err)
		}
	}
	return nil
}

// LinkText validates and ingests a text claim
func (e *Engine) LinkText(ctx context.Context, claim string, year int, source string) (model.LinkResult, error) {
	claim, err := validate.ClaimText(claim)
	if err != nil {
		return model.LinkResult{}, err
	}
	if err := validate.Year(year); err != nil {
		return model.LinkResult{}, err
	}

	res, err := e.linker.LinkText(ctx, claim, year, validate.Source(source))
	if err != nil {
		return model.LinkResult{}, err
	}
	e.invalidate()
	return res, nil
}

// LinkImage validates and ingests an image reference
func (e *Engine) LinkImage(ctx context.Context, ref string, year int, source string) (model.LinkResult, error) {
	if err := validate.ImageRef(ref); err != nil {
		return model.LinkResult{}, err
	}
	if err := validate.Year(year); err != nil {
		return model.LinkResult{}, err
	}

	res, err := e.linker.LinkImage(ctx, ref, year, validate.Source(source))
	if err != nil {
		return model.LinkResult{}, err
	}
	e.invalidate()
	return res, nil
}

// Search runs a text similarity search over stored claims
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]model.SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}
	return e.linker.Search(ctx, query, limit)
}

// Narratives lists all narratives as compact summaries, largest first
func (e *Engine) Narratives(ctx context.Context, limit int) ([]model.NarrativeSummary, error) {
	narratives, err := e.allNarratives(ctx, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.NarrativeSummary, 0, len(narratives))
	for id, items := range narratives {
		stats := e.intel.ComputeStats(items, time.Now().Year())
		summaries = append(summaries, model.NarrativeSummary{
			NarrativeID: id,
			MemoryCount: len(items),
			FirstSeen:   stats.FirstSeen,
			LastSeen:    stats.LastSeen,
			Sources:     stats.Sources,
			Modalities:  stats.Modalities,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].MemoryCount != summaries[j].MemoryCount {
			return summaries[i].MemoryCount > summaries[j].MemoryCount
		}
		return summaries[i].NarrativeID < summaries[j].NarrativeID
	})
	return summaries, nil
}

// Narrative returns one narrative's items and its computed statistics
func (e *Engine) Narrative(ctx context.Context, id string) ([]model.Item, model.NarrativeStats, error) {
	items, err := e.agg.Get(ctx, id)
	if err != nil {
		return nil, model.NarrativeStats{}, err
	}
	return items, e.intel.ComputeStats(items, time.Now().Year()), nil
}

// TrustReport answers "have we seen this claim before" for a free-text query
func (e *Engine) TrustReport(ctx context.Context, query string) (model.TrustReport, error) {
	return e.reports.Generate(ctx, query, time.Now().Year())
}

// Viral ranks narratives whose activity concentrates in the recent window
func (e *Engine) Viral(ctx context.Context, windowYears int) ([]model.ViralNarrative, error) {
	narratives, err := e.allNarratives(ctx, 0)
	if err != nil {
		return nil, err
	}
	return analytics.DetectViral(narratives, windowYears, time.Now().Year()), nil
}

// PlatformRisk ranks platforms by their narrative exposure
func (e *Engine) PlatformRisk(ctx context.Context) ([]model.PlatformRisk, error) {
	narratives, err := e.allNarratives(ctx, 0)
	if err != nil {
		return nil, err
	}
	return analytics.PlatformRiskScores(narratives), nil
}

// Campaigns flags potential coordinated pushes
func (e *Engine) Campaigns(ctx context.Context) ([]model.Campaign, error) {
	narratives, err := e.allNarratives(ctx, 0)
	if err != nil {
		return nil, err
	}
	return analytics.DetectCampaigns(narratives), nil
}

// Summary condenses the whole narrative ecosystem into one snapshot
func (e *Engine) Summary(ctx context.Context) (model.ClusterSummary, error) {
	narratives, err := e.allNarratives(ctx, 0)
	if err != nil {
		return model.ClusterSummary{}, err
	}
	return analytics.Summary(narratives), nil
}

// Close releases the store backend
func (e *Engine) Close() error {
	return e.store.Close()
}

// allNarratives returns the aggregation snapshot, briefly cached because
// every analytics call re-scans the full store. Only unlimited scans are
// cached; explicit limits bypass the cache.
func (e *Engine) allNarratives(ctx context.Context, limit int) (map[string][]model.Item, error) {
	cacheable := e.cfg.Cache.Enabled && limit <= 0
	if cacheable {
		if cached, ok := e.aggCache.Get(narrativesCacheKey); ok {
			return cached.(map[string][]model.Item), nil
		}
	}

	narratives, err := e.agg.All(ctx, limit)
	if err != nil {
		return nil, err
	}
	if cacheable {
		e.aggCache.SetDefault(narrativesCacheKey, narratives)
	}
	return narratives, nil
}

// invalidate drops the aggregation snapshot after an ingest
func (e *Engine) invalidate() {
	e.aggCache.Delete(narrativesCacheKey)
}
