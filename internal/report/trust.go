// Package report builds trust reports: the consolidated "have we seen this
// claim before" answer combining search hits, narrative statistics, and the
// risk assessments derived from them.
package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/satyalabs/trustmem/internal/model"
	"github.com/satyalabs/trustmem/internal/narrative"
)

// Searcher is the similarity search a report is built from
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]model.SearchResult, error)
}

// Summarizer optionally adds a model-generated summary to a finished report.
// Summaries are cosmetic; a summarizer failure never fails the report.
type Summarizer interface {
	Summarize(ctx context.Context, report model.TrustReport) (model.InsightSummary, error)
}

// searchDepth is how many hits feed a report's timeline and statistics
const searchDepth = 10

// Generator turns a free-text query into a trust report
type Generator struct {
	search     Searcher
	intel      *narrative.Intelligence
	summarizer Summarizer
	log        *logrus.Entry
}

// NewGenerator creates a report generator. The summarizer may be nil.
func NewGenerator(search Searcher, intel *narrative.Intelligence, summarizer Summarizer) *Generator {
	return &Generator{
		search:     search,
		intel:      intel,
		summarizer: summarizer,
		log:        logrus.WithField("component", "report"),
	}
}

// Generate builds a trust report for the query. An empty result set yields
// the no-history sentinel, which is a normal outcome rather than an error.
// The timeline deliberately keeps every hit, including ones from neighboring
// narratives: related-but-distinct claims are part of the answer.
func (g *Generator) Generate(ctx context.Context, query string, nowYear int) (model.TrustReport, error) {
	hits, err := g.search.Search(ctx, query, searchDepth)
	if err != nil {
		return model.TrustReport{}, fmt.Errorf("search history: %w", err)
	}
	if len(hits) == 0 {
		return model.TrustReport{
			Status:  model.StatusNoHistory,
			Message: "no matching narrative history found",
		}, nil
	}

	items := make([]model.Item, 0, len(hits))
	timeline := make([]model.TimelineEntry, 0, len(hits))
	for _, h := range hits {
		items = append(items, model.Item{
			Modality:    h.Modality,
			Claim:       h.Claim,
			ContentRef:  h.ContentRef,
			Year:        h.Year,
			Source:      h.Source,
			NarrativeID: h.NarrativeID,
		})
		timeline = append(timeline, model.TimelineEntry{
			Year:        h.Year,
			Source:      h.Source,
			Claim:       h.Claim,
			NarrativeID: h.NarrativeID,
			Score:       h.Score,
		})
	}
	// Oldest first; entries without a year lead. Stable so equal years keep
	// their relevance order.
	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Year < timeline[j].Year
	})

	stats := g.intel.ComputeStats(items, nowYear)
	risk := CalculateRisk(len(items), len(stats.Sources))
	resurgence := ResurgenceRisk(len(items), len(stats.Sources), stats.Lifespan)
	responsibility := AssessResponsibility(len(items))

	rep := model.TrustReport{
		Status:           model.StatusHistoryFound,
		NarrativeID:      hits[0].NarrativeID,
		OccurrenceCount:  len(items),
		FirstSeen:        stats.FirstSeen,
		LastSeen:         stats.LastSeen,
		Sources:          stats.Sources,
		Timeline:         timeline,
		Stats:            &stats,
		EvidenceStrength: EvidenceStrength(stats),
		Risk:             &risk,
		Resurgence:       &resurgence,
		Responsibility:   &responsibility,
		Insight:          insightLine(stats, len(items)),
	}

	if g.summarizer != nil {
		summary, err := g.summarizer.Summarize(ctx, rep)
		if err != nil {
			g.log.WithError(err).Warn("insight summary skipped")
		} else {
			rep.LLM = &summary
		}
	}
	return rep, nil
}

// insightLine renders the one-sentence templated summary of the history
func insightLine(stats model.NarrativeStats, occurrences int) string {
	resurfaced := occurrences - 1
	if resurfaced < 0 {
		resurfaced = 0
	}
	if stats.FirstSeen == 0 {
		return fmt.Sprintf("This narrative has been observed %d times across platforms.", occurrences)
	}
	return fmt.Sprintf("This narrative first appeared in %d and resurfaced %d times across platforms.",
		stats.FirstSeen, resurfaced)
}
