package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/satyalabs/trustmem/internal/model"
	"github.com/satyalabs/trustmem/internal/narrative"
)

const testNowYear = 2025

type stubSearcher struct {
	hits []model.SearchResult
	err  error
}

func (s *stubSearcher) Search(_ context.Context, _ string, _ int) ([]model.SearchResult, error) {
	return s.hits, s.err
}

type stubSummarizer struct {
	summary model.InsightSummary
	err     error
}

func (s *stubSummarizer) Summarize(_ context.Context, _ model.TrustReport) (model.InsightSummary, error) {
	return s.summary, s.err
}

func testIntel() *narrative.Intelligence {
	return narrative.NewIntelligence(model.ThreatConfig{Critical: 70, High: 50, Medium: 30})
}

func hit(score float64, id, claim string, year int, source string) model.SearchResult {
	return model.SearchResult{
		Score:       score,
		NarrativeID: id,
		Claim:       claim,
		Year:        year,
		Source:      source,
		Modality:    model.ModalityText,
	}
}

func TestGenerateNoHistory(t *testing.T) {
	g := NewGenerator(&stubSearcher{}, testIntel(), nil)

	rep, err := g.Generate(context.Background(), "never seen before", testNowYear)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Status != model.StatusNoHistory {
		t.Errorf("status = %s, want no_history", rep.Status)
	}
	if rep.Message == "" {
		t.Error("no-history report should carry a message")
	}
	if rep.NarrativeID != "" || rep.Stats != nil {
		t.Error("no-history report should carry no analysis fields")
	}
}

func TestGeneratePropagatesSearchError(t *testing.T) {
	g := NewGenerator(&stubSearcher{err: errors.New("store down")}, testIntel(), nil)
	if _, err := g.Generate(context.Background(), "anything", testNowYear); err == nil {
		t.Fatal("expected search error to propagate")
	}
}

func TestGenerateFullReport(t *testing.T) {
	searcher := &stubSearcher{hits: []model.SearchResult{
		hit(0.95, "NAR_aa000000", "vaccine microchip rumor", 2024, "twitter"),
		hit(0.90, "NAR_aa000000", "microchips in vaccines", 2020, "facebook"),
		hit(0.82, "NAR_bb000000", "related but distinct rumor", 0, "telegram"),
	}}
	g := NewGenerator(searcher, testIntel(), nil)

	rep, err := g.Generate(context.Background(), "microchip vaccine", testNowYear)
	if err != nil {
		t.Fatal(err)
	}

	if rep.Status != model.StatusHistoryFound {
		t.Fatalf("status = %s", rep.Status)
	}
	if rep.NarrativeID != "NAR_aa000000" {
		t.Errorf("subject = %s, want the top hit's narrative", rep.NarrativeID)
	}
	if rep.OccurrenceCount != 3 {
		t.Errorf("occurrences = %d, want 3", rep.OccurrenceCount)
	}
	if rep.FirstSeen != 2020 || rep.LastSeen != 2024 {
		t.Errorf("seen range = %d..%d, want 2020..2024", rep.FirstSeen, rep.LastSeen)
	}

	// Missing year first, then ascending; cross-narrative hits are kept
	years := make([]int, 0, len(rep.Timeline))
	ids := make(map[string]bool)
	for _, e := range rep.Timeline {
		years = append(years, e.Year)
		ids[e.NarrativeID] = true
	}
	if years[0] != 0 || years[1] != 2020 || years[2] != 2024 {
		t.Errorf("timeline years = %v, want [0 2020 2024]", years)
	}
	if !ids["NAR_bb000000"] {
		t.Error("timeline dropped the neighboring narrative's hit")
	}

	if rep.Stats == nil {
		t.Fatal("missing stats bundle")
	}
	// 3 sources*10 + 1 modality*15 + lifespan 4*5 + mutation 3*4 + 15 = 92
	if rep.EvidenceStrength != 92 {
		t.Errorf("evidence strength = %d, want 92", rep.EvidenceStrength)
	}
	// 3 occurrences * 3 platforms = 9 -> HIGH
	if rep.Risk == nil || rep.Risk.Score != 9 || rep.Risk.Level != "HIGH" {
		t.Errorf("risk = %+v, want score 9 HIGH", rep.Risk)
	}
	// min(30,40) + min(30,30) + span>=3 bonus 30 = 90 -> High
	if rep.Resurgence == nil || rep.Resurgence.Score != 90 || rep.Resurgence.Risk != "High" {
		t.Errorf("resurgence = %+v, want score 90 High", rep.Resurgence)
	}
	if rep.Responsibility == nil || rep.Responsibility.EvidenceStrength != "Medium" ||
		rep.Responsibility.HumanReview != "Recommended" {
		t.Errorf("responsibility = %+v", rep.Responsibility)
	}
	if !strings.Contains(rep.Insight, "first appeared in 2020") ||
		!strings.Contains(rep.Insight, "resurfaced 2 times") {
		t.Errorf("insight = %q", rep.Insight)
	}
}

func TestGenerateSummarizerFailureIsNotFatal(t *testing.T) {
	searcher := &stubSearcher{hits: []model.SearchResult{
		hit(0.9, "NAR_aa000000", "some claim text here", 2024, "twitter"),
	}}
	g := NewGenerator(searcher, testIntel(), &stubSummarizer{err: errors.New("llm offline")})

	rep, err := g.Generate(context.Background(), "some claim", testNowYear)
	if err != nil {
		t.Fatal(err)
	}
	if rep.LLM != nil {
		t.Error("failed summarizer attached a summary")
	}

	ok := NewGenerator(searcher, testIntel(), &stubSummarizer{
		summary: model.InsightSummary{Provider: "openai", Model: "gpt-4o-mini", Summary: "seen once"},
	})
	rep, err = ok.Generate(context.Background(), "some claim", testNowYear)
	if err != nil {
		t.Fatal(err)
	}
	if rep.LLM == nil || rep.LLM.Summary != "seen once" {
		t.Errorf("summary not attached: %+v", rep.LLM)
	}
}

func TestRiskBands(t *testing.T) {
	cases := []struct {
		occurrences, platforms int
		score                  int
		level                  string
	}{
		{1, 1, 1, "LOW"},
		{2, 2, 4, "MEDIUM"},
		{4, 2, 8, "HIGH"},
		{0, 5, 0, "LOW"},
	}
	for _, c := range cases {
		got := CalculateRisk(c.occurrences, c.platforms)
		if got.Score != c.score || got.Level != c.level {
			t.Errorf("CalculateRisk(%d, %d) = %+v, want %d %s",
				c.occurrences, c.platforms, got, c.score, c.level)
		}
	}
}

func TestResurgenceCapsAndBands(t *testing.T) {
	// Heavy narrative saturates both capped terms: 40 + 30 + 30 = 100
	got := ResurgenceRisk(50, 50, 5)
	if got.Score != 100 || got.Risk != "High" {
		t.Errorf("saturated resurgence = %+v, want 100 High", got)
	}

	// 2 occurrences, 2 platforms, 1-year span: 20 + 20 + 10 = 50 -> Medium
	got = ResurgenceRisk(2, 2, 1)
	if got.Score != 50 || got.Risk != "Medium" {
		t.Errorf("resurgence = %+v, want 50 Medium", got)
	}

	// Single sighting: 10 + 10 + 0 = 20 -> Low
	got = ResurgenceRisk(1, 1, 0)
	if got.Score != 20 || got.Risk != "Low" {
		t.Errorf("resurgence = %+v, want 20 Low", got)
	}
}

func TestResponsibilityThresholds(t *testing.T) {
	low := AssessResponsibility(1)
	if low.EvidenceStrength != "Low" || low.HumanReview != "Required" {
		t.Errorf("thin evidence = %+v", low)
	}
	high := AssessResponsibility(7)
	if high.EvidenceStrength != "High" || high.HumanReview != "Recommended" {
		t.Errorf("strong evidence = %+v", high)
	}
	if low.PrivacyNote == "" {
		t.Error("missing privacy note")
	}
}
