package insight

import (
	"strings"
	"testing"

	"github.com/satyalabs/trustmem/internal/model"
)

func TestBuildPromptIncludesEvidence(t *testing.T) {
	rep := model.TrustReport{
		Status:          model.StatusHistoryFound,
		NarrativeID:     "NAR_aa000000",
		OccurrenceCount: 2,
		FirstSeen:       2020,
		LastSeen:        2024,
		Sources:         []string{"facebook", "twitter"},
		Timeline: []model.TimelineEntry{
			{Year: 2020, Source: "twitter", Claim: "the original rumor", NarrativeID: "NAR_aa000000"},
			{Source: "facebook", Claim: "an undated variant", NarrativeID: "NAR_aa000000"},
		},
		Stats: &model.NarrativeStats{ThreatLevel: model.ThreatMedium, State: model.StateResurfaced},
	}

	prompt := BuildPrompt(rep)

	for _, want := range []string{
		"NAR_aa000000",
		"the original rumor",
		"an undated variant",
		"unknown year",
		"facebook, twitter",
		"MEDIUM",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if !strings.Contains(prompt, "NEVER determines whether a claim is true") {
		t.Error("prompt lost the strict evidence framing")
	}
}

func TestBuildPromptTruncatesLongTimelines(t *testing.T) {
	rep := model.TrustReport{NarrativeID: "NAR_aa000000"}
	for i := 0; i < 15; i++ {
		rep.Timeline = append(rep.Timeline, model.TimelineEntry{
			Year: 2020 + i%5, Source: "twitter", Claim: "claim variant",
		})
	}

	prompt := BuildPrompt(rep)
	if !strings.Contains(prompt, "and 5 more") {
		t.Error("long timeline not truncated")
	}
}

func TestNewSummarizerDisabled(t *testing.T) {
	s, err := NewSummarizer(model.InsightConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if s != nil {
		t.Error("empty provider should disable insight")
	}
}

func TestNewSummarizerUnknownProvider(t *testing.T) {
	if _, err := NewSummarizer(model.InsightConfig{Provider: "parrot"}); err == nil {
		t.Error("unknown provider accepted")
	}
}

func TestNewSummarizerRequiresKey(t *testing.T) {
	if _, err := NewSummarizer(model.InsightConfig{Provider: "openai"}); err == nil {
		t.Error("openai without api key accepted")
	}
}
