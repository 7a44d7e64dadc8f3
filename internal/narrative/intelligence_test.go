package narrative

import (
	"reflect"
	"strings"
	"testing"

	"github.com/satyalabs/trustmem/internal/model"
)

const testNowYear = 2025

func testEngine() *Intelligence {
	return NewIntelligence(model.ThreatConfig{Critical: 70, High: 50, Medium: 30})
}

func textItem(claim string, year int, source string) model.Item {
	return model.Item{
		Modality: model.ModalityText,
		Claim:    claim,
		Year:     year,
		Source:   source,
	}
}

func TestComputeStatsIsDeterministic(t *testing.T) {
	e := testEngine()
	items := []model.Item{
		textItem("claim one about a miracle cure", 2020, "twitter"),
		textItem("claim two about a miracle cure", 2022, "facebook"),
		textItem("claim three about a miracle cure", 2024, "telegram"),
	}

	first := e.ComputeStats(items, testNowYear)
	second := e.ComputeStats(items, testNowYear)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ComputeStats not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestMemoryStrengthFloor(t *testing.T) {
	e := testEngine()

	// A single ancient item: count 1, lifespan 0, decay -3 applies
	stats := e.ComputeStats([]model.Item{textItem("an old claim nobody repeats", 1950, "usenet")}, testNowYear)
	if stats.MemoryStrength < 1 {
		t.Errorf("memory strength %d below floor", stats.MemoryStrength)
	}
	if stats.MemoryStrength != 1 {
		t.Errorf("memory strength = %d, want 1 (count 1 + lifespan 0 - decay 3, floored)", stats.MemoryStrength)
	}
}

func TestStrengthClampedAt100(t *testing.T) {
	e := testEngine()

	var items []model.Item
	for i := 0; i < 60; i++ {
		items = append(items, textItem(
			strings.Repeat("x", i+10)+" distinct phrasing",
			2000+(i%25),
			"platform"+string(rune('a'+i%50)),
		))
	}
	stats := e.ComputeStats(items, testNowYear)
	if stats.Strength > 100 {
		t.Errorf("strength = %d, want <= 100", stats.Strength)
	}
	if stats.Strength != 100 {
		t.Errorf("strength = %d, want exactly 100 for saturated input", stats.Strength)
	}
}

func TestResurfacingThresholds(t *testing.T) {
	e := testEngine()

	three := []model.Item{
		textItem("the same rumor, first sighting", 2020, "twitter"),
		textItem("the same rumor, second sighting", 2021, "twitter"),
		textItem("the same rumor, third sighting", 2022, "twitter"),
	}
	if stats := e.ComputeStats(three, testNowYear); !stats.Resurfacing {
		t.Error("3 items across 3 years should resurface")
	}

	single := []model.Item{textItem("a one-off rumor", 2024, "twitter")}
	if stats := e.ComputeStats(single, testNowYear); stats.Resurfacing {
		t.Error("single item cannot resurface")
	}

	// Three items in one year: lifespan 0 fails the gap requirement
	sameYear := []model.Item{
		textItem("rumor variant a", 2024, "twitter"),
		textItem("rumor variant b", 2024, "facebook"),
		textItem("rumor variant c", 2024, "telegram"),
	}
	if stats := e.ComputeStats(sameYear, testNowYear); stats.Resurfacing {
		t.Error("items within a single year should not resurface")
	}
}

func TestThreatBandingCritical(t *testing.T) {
	e := testEngine()

	// 5 items, 5 distinct sources, years 2020-2024: resurfacing (+30),
	// sources >=4 (+30), lifespan >=3 (+25) puts this in CRITICAL.
	items := []model.Item{
		textItem("vaccine microchip rumor", 2020, "twitter"),
		textItem("vaccine microchip rumor", 2021, "facebook"),
		textItem("vaccine microchip rumor", 2022, "telegram"),
		textItem("vaccine microchip rumor", 2023, "whatsapp"),
		textItem("vaccine microchip rumor", 2024, "tiktok"),
	}
	stats := e.ComputeStats(items, testNowYear)

	if !stats.Resurfacing {
		t.Error("expected resurfacing")
	}
	if stats.Lifespan != 4 {
		t.Errorf("lifespan = %d, want 4", stats.Lifespan)
	}
	if stats.ThreatScore < 85 {
		t.Errorf("threat score = %d, want >= 85", stats.ThreatScore)
	}
	if stats.ThreatLevel != model.ThreatCritical {
		t.Errorf("threat level = %s, want CRITICAL", stats.ThreatLevel)
	}
}

func TestSingleItemIsLowAndNew(t *testing.T) {
	e := testEngine()
	stats := e.ComputeStats([]model.Item{textItem("a fresh claim seen once", 2025, "twitter")}, testNowYear)

	if stats.ThreatLevel != model.ThreatLow {
		t.Errorf("threat level = %s, want LOW", stats.ThreatLevel)
	}
	if stats.State != model.StateNew {
		t.Errorf("state = %s, want NEW", stats.State)
	}
	if stats.ThreatScore != 0 {
		t.Errorf("threat score = %d, want 0", stats.ThreatScore)
	}
}

func TestMutationScoreCountsDistinctPrefixes(t *testing.T) {
	e := testEngine()

	longA := strings.Repeat("a", 70)
	items := []model.Item{
		textItem(longA+" tail one", 2024, "twitter"),
		textItem(longA+" tail two", 2024, "twitter"), // same 60-char prefix
		textItem("completely different phrasing of it", 2024, "twitter"),
	}
	stats := e.ComputeStats(items, testNowYear)
	if stats.MutationScore != 2 {
		t.Errorf("mutation score = %d, want 2", stats.MutationScore)
	}
}

func TestNarrativeStateTransitions(t *testing.T) {
	cases := []struct {
		name        string
		count       int
		lastSeen    int
		resurfacing bool
		want        model.NarrativeState
	}{
		{"no usable years", 4, 0, false, model.StateNew},
		{"single item", 1, 2025, false, model.StateNew},
		{"recent activity", 4, 2024, false, model.StateActive},
		{"quiet two years", 2, 2023, false, model.StateDormant},
		{"returned after gap", 5, 2022, true, model.StateResurfaced},
		{"large cluster active", 9, 2025, true, model.StateActive},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := computeState(c.count, c.lastSeen, c.resurfacing, testNowYear)
			if got != c.want {
				t.Errorf("computeState(%d, %d, %v) = %s, want %s", c.count, c.lastSeen, c.resurfacing, got, c.want)
			}
		})
	}
}

func TestTemporalPatterns(t *testing.T) {
	items := []model.Item{
		textItem("claim", 2024, "a"),
		textItem("claim", 2020, "b"),
		textItem("claim", 2020, "c"), // duplicate year collapses
		textItem("claim", 2022, "d"),
		{Modality: model.ModalityText, Claim: "claim without year", Source: "e"},
	}
	tp := computeTemporalPatterns(items)

	if !reflect.DeepEqual(tp.ActivityYears, []int{2020, 2022, 2024}) {
		t.Errorf("activity years = %v", tp.ActivityYears)
	}
	if !reflect.DeepEqual(tp.ResurfacingGaps, []int{2, 2}) {
		t.Errorf("gaps = %v", tp.ResurfacingGaps)
	}
	if !tp.Seasonal {
		t.Error("expected seasonal with year gaps present")
	}

	one := computeTemporalPatterns(items[:1])
	if one.Seasonal || len(one.ResurfacingGaps) != 0 {
		t.Errorf("single year should have no gaps: %+v", one)
	}
}

func TestMemoryStrengthTerms(t *testing.T) {
	// 4 items, lifespan 2, resurfacing, recent: 4 + 2 + 5 = 11
	if got := computeMemoryStrength(4, 2, testNowYear, true, testNowYear); got != 11 {
		t.Errorf("strength = %d, want 11", got)
	}
	// Decay kicks in after 3 silent years: 4 + 2 + 5 - 3 = 8
	if got := computeMemoryStrength(4, 2, testNowYear-3, true, testNowYear); got != 8 {
		t.Errorf("decayed strength = %d, want 8", got)
	}
}
