package analytics

import (
	"fmt"
	"testing"

	"github.com/satyalabs/trustmem/internal/model"
)

const testNowYear = 2025

func item(year int, source string) model.Item {
	return model.Item{
		Modality: model.ModalityText,
		Claim:    "test claim",
		Year:     year,
		Source:   source,
	}
}

func TestDetectViralThresholdEdge(t *testing.T) {
	// recent=2, total=4: velocity 0.5 but fails recent >= 3
	slow := map[string][]model.Item{
		"NAR_slow0000": {
			item(2020, "twitter"), item(2021, "twitter"),
			item(2025, "twitter"), item(2025, "facebook"),
		},
	}
	if got := DetectViral(slow, 1, testNowYear); len(got) != 0 {
		t.Errorf("recent=2 flagged viral: %+v", got)
	}

	// recent=3, total=6: velocity 0.5 and recent >= 3
	fast := map[string][]model.Item{
		"NAR_fast0000": {
			item(2019, "twitter"), item(2020, "twitter"), item(2021, "twitter"),
			item(2024, "twitter"), item(2025, "facebook"), item(2025, "telegram"),
		},
	}
	got := DetectViral(fast, 1, testNowYear)
	if len(got) != 1 {
		t.Fatalf("recent=3 not flagged viral: %+v", got)
	}
	v := got[0]
	if v.RecentMentions != 3 || v.TotalMentions != 6 {
		t.Errorf("mentions = %d/%d, want 3/6", v.RecentMentions, v.TotalMentions)
	}
	if v.Velocity != 0.5 {
		t.Errorf("velocity = %v, want 0.5", v.Velocity)
	}
	// 0.5*40 + 3 platforms*15 + 3*5 = 80
	if v.RiskScore != 80 {
		t.Errorf("risk score = %v, want 80", v.RiskScore)
	}
}

func TestDetectViralSortsByRisk(t *testing.T) {
	narratives := map[string][]model.Item{
		"NAR_aa000000": {
			item(2025, "twitter"), item(2025, "twitter"), item(2025, "twitter"),
		},
		"NAR_bb000000": {
			item(2025, "twitter"), item(2025, "facebook"), item(2025, "telegram"),
			item(2025, "tiktok"), item(2025, "whatsapp"),
		},
	}
	got := DetectViral(narratives, 1, testNowYear)
	if len(got) != 2 {
		t.Fatalf("got %d viral narratives, want 2", len(got))
	}
	if got[0].NarrativeID != "NAR_bb000000" {
		t.Errorf("top narrative = %s, want the multi-platform one", got[0].NarrativeID)
	}
	if got[0].RiskScore <= got[1].RiskScore {
		t.Error("results not sorted by risk descending")
	}
}

func TestPlatformRiskBandsAndOrder(t *testing.T) {
	narratives := map[string][]model.Item{
		// High-risk on both counts: 3 items, 2 platforms
		"NAR_hot00000": {item(2024, "twitter"), item(2025, "twitter"), item(2025, "telegram")},
		// Low-risk: single item
		"NAR_cold0000": {item(2025, "mastodon")},
	}
	risks := PlatformRiskScores(narratives)
	if len(risks) != 3 {
		t.Fatalf("got %d platforms, want 3", len(risks))
	}

	byPlatform := make(map[string]model.PlatformRisk)
	for _, r := range risks {
		byPlatform[r.Platform] = r
	}

	tw := byPlatform["twitter"]
	// 1 narrative*10 + 1 high-risk*25 + 2 mentions*2 = 39
	if tw.RiskScore != 39 || tw.RiskLevel != "MEDIUM" {
		t.Errorf("twitter = %+v, want score 39 MEDIUM", tw)
	}

	ma := byPlatform["mastodon"]
	// 1*10 + 0*25 + 1*2 = 12
	if ma.RiskScore != 12 || ma.RiskLevel != "LOW" {
		t.Errorf("mastodon = %+v, want score 12 LOW", ma)
	}

	for i := 1; i < len(risks); i++ {
		if risks[i-1].RiskScore < risks[i].RiskScore {
			t.Error("platforms not sorted by risk descending")
		}
	}
}

func TestDetectCampaignsThreshold(t *testing.T) {
	two := map[string][]model.Item{
		"NAR_aa000000": {item(2024, "twitter")},
		"NAR_bb000000": {item(2024, "twitter")},
	}
	if got := DetectCampaigns(two); len(got) != 0 {
		t.Errorf("2 narratives flagged as campaign: %+v", got)
	}

	three := map[string][]model.Item{
		"NAR_aa000000": {item(2024, "twitter")},
		"NAR_bb000000": {item(2024, "twitter")},
		"NAR_cc000000": {item(2024, "twitter"), item(2023, "facebook")},
	}
	got := DetectCampaigns(three)
	if len(got) != 1 {
		t.Fatalf("got %d campaigns, want 1", len(got))
	}
	c := got[0]
	if c.Year != 2024 || c.Platform != "twitter" {
		t.Errorf("campaign cell = (%d, %s), want (2024, twitter)", c.Year, c.Platform)
	}
	if c.NarrativeCount != 3 || c.CoordinationScore != 30 {
		t.Errorf("count/score = %d/%d, want 3/30", c.NarrativeCount, c.CoordinationScore)
	}
	if len(c.NarrativeIDs) != 3 {
		t.Errorf("narrative ids = %v, want all 3", c.NarrativeIDs)
	}
}

func TestDetectCampaignsSortsByScore(t *testing.T) {
	narratives := make(map[string][]model.Item)
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("NAR_big%05d", i)
		narratives[id] = []model.Item{item(2023, "telegram")}
	}
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("NAR_sml%05d", i)
		narratives[id] = []model.Item{item(2024, "twitter")}
	}

	got := DetectCampaigns(narratives)
	if len(got) != 2 {
		t.Fatalf("got %d campaigns, want 2", len(got))
	}
	if got[0].Platform != "telegram" || got[0].CoordinationScore != 50 {
		t.Errorf("top campaign = %+v, want telegram at 50", got[0])
	}
}

func TestSummary(t *testing.T) {
	narratives := map[string][]model.Item{
		"NAR_aa000000": {
			item(2024, "twitter"),
			item(2025, "facebook"),
			{Modality: model.ModalityImage, ContentRef: "x.jpg", Year: 2025, Source: "telegram"},
		},
		"NAR_bb000000": {item(2025, "twitter")},
	}
	s := Summary(narratives)

	if s.TotalNarratives != 2 || s.TotalMemories != 4 {
		t.Errorf("totals = %d/%d, want 2/4", s.TotalNarratives, s.TotalMemories)
	}
	if s.LargestNarrative != 3 {
		t.Errorf("largest = %d, want 3", s.LargestNarrative)
	}
	if s.AvgNarrativeSize != 2.0 {
		t.Errorf("avg = %v, want 2.0", s.AvgNarrativeSize)
	}
	if s.ModalityDistribution["text"] != 3 || s.ModalityDistribution["image"] != 1 {
		t.Errorf("modality distribution = %v", s.ModalityDistribution)
	}
	if s.YearlyActivity[2025] != 3 {
		t.Errorf("yearly activity = %v", s.YearlyActivity)
	}
}

func TestSummaryEmpty(t *testing.T) {
	s := Summary(map[string][]model.Item{})
	if s.TotalNarratives != 0 || s.TotalMemories != 0 || s.AvgNarrativeSize != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}
