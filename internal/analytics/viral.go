package analytics

import (
	"sort"

	"github.com/satyalabs/trustmem/internal/model"
)

// DetectViral flags narratives whose activity concentrates in the recent
// window: at least 3 recent mentions and more than 30% of all mentions inside
// the window. Velocity is the recent share of total mentions; the risk score
// weighs velocity, platform spread, and recent volume. Results come back
// sorted by risk score descending.
func DetectViral(narratives map[string][]model.Item, windowYears, nowYear int) []model.ViralNarrative {
	if windowYears <= 0 {
		windowYears = 1
	}
	cutoff := nowYear - windowYears

	var viral []model.ViralNarrative
	for id, items := range narratives {
		total := len(items)
		if total == 0 {
			continue
		}

		recent := 0
		for _, it := range items {
			if it.Year >= cutoff {
				recent++
			}
		}

		velocity := float64(recent) / float64(total)
		if recent < 3 || velocity <= 0.3 {
			continue
		}

		platforms := distinctSources(items)
		capped := recent
		if capped > 10 {
			capped = 10
		}
		viral = append(viral, model.ViralNarrative{
			NarrativeID:    id,
			RecentMentions: recent,
			TotalMentions:  total,
			Velocity:       velocity,
			Platforms:      platforms,
			RiskScore:      velocity*40 + float64(platforms)*15 + float64(capped)*5,
		})
	}

	sort.Slice(viral, func(i, j int) bool {
		if viral[i].RiskScore != viral[j].RiskScore {
			return viral[i].RiskScore > viral[j].RiskScore
		}
		return viral[i].NarrativeID < viral[j].NarrativeID
	})
	return viral
}
