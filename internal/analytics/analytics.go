// Package analytics derives fleet-wide signals from the full narrative map:
// which narratives are accelerating, which platforms carry the most risk, and
// which (year, platform) pairs look like coordinated pushes. Every function is
// a single pass over the input with no state between calls.
package analytics

import (
	"github.com/satyalabs/trustmem/internal/model"
)

// Summary condenses the whole narrative ecosystem into one snapshot
func Summary(narratives map[string][]model.Item) model.ClusterSummary {
	summary := model.ClusterSummary{
		TotalNarratives:      len(narratives),
		ModalityDistribution: make(map[string]int),
		YearlyActivity:       make(map[int]int),
	}

	for _, items := range narratives {
		summary.TotalMemories += len(items)
		if len(items) > summary.LargestNarrative {
			summary.LargestNarrative = len(items)
		}
		for _, it := range items {
			summary.ModalityDistribution[string(it.Modality)]++
			if it.Year != 0 {
				summary.YearlyActivity[it.Year]++
			}
		}
	}

	if summary.TotalNarratives > 0 {
		summary.AvgNarrativeSize = float64(summary.TotalMemories) / float64(summary.TotalNarratives)
	}
	return summary
}

// distinctSources counts the platforms a narrative's items were seen on
func distinctSources(items []model.Item) int {
	seen := make(map[string]bool)
	for _, it := range items {
		if it.Source != "" {
			seen[it.Source] = true
		}
	}
	return len(seen)
}
