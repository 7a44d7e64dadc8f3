package narrative

import (
	"sort"

	"github.com/satyalabs/trustmem/internal/model"
)

// computeTemporalPatterns extracts the distinct activity years, the gaps
// between consecutive ones, and whether the narrative shows a recurring
// pattern (any gap of a year or more, given at least two distinct years).
func computeTemporalPatterns(items []model.Item) model.TemporalPatterns {
	yearSet := make(map[int]bool)
	for _, it := range items {
		if it.Year != 0 {
			yearSet[it.Year] = true
		}
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	if len(years) < 2 {
		return model.TemporalPatterns{
			ActivityYears:   years,
			ResurfacingGaps: []int{},
			Seasonal:        false,
		}
	}

	gaps := make([]int, 0, len(years)-1)
	seasonal := false
	for i := 1; i < len(years); i++ {
		gap := years[i] - years[i-1]
		gaps = append(gaps, gap)
		if gap >= 1 {
			seasonal = true
		}
	}

	return model.TemporalPatterns{
		ActivityYears:   years,
		ResurfacingGaps: gaps,
		Seasonal:        seasonal,
	}
}
