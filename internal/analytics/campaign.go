package analytics

import (
	"sort"

	"github.com/satyalabs/trustmem/internal/model"
)

// DetectCampaigns looks for coordinated pushes: 3 or more distinct narratives
// appearing on the same platform in the same year. One narrative can feed
// several campaign cells when its items spread across years or platforms.
// Results are sorted by coordination score descending.
func DetectCampaigns(narratives map[string][]model.Item) []model.Campaign {
	type cell struct {
		year     int
		platform string
	}
	groups := make(map[cell]map[string]bool)

	for id, items := range narratives {
		for _, it := range items {
			if it.Year == 0 || it.Source == "" {
				continue
			}
			c := cell{year: it.Year, platform: it.Source}
			if groups[c] == nil {
				groups[c] = make(map[string]bool)
			}
			groups[c][id] = true
		}
	}

	var campaigns []model.Campaign
	for c, ids := range groups {
		if len(ids) < 3 {
			continue
		}
		sorted := make([]string, 0, len(ids))
		for id := range ids {
			sorted = append(sorted, id)
		}
		sort.Strings(sorted)
		campaigns = append(campaigns, model.Campaign{
			Year:              c.year,
			Platform:          c.platform,
			NarrativeCount:    len(ids),
			NarrativeIDs:      sorted,
			CoordinationScore: len(ids) * 10,
		})
	}

	sort.Slice(campaigns, func(i, j int) bool {
		if campaigns[i].CoordinationScore != campaigns[j].CoordinationScore {
			return campaigns[i].CoordinationScore > campaigns[j].CoordinationScore
		}
		if campaigns[i].Year != campaigns[j].Year {
			return campaigns[i].Year < campaigns[j].Year
		}
		return campaigns[i].Platform < campaigns[j].Platform
	})
	return campaigns
}
