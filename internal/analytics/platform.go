package analytics

import (
	"sort"

	"github.com/satyalabs/trustmem/internal/model"
)

// PlatformRiskScores aggregates narrative exposure per platform. A narrative
// counts as high-risk on a platform when it has at least 3 items overall or
// spreads across at least 2 platforms. Results are sorted by risk score
// descending.
func PlatformRiskScores(narratives map[string][]model.Item) []model.PlatformRisk {
	type acc struct {
		narratives map[string]bool
		mentions   int
		highRisk   map[string]bool
	}
	perPlatform := make(map[string]*acc)

	for id, items := range narratives {
		highRisk := len(items) >= 3 || distinctSources(items) >= 2
		for _, it := range items {
			if it.Source == "" {
				continue
			}
			a := perPlatform[it.Source]
			if a == nil {
				a = &acc{narratives: make(map[string]bool), highRisk: make(map[string]bool)}
				perPlatform[it.Source] = a
			}
			a.narratives[id] = true
			a.mentions++
			if highRisk {
				a.highRisk[id] = true
			}
		}
	}

	risks := make([]model.PlatformRisk, 0, len(perPlatform))
	for platform, a := range perPlatform {
		capped := a.mentions
		if capped > 20 {
			capped = 20
		}
		score := len(a.narratives)*10 + len(a.highRisk)*25 + capped*2
		risks = append(risks, model.PlatformRisk{
			Platform:         platform,
			UniqueNarratives: len(a.narratives),
			TotalMentions:    a.mentions,
			HighRiskCount:    len(a.highRisk),
			RiskScore:        score,
			RiskLevel:        platformRiskLevel(score),
		})
	}

	sort.Slice(risks, func(i, j int) bool {
		if risks[i].RiskScore != risks[j].RiskScore {
			return risks[i].RiskScore > risks[j].RiskScore
		}
		return risks[i].Platform < risks[j].Platform
	})
	return risks
}

func platformRiskLevel(score int) string {
	switch {
	case score >= 100:
		return "CRITICAL"
	case score >= 60:
		return "HIGH"
	case score >= 30:
		return "MEDIUM"
	default:
		return "LOW"
	}
}
