package report

import "github.com/satyalabs/trustmem/internal/model"

// CalculateRisk bands the simple occurrence-times-spread product: a claim
// repeated often across many platforms is riskier than either signal alone.
func CalculateRisk(occurrences, platforms int) model.RiskAssessment {
	score := occurrences * platforms
	level := "LOW"
	switch {
	case score >= 8:
		level = "HIGH"
	case score >= 4:
		level = "MEDIUM"
	}
	return model.RiskAssessment{Score: score, Level: level}
}

// ResurgenceRisk estimates how likely a narrative is to keep coming back,
// from its repetition, platform spread, and the span of years it covers.
func ResurgenceRisk(occurrences, platforms, spanYears int) model.ResurgenceAssessment {
	score := occurrences * 10
	if score > 40 {
		score = 40
	}
	p := platforms * 10
	if p > 30 {
		p = 30
	}
	score += p

	switch {
	case spanYears >= 3:
		score += 30
	case spanYears == 2:
		score += 20
	case spanYears == 1:
		score += 10
	}
	if score > 100 {
		score = 100
	}

	risk := "Low"
	switch {
	case score > 70:
		risk = "High"
	case score > 40:
		risk = "Medium"
	}
	return model.ResurgenceAssessment{Score: score, Risk: risk}
}

// AssessResponsibility attaches the human-review guidance every report
// carries. Thin evidence means a human must review before any action;
// stronger evidence downgrades that to a recommendation.
func AssessResponsibility(evidenceCount int) model.Responsibility {
	strength := "Low"
	switch {
	case evidenceCount >= 6:
		strength = "High"
	case evidenceCount >= 3:
		strength = "Medium"
	}

	review := "Required"
	if evidenceCount >= 3 {
		review = "Recommended"
	}

	return model.Responsibility{
		EvidenceStrength: strength,
		HumanReview:      review,
		PrivacyNote:      "No personal data detected",
	}
}
