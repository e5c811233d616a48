package interpreter

import "strings"

// boostKeywords each add 0.1 to the confidence of a match when present
// anywhere in the lowercased input. The boost is additive across keywords and
// only capped by the final clamp, so keyword-dense inputs saturate at 1.0
// quickly. That is the observed, accepted behavior.
var boostKeywords = []string{"organize", "monitor", "scrape", "email", "schedule", "analytics"}

const (
	baseConfidence = 0.7
	keywordBoost   = 0.1
	sentenceBoost  = 0.1

	// minConfidence admits a match as a candidate; execThreshold gates
	// actual execution. The gap lets Process reflect an unsure guess back
	// to the user without running anything.
	minConfidence = 0.3
	execThreshold = 0.5
)

// scoreMatch computes the confidence for a successful pattern match. It is a
// pure function of the input text: same input, same score.
func scoreMatch(input string) float64 {
	score := baseConfidence
	for _, kw := range boostKeywords {
		if strings.Contains(input, kw) {
			score += keywordBoost
		}
	}
	if len(strings.Fields(input)) > 3 {
		score += sentenceBoost
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
