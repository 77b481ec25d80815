package rewriting

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-rewriter/internal/merge"
)

// Common strong action verbs for responsibility statements (heuristic check)
var strongVerbs = map[string]bool{
	"achieved": true, "architected": true, "built": true, "created": true,
	"delivered": true, "designed": true, "developed": true, "directed": true,
	"drove": true, "engineered": true, "implemented": true, "improved": true,
	"increased": true, "launched": true, "led": true, "leveraged": true,
	"managed": true, "optimized": true, "reduced": true, "scaled": true,
	"shipped": true, "spearheaded": true, "transformed": true,
}

// Phrases that only appear when the model echoes its instructions
var leakPhrases = []string{
	"job_description", "job description", "new_responsibility", "key_skills",
	"as an ai", "here is the", "here are the",
}

var digitPattern = regexp.MustCompile(`\d`)

// CheckResult holds quality signals about a rewritten responsibility. They are reported, never
// enforced.
type CheckResult struct {
	Segments            int
	SegmentCountMatches bool
	Quantified          bool
	StrongVerb          bool
	LeakedPhrases       []string
}

// Check inspects a rewritten responsibility against the requested segment count.
func Check(text string, requested int) CheckResult {
	segments := merge.SplitResponsibilities(text)
	return CheckResult{
		Segments:            len(segments),
		SegmentCountMatches: len(segments) == requested,
		Quantified:          checkQuantifiedImpact(text),
		StrongVerb:          checkStrongVerb(strings.ToLower(strings.TrimSpace(text))),
		LeakedPhrases:       findPhrases(text, leakPhrases),
	}
}

// checkStrongVerb checks if text starts with a strong action verb
func checkStrongVerb(textLower string) bool {
	words := strings.Fields(textLower)
	if len(words) == 0 {
		return false
	}

	first := strings.TrimRight(words[0], ".,!?;:")
	if strongVerbs[first] {
		return true
	}

	// past tense is usually an action verb
	return strings.HasSuffix(first, "ed") && len(first) > 3
}

func checkQuantifiedImpact(text string) bool {
	return digitPattern.MatchString(text) || strings.Contains(text, "%")
}

// findPhrases returns the phrases present in text, case-insensitively, each reported once.
func findPhrases(text string, phrases []string) []string {
	normalized := strings.ToLower(text)

	var found []string
	seen := make(map[string]bool)
	for _, phrase := range phrases {
		p := strings.ToLower(strings.TrimSpace(phrase))
		if p == "" || seen[p] {
			continue
		}
		if strings.Contains(normalized, p) {
			found = append(found, phrase)
			seen[p] = true
		}
	}
	return found
}
