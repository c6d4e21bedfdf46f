package constants

import (
	"regexp"
	"strings"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var allPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// AsStringSlice returns the canonical priority labels in ascending order.
func AsStringSlice() []string {
	result := make([]string, len(allPriorities))
	for i, p := range allPriorities {
		result[i] = string(p)
	}
	return result
}

var prioritySynonyms = map[string]Priority{
	"urgent":    PriorityHigh,
	"asap":      PriorityHigh,
	"critical":  PriorityHigh,
	"important": PriorityHigh,
	"normal":    PriorityMedium,
	"med":       PriorityMedium,
	"moderate":  PriorityMedium,
	"minor":     PriorityLow,
	"lowest":    PriorityLow,
}

// CanonicalPriority maps a model-supplied label to a canonical priority.
// Matching is case-insensitive; ok is false for empty or unknown labels.
func CanonicalPriority(input string) (Priority, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return PriorityMedium, false
	}
	for _, p := range allPriorities {
		if normalized == string(p) {
			return p, true
		}
	}
	if p, ok := prioritySynonyms[normalized]; ok {
		return p, true
	}
	return PriorityMedium, false
}

var (
	reHighCue = regexp.MustCompile(`(?i)\b(urgent|urgently|asap|immediately|right away|critical|emergency|as soon as possible)\b`)
	reLowCue  = regexp.MustCompile(`(?i)\b(whenever|someday|eventually|no rush|low priority|if possible)\b`)
)

// InferPriority guesses a priority from lexical cues in free text.
// Text without cues is medium.
func InferPriority(text string) Priority {
	switch {
	case reHighCue.MatchString(text):
		return PriorityHigh
	case reLowCue.MatchString(text):
		return PriorityLow
	default:
		return PriorityMedium
	}
}
