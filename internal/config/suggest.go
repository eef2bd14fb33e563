package config

import (
	"fmt"

	"github.com/agnivade/levenshtein"

	"github.com/talgya/barterlands/internal/resource"
	"github.com/talgya/barterlands/internal/supply"
)

// suggestResource returns a " (did you mean ...?)" hint for a misspelled
// resource name, or the empty string when nothing is close enough.
func suggestResource(got string) string {
	return suggest(got, resource.Names())
}

// suggestClass does the same for endowment class names.
func suggestClass(got string) string {
	names := make([]string, len(supply.Classes))
	for i, c := range supply.Classes {
		names[i] = string(c)
	}
	return suggest(got, names)
}

func suggest(got string, candidates []string) string {
	best := ""
	bestDist := -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(got, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if bestDist == -1 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
