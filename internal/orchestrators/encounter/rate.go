package encounter

import (
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
)

// EstimateRate is the displayed capture percentage: round(base + bonus) clamped to [0, 100].
// A missing or NaN base counts as 0, as does a missing tool or NaN bonus.
func EstimateRate(base *float64, tool *Tool) int {
	sum := 0.0
	if base != nil && !math.IsNaN(*base) {
		sum += *base
	}
	if tool != nil && !math.IsNaN(tool.Bonus) {
		sum += tool.Bonus
	}

	rounded := math.Round(sum)
	switch {
	case rounded < 0:
		return 0
	case rounded > 100:
		return 100
	default:
		return int(rounded)
	}
}

// SelectDefaultTool picks the first tool the player owns, else the first tool, else "".
func SelectDefaultTool(tools []*Tool) string {
	for _, t := range tools {
		if t.Quantity > 0 {
			return t.ID
		}
	}
	if len(tools) > 0 {
		return tools[0].ID
	}
	return ""
}

// MatchTool finds a tool by id, by case-insensitive name, or by the closest name
// within a small edit distance. Ties keep list order.
func MatchTool(tools []*Tool, query string) (*Tool, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, false
	}

	for _, t := range tools {
		if t.ID == query {
			return t, true
		}
	}
	for _, t := range tools {
		if strings.ToLower(t.Name) == q {
			return t, true
		}
	}

	var best *Tool
	bestDist := 0
	for _, t := range tools {
		name := strings.ToLower(t.Name)
		dist := levenshtein.ComputeDistance(q, name)
		if dist > distanceLimit(len(name)) {
			continue
		}
		if best == nil || dist < bestDist {
			best, bestDist = t, dist
		}
	}
	return best, best != nil
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
