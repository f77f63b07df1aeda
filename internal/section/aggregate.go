package section

import (
	"slices"
	"strings"
)

// Aggregate concatenates per-document section lists and orders the result most recent first.
func Aggregate(documents ...[]Section) []Section {
	var total int
	for _, doc := range documents {
		total += len(doc)
	}

	merged := make([]Section, 0, total)
	for _, doc := range documents {
		merged = append(merged, doc...)
	}
	SortByRecency(merged)
	return merged
}

// SortByRecency sorts sections in place, descending by their latest timestamp. Ties keep their
// input order.
func SortByRecency(sections []Section) {
	slices.SortStableFunc(sections, func(a, b Section) int {
		return strings.Compare(b.Latest(), a.Latest())
	})
}
