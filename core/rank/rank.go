// Package rank orders filter matches for display.
package rank

import (
	"slices"

	"github.com/MakerMama/afterschool-finder/core/model"
)

// Rank returns matches sorted nearest first when the home address resolved.
// Ties and matches without a distance keep catalog order, the latter after
// every measured match. Without a resolved home the input order is kept.
// The input slice is not modified.
func Rank(matches []model.Match, homeResolved bool) []model.Match {
	out := slices.Clone(matches)
	if !homeResolved {
		return out
	}
	slices.SortStableFunc(out, func(a, b model.Match) int {
		switch {
		case a.Distance == nil && b.Distance == nil:
			return 0
		case a.Distance == nil:
			return 1
		case b.Distance == nil:
			return -1
		case *a.Distance < *b.Distance:
			return -1
		case *a.Distance > *b.Distance:
			return 1
		}
		return 0
	})
	return out
}
