// Package tier implements the estrato rubric: the two threshold cascades and
// the best-of combination rule. Conference tiers come from the H5 index;
// journal tiers come from citation percentiles in 12.5% bands.
package tier

import "fmt"

// Tier is one of the eight ordered quality labels, A1 strongest, plus an
// Unclassified sentinel that sorts strictly below A8. Absence of a tier is
// expressed outside the type (see Combine), never as a sentinel value.
type Tier int

const (
	A1 Tier = iota + 1
	A2
	A3
	A4
	A5
	A6
	A7
	A8
	Unclassified
)

func (t Tier) String() string {
	if t >= A1 && t <= A8 {
		return fmt.Sprintf("A%d", int(t))
	}
	return "N/C"
}

// Valid reports whether t is one of the eight labels or Unclassified.
func (t Tier) Valid() bool {
	return t >= A1 && t <= Unclassified
}

// Better reports whether a is strictly stronger than b. A1 beats A2,
// everything beats Unclassified.
func Better(a, b Tier) bool {
	return a < b
}

// FromH5 maps a conference H5 index onto the cascade. The cascade is
// evaluated top-down; first matching threshold wins.
func FromH5(h int) Tier {
	switch {
	case h >= 35:
		return A1
	case h >= 25:
		return A2
	case h >= 20:
		return A3
	case h >= 15:
		return A4
	case h >= 12:
		return A5
	case h >= 9:
		return A6
	case h >= 6:
		return A7
	case h > 0:
		return A8
	default:
		return Unclassified
	}
}

// FromPercentile maps a citation percentile (0-100) onto the journal
// cascade. Bands are 12.5 points wide; anything below 12.5 is still A8.
func FromPercentile(p float64) Tier {
	switch {
	case p >= 87.5:
		return A1
	case p >= 75.0:
		return A2
	case p >= 62.5:
		return A3
	case p >= 50.0:
		return A4
	case p >= 37.5:
		return A5
	case p >= 25.0:
		return A6
	case p >= 12.5:
		return A7
	default:
		return A8
	}
}

// Combine returns the best tier among the inputs. Unclassified and invalid
// inputs are excluded from the comparison rather than treated as worst-case.
// The second return is false when no input contributes, which callers must
// keep distinguishable from a genuine A8.
func Combine(tiers ...Tier) (Tier, bool) {
	var best Tier
	found := false
	for _, t := range tiers {
		if t < A1 || t > A8 {
			continue
		}
		if !found || Better(t, best) {
			best = t
			found = true
		}
	}
	return best, found
}

// Label renders an optional tier for output: "N/A" when absent, otherwise
// the tier's own label ("A1".."A8" or "N/C").
func Label(t *Tier) string {
	if t == nil {
		return "N/A"
	}
	return t.String()
}
