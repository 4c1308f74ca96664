package match

import (
	"math"

	"github.com/KaramelBytes/custlens-cli/internal/utils"
)

// IndelDistance returns the minimum number of single-rune insertions and
// deletions needed to turn a into b. A substitution counts as two edits.
//
// Time complexity: O(len(a) * len(b))
// Space complexity: O(min(len(a), len(b))).
func IndelDistance(a, b []rune) int {
	return len(a) + len(b) - 2*lcsLength(a, b)
}

// lcsLength computes the length of the longest common subsequence.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	// Ensure a is the shorter slice so the rows stay small
	if len(a) > len(b) {
		a, b = b, a
	}
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for j := 1; j <= len(b); j++ {
		curr[0] = 0
		for i := 1; i <= len(a); i++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[i] = prev[i-1] + 1
			case prev[i] >= curr[i-1]:
				curr[i] = prev[i]
			default:
				curr[i] = curr[i-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

// RatioRunes is 2*M/T where M is the number of matching runes and T the
// combined length. Two empty inputs are identical and score 1.
func RatioRunes(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	return float64(total-IndelDistance(a, b)) / float64(total)
}

// Ratio scores the similarity of a and b from 0 to 100, ignoring case.
// Halves round to the nearest even score.
func Ratio(a, b string) int {
	ra := []rune(utils.Fold(a))
	rb := []rune(utils.Fold(b))
	return int(math.RoundToEven(100 * RatioRunes(ra, rb)))
}
