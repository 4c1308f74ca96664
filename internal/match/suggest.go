package match

import (
	"math"
	"sort"

	"github.com/KaramelBytes/custlens-cli/internal/utils"
)

// Candidate is a suggested company name with its similarity score.
type Candidate struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Options controls filtering and truncation of suggestions.
type Options struct {
	// Threshold is the minimum score kept, 0-100.
	Threshold int
	// Limit caps the number of suggestions; values <= 0 return none.
	Limit int
}

// DefaultOptions returns threshold 80 and limit 3.
func DefaultOptions() Options {
	return Options{Threshold: 80, Limit: 3}
}

// Suggest scores every candidate against query, keeps those at or above the
// threshold and returns the best ones, highest score first. Candidates with
// equal scores keep their input order.
func Suggest(query string, candidates []string, opt Options) []Candidate {
	if len(candidates) == 0 || opt.Limit <= 0 {
		return nil
	}
	q := []rune(utils.Fold(query))
	var out []Candidate
	for _, c := range candidates {
		score := int(math.RoundToEven(100 * RatioRunes(q, []rune(utils.Fold(c)))))
		if score >= opt.Threshold {
			out = append(out, Candidate{Name: c, Score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > opt.Limit {
		out = out[:opt.Limit]
	}
	return out
}
