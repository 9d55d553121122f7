package engine

import (
	"math"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// DefaultSimilarityThreshold is the decision boundary used by the
// grouper and the known-merchant lookup. A candidate must score
// strictly above it to count as a match.
const DefaultSimilarityThreshold = 80

// Similarity scores two normalized merchant keys on a 0..100 scale
// using an edit-distance ratio (insertions and deletions cost 1,
// substitutions 2, matching Python's difflib-style ratio). Symmetric,
// and identical keys — including two empty keys — score 100.
func Similarity(a, b string) int {
	if a == b {
		return 100
	}
	ratio := levenshtein.RatioForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	return int(math.Round(ratio * 100))
}
