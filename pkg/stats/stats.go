// Package stats derives basic reading statistics from a token stream.
package stats

import (
	"math"

	"github.com/OFFIS-RIT/plotline/pkg/common"
)

// WordsPerMinute is the reading speed used for ReadingMinutes.
const WordsPerMinute = 200

// Compute returns the token count, estimated reading minutes and lexical
// diversity (unique/total as a percentage, two decimals) of tokens. Halves
// round to even.
func Compute(tokens []string) common.Stats {
	n := len(tokens)
	if n == 0 {
		return common.Stats{}
	}

	unique := make(map[string]struct{}, n)
	for _, t := range tokens {
		unique[t] = struct{}{}
	}

	return common.Stats{
		TokenCount:       n,
		ReadingMinutes:   int(math.RoundToEven(float64(n) / WordsPerMinute)),
		LexicalDiversity: round2(float64(len(unique)) / float64(n) * 100),
	}
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
