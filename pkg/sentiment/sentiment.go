// Package sentiment scores a token stream against a fixed Thai polarity
// lexicon, chunk by chunk, producing a coarse arc over the document.
package sentiment

import (
	"github.com/OFFIS-RIT/plotline/pkg/common"
)

// DefaultChunkSize is the number of tokens per arc point.
const DefaultChunkSize = 100

// Score partitions tokens into consecutive chunks of chunkSize tokens and
// scores each one as positives minus negatives. The last chunk may be
// shorter. A non-positive chunkSize yields an empty arc.
func Score(tokens []string, chunkSize int) []common.SentimentPoint {
	if chunkSize <= 0 || len(tokens) == 0 {
		return []common.SentimentPoint{}
	}

	arc := make([]common.SentimentPoint, 0, (len(tokens)+chunkSize-1)/chunkSize)
	for start := 0; start < len(tokens); start += chunkSize {
		end := min(start+chunkSize, len(tokens))
		arc = append(arc, common.SentimentPoint{
			Position: len(arc),
			Score:    scoreChunk(tokens[start:end]),
		})
	}
	return arc
}

// ScoreParts splits tokens into at most parts chunks of equal size
// (rounded up) and scores them like Score.
func ScoreParts(tokens []string, parts int) []common.SentimentPoint {
	if parts <= 0 || len(tokens) == 0 {
		return []common.SentimentPoint{}
	}
	chunkSize := (len(tokens) + parts - 1) / parts
	return Score(tokens, chunkSize)
}

func scoreChunk(chunk []string) int {
	score := 0
	for _, tok := range chunk {
		score += Polarity(tok)
	}
	return score
}
