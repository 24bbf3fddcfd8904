package graph

import (
	"github.com/OFFIS-RIT/plotline/pkg/common"
	"github.com/OFFIS-RIT/plotline/pkg/logger"
)

// DefaultTopN is the cast size used when building the relation graph.
const DefaultTopN = 15

// Builder builds character co-occurrence graphs. It restricts the cast to
// the most frequent characters before scanning to keep large graphs
// readable.
//
// A Builder should be created using NewBuilder.
type Builder struct {
	topN int
}

// NewBuilderParams defines the configuration for a Builder.
//
// TopN limits the cast to the N most frequent characters. Zero selects
// DefaultTopN, a negative value keeps every character.
type NewBuilderParams struct {
	TopN int
}

// NewBuilder creates a Builder.
//
// Example:
//
//	b := graph.NewBuilder(graph.NewBuilderParams{TopN: 10})
//	pairs := b.Build(text, characters)
//	for _, p := range pairs {
//		fmt.Println(p.Source, p.Target, p.Weight)
//	}
func NewBuilder(params NewBuilderParams) *Builder {
	topN := params.TopN
	if topN == 0 {
		topN = DefaultTopN
	}
	return &Builder{topN: topN}
}

// TopN returns the cast limit, or a negative value when unlimited.
func (b *Builder) TopN() int {
	return b.topN
}

// Build restricts characters to the configured cast and returns the
// weighted co-occurrence pairs of text.
func (b *Builder) Build(text string, characters []string) []common.RelationPair {
	if len(characters) == 0 {
		return []common.RelationPair{}
	}

	cast := characters
	if b.topN > 0 && len(characters) > b.topN {
		cast = TopCharacters(text, characters, b.topN)
		logger.Debug("[Graph] Restricted cast", "characters", len(characters), "top_n", b.topN)
	}

	pairs := BuildCooccurrence(text, cast)
	logger.Debug("[Graph] Built relation graph", "characters", len(cast), "pairs", len(pairs))
	return pairs
}
