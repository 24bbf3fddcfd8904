// Package analysis runs the full narrative pipeline over one document.
//
// The token branch (tokenize, stats, sentiment arc) and the entity branch
// (extract, resolve, rank, relation graph) run concurrently. A failure in
// one view is recorded in Result.Errors and never hides the other views.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/plotline/internal/util"
	"github.com/OFFIS-RIT/plotline/pkg/common"
	"github.com/OFFIS-RIT/plotline/pkg/graph"
	"github.com/OFFIS-RIT/plotline/pkg/logger"
	"github.com/OFFIS-RIT/plotline/pkg/ner"
	"github.com/OFFIS-RIT/plotline/pkg/sentiment"
	"github.com/OFFIS-RIT/plotline/pkg/stats"
	"github.com/OFFIS-RIT/plotline/pkg/tokenize"

	"golang.org/x/sync/errgroup"
)

// View names used as keys of Result.Errors.
const (
	ViewEntities  = "entities"
	ViewRelations = "relations"
)

// Analyzer holds the shared, read-only pipeline components. It is safe for
// concurrent use.
type Analyzer struct {
	tokenizer *tokenize.Tokenizer
	extractor *ner.Extractor
	builder   *graph.Builder
	chunkSize int
	parts     int
}

// NewAnalyzerParams configures an Analyzer.
//
// Parts, when positive, splits the sentiment arc into a fixed number of
// chunks and takes precedence over ChunkSize. ChunkSize zero selects
// sentiment.DefaultChunkSize. TopN is passed to the graph builder.
type NewAnalyzerParams struct {
	Tokenizer *tokenize.Tokenizer
	Extractor *ner.Extractor
	TopN      int
	ChunkSize int
	Parts     int
}

// NewAnalyzer creates an Analyzer. A nil Tokenizer selects the default
// dictionary; a nil Extractor makes every entity view fail with
// ner.ErrModelUnavailable.
func NewAnalyzer(params NewAnalyzerParams) *Analyzer {
	tok := params.Tokenizer
	if tok == nil {
		tok = tokenize.New(nil)
	}
	ext := params.Extractor
	if ext == nil {
		ext = ner.NewExtractor(ner.NewExtractorParams{})
	}
	chunkSize := params.ChunkSize
	if chunkSize == 0 {
		chunkSize = sentiment.DefaultChunkSize
	}

	return &Analyzer{
		tokenizer: tok,
		extractor: ext,
		builder:   graph.NewBuilder(graph.NewBuilderParams{TopN: params.TopN}),
		chunkSize: chunkSize,
		parts:     params.Parts,
	}
}

// Analyze produces every view of text. names are user supplied character
// names merged into the auto-detected cast. The returned error is only
// non-nil when ctx is cancelled or no ID could be generated; view
// failures are reported in Result.Errors.
func (a *Analyzer) Analyze(ctx context.Context, text string, names []string) (*common.Result, error) {
	id, err := util.NewID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis id: %w", err)
	}
	start := time.Now()

	result := &common.Result{
		ID:             id,
		Entities:       common.NewEntityBucket().Sets(),
		Characters:     []string{},
		Ranking:        []common.CharacterCount{},
		Relations:      []common.RelationPair{},
		RelationStatus: common.RelationStatusOK,
		Arc:            []common.SentimentPoint{},
	}
	errs := make(map[string]string)

	var (
		tokens     []string
		bucket     common.EntityBucket
		truncated  bool
		extractErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tokens = a.tokenizer.Words(text)
		return gctx.Err()
	})
	g.Go(func() error {
		bucket, truncated, extractErr = a.extractor.ExtractTruncated(gctx, text)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Stats = stats.Compute(tokens)
	if a.parts > 0 {
		result.Arc = sentiment.ScoreParts(tokens, a.parts)
	} else {
		result.Arc = sentiment.Score(tokens, a.chunkSize)
	}

	auto := []string{}
	if extractErr != nil {
		logger.Error("[Analysis] Entity extraction failed", "id", id, "err", extractErr)
		errs[ViewEntities] = extractErr.Error()
	} else {
		result.Entities = bucket.Sets()
		result.Truncated = truncated
		auto = bucket[common.CategoryPerson]
	}

	result.Characters = graph.ResolveCharacters(auto, names)
	result.Ranking = graph.RankCharacters(text, result.Characters)

	switch {
	case len(result.Characters) == 0 && extractErr != nil:
		result.RelationStatus = common.RelationStatusFailed
		errs[ViewRelations] = "no characters available: entity extraction failed"
	case len(result.Characters) == 0:
		result.RelationStatus = common.RelationStatusNoCharacters
	default:
		result.Relations = a.builder.Build(text, result.Characters)
	}

	if len(errs) > 0 {
		result.Errors = errs
	}

	logger.Debug("[Analysis] Completed",
		"id", id,
		"tokens", result.Stats.TokenCount,
		"characters", len(result.Characters),
		"relations", len(result.Relations),
		"duration", time.Since(start),
	)
	return result, nil
}
