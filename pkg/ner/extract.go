// Package ner extracts named entities from Thai text.
//
// The Extractor runs a tagging Model over the text and buckets the tagged
// spans into PERSON, LOCATION, DATE and TIME. Models are expensive to load,
// so they are held by a ModelCache that the host process creates once and
// passes to every Extractor.
package ner

import (
	"context"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/plotline/pkg/common"
	"github.com/OFFIS-RIT/plotline/pkg/logger"
)

// DefaultMaxChars is the truncation threshold applied before tagging.
const DefaultMaxChars = 100_000

// Extractor turns tagging model output into entity buckets.
type Extractor struct {
	models   *ModelCache
	maxChars int
}

// NewExtractorParams configures an Extractor.
//
// MaxChars bounds the number of characters handed to the model. Zero
// selects DefaultMaxChars, a negative value disables truncation.
type NewExtractorParams struct {
	Models   *ModelCache
	MaxChars int
}

// NewExtractor creates an Extractor backed by the given model cache.
func NewExtractor(params NewExtractorParams) *Extractor {
	maxChars := params.MaxChars
	if maxChars == 0 {
		maxChars = DefaultMaxChars
	}
	return &Extractor{
		models:   params.Models,
		maxChars: maxChars,
	}
}

// Truncate cuts text to at most max characters. It reports whether
// anything was removed. A non-positive max disables truncation.
func Truncate(text string, max int) (string, bool) {
	if max <= 0 || len(text) <= max {
		return text, false
	}
	n := 0
	for i := range text {
		if n == max {
			return text[:i], true
		}
		n++
	}
	return text, false
}

// Extract tags text and returns the matched strings per category. Empty
// text yields an empty bucket without touching the model.
func (e *Extractor) Extract(ctx context.Context, text string) (common.EntityBucket, error) {
	bucket, _, err := e.ExtractTruncated(ctx, text)
	return bucket, err
}

// ExtractTruncated is Extract that also reports whether the input was cut
// to the configured limit.
func (e *Extractor) ExtractTruncated(ctx context.Context, text string) (common.EntityBucket, bool, error) {
	bucket := common.NewEntityBucket()
	if strings.TrimSpace(text) == "" {
		return bucket, false, nil
	}

	text, truncated := Truncate(text, e.maxChars)
	if truncated {
		logger.Debug("[NER] Truncated input before tagging", "max_chars", e.maxChars)
	}

	if e.models == nil {
		return bucket, truncated, ErrModelUnavailable
	}
	model, err := e.models.Get(ctx)
	if err != nil {
		return bucket, truncated, fmt.Errorf("failed to load tagging model: %w", err)
	}

	spans, err := model.Tag(ctx, text)
	if err != nil {
		return bucket, truncated, fmt.Errorf("failed to tag text: %w", err)
	}

	skipped := 0
	for _, span := range spans {
		if !span.Valid() {
			skipped++
			continue
		}
		addSpan(bucket, span)
	}
	if skipped > 0 {
		logger.Debug("[NER] Skipped unrecognized spans", "count", skipped)
	}

	return bucket, truncated, nil
}

func addSpan(bucket common.EntityBucket, span TaggedSpan) {
	surface := strings.TrimSpace(span.Text)
	if surface == "" {
		return
	}

	for _, category := range common.Categories {
		if !strings.Contains(span.Tag, category) {
			continue
		}
		if category == common.CategoryPerson && !IsPersonCandidate(surface) {
			return
		}
		bucket.Add(category, surface)
		return
	}
}
