package common

import (
	"sort"
)

// Entity categories produced by the extractor.
const (
	CategoryPerson   = "PERSON"
	CategoryLocation = "LOCATION"
	CategoryDate     = "DATE"
	CategoryTime     = "TIME"
)

// Categories lists the entity categories in bucketing order.
var Categories = []string{CategoryPerson, CategoryLocation, CategoryDate, CategoryTime}

// EntityBucket maps an entity category to the raw strings matched for it,
// in document order. Duplicates are kept; use Set for the distinct view.
type EntityBucket map[string][]string

// NewEntityBucket returns a bucket with every category present and empty.
func NewEntityBucket() EntityBucket {
	b := make(EntityBucket, len(Categories))
	for _, c := range Categories {
		b[c] = []string{}
	}
	return b
}

// Add appends value to category.
func (b EntityBucket) Add(category, value string) {
	b[category] = append(b[category], value)
}

// Set returns the distinct values of category in lexicographic order.
func (b EntityBucket) Set(category string) []string {
	seen := make(map[string]struct{}, len(b[category]))
	out := make([]string, 0, len(b[category]))
	for _, v := range b[category] {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Sets returns the distinct view of every category.
func (b EntityBucket) Sets() map[string][]string {
	out := make(map[string][]string, len(Categories))
	for _, c := range Categories {
		out[c] = b.Set(c)
	}
	return out
}

// CharacterCount is a canonical character with the number of literal
// occurrences of its name in the source text.
type CharacterCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RelationPair is an undirected co-occurrence edge between two characters.
// Source always sorts before Target so (A,B) and (B,A) are the same edge.
type RelationPair struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// NewRelationPair orders a and b lexicographically.
func NewRelationPair(a, b string) RelationPair {
	if b < a {
		a, b = b, a
	}
	return RelationPair{Source: a, Target: b}
}

// Width is the line thickness used when rendering the edge.
func (p RelationPair) Width() float64 {
	return float64(p.Weight) / 2
}

// SentimentPoint is the score of one chunk of the token stream.
type SentimentPoint struct {
	Position int `json:"position"`
	Score    int `json:"score"`
}

// Stats holds the basic token statistics of a document.
type Stats struct {
	TokenCount       int     `json:"token_count"`
	ReadingMinutes   int     `json:"reading_minutes"`
	LexicalDiversity float64 `json:"lexical_diversity"`
}

// Relation graph states reported alongside the edges.
const (
	RelationStatusOK           = "ok"
	RelationStatusNoCharacters = "no_characters"
	RelationStatusFailed       = "failed"
)

// Result is the full structural summary of one document. Every view is
// produced independently; a failing view is reported in Errors under its
// name and leaves its field empty.
type Result struct {
	ID             string              `json:"id"`
	Stats          Stats               `json:"stats"`
	Entities       map[string][]string `json:"entities"`
	Characters     []string            `json:"characters"`
	Ranking        []CharacterCount    `json:"ranking"`
	Relations      []RelationPair      `json:"relations"`
	RelationStatus string              `json:"relation_status"`
	Arc            []SentimentPoint    `json:"sentiment_arc"`
	Truncated      bool                `json:"truncated"`
	Errors         map[string]string   `json:"errors,omitempty"`
}
