package ner

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/OFFIS-RIT/plotline/pkg/logger"
	"github.com/OFFIS-RIT/plotline/pkg/tokenize"

	"gopkg.in/yaml.v3"
)

//go:embed models/gazetteer.yaml
var defaultGazetteer []byte

// GazetteerSpec is the on-disk layout of a gazetteer model.
type GazetteerSpec struct {
	Persons   []string `yaml:"persons"`
	Locations []string `yaml:"locations"`
	Titles    []string `yaml:"titles"`
	Dates     []string `yaml:"dates"`
	Times     []string `yaml:"times"`
	TimeUnits []string `yaml:"time_units"`
}

// GazetteerModel is a dictionary-driven sequence tagger. It segments the
// text with its own name-aware dictionary and emits one BIO triple per
// token.
type GazetteerModel struct {
	tokenizer *tokenize.Tokenizer
	base      *tokenize.Dictionary

	persons   map[string]struct{}
	locations map[string]struct{}
	titles    map[string]struct{}
	dates     map[string]struct{}
	times     map[string]struct{}
	timeUnits map[string]struct{}
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

// NewGazetteerModel builds a model from spec. Every gazetteer word is added
// to a copy of base so that names segment as single tokens. A nil base
// selects the default dictionary.
func NewGazetteerModel(spec GazetteerSpec, base *tokenize.Dictionary) *GazetteerModel {
	if base == nil {
		base = tokenize.DefaultDictionary()
	}

	dict := base.Clone()
	for _, list := range [][]string{spec.Persons, spec.Locations, spec.Titles, spec.Dates, spec.Times, spec.TimeUnits} {
		for _, w := range list {
			dict.Add(w)
		}
	}

	return &GazetteerModel{
		tokenizer: tokenize.New(dict),
		base:      base,
		persons:   toSet(spec.Persons),
		locations: toSet(spec.Locations),
		titles:    toSet(spec.Titles),
		dates:     toSet(spec.Dates),
		times:     toSet(spec.Times),
		timeUnits: toSet(spec.TimeUnits),
	}
}

// LoadGazetteer decodes a YAML gazetteer model.
func LoadGazetteer(r io.Reader, base *tokenize.Dictionary) (*GazetteerModel, error) {
	var spec GazetteerSpec
	if err := yaml.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("failed to decode gazetteer model: %w", err)
	}
	return NewGazetteerModel(spec, base), nil
}

// GazetteerLoader returns a ModelLoader for the gazetteer at path, or for
// the embedded default model when path is empty.
func GazetteerLoader(path string, base *tokenize.Dictionary) ModelLoader {
	return func(ctx context.Context) (Model, error) {
		if path == "" {
			logger.Debug("[NER] Loading embedded gazetteer model")
			return LoadGazetteer(bytes.NewReader(defaultGazetteer), base)
		}

		logger.Info("[NER] Loading gazetteer model", "path", path)
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
		defer f.Close()

		return LoadGazetteer(f, base)
	}
}

func isNumber(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (m *GazetteerModel) has(set map[string]struct{}, tok string) bool {
	_, ok := set[tok]
	return ok
}

func (m *GazetteerModel) pos(tok string) string {
	switch {
	case isNumber(tok):
		return "NUM"
	case m.has(m.persons, tok) || m.has(m.locations, tok):
		return "PROPN"
	case tokenize.IsThaiWord(tok) && m.base.Contains(tok):
		return "NOUN"
	case tokenize.IsThaiWord(tok):
		return "X"
	case strings.IndexFunc(tok, unicode.IsLetter) >= 0:
		return "X"
	default:
		return "PUNCT"
	}
}

// Tag implements Model.
func (m *GazetteerModel) Tag(ctx context.Context, text string) ([]TaggedSpan, error) {
	tokens := m.tokenizer.Tokenize(text)
	spans := make([]TaggedSpan, 0, len(tokens))
	prev := -1

	for i, tok := range tokens {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if strings.TrimSpace(tok) == "" {
			spans = append(spans, Triple(tok, "SPACE", "O"))
			continue
		}

		span := Triple(tok, m.pos(tok), "O")
		prevTok := ""
		if prev >= 0 {
			prevTok = spans[prev].Text
		}

		switch {
		case m.has(m.persons, tok):
			span.Tag = "B-PERSON"
			if prev >= 0 && m.has(m.titles, prevTok) {
				spans[prev].Tag = "B-PERSON"
				span.Tag = "I-PERSON"
			}
		case m.has(m.locations, tok):
			span.Tag = "B-LOCATION"
		case m.has(m.dates, tok):
			span.Tag = "B-DATE"
			if prev >= 0 && isNumber(prevTok) {
				spans[prev].Tag = "B-DATE"
				span.Tag = "I-DATE"
			}
		case m.has(m.times, tok):
			span.Tag = "B-TIME"
		case m.has(m.timeUnits, tok) && prev >= 0 && isNumber(prevTok):
			spans[prev].Tag = "B-TIME"
			span.Tag = "I-TIME"
		case prev >= 0 && m.has(m.titles, prevTok) && m.isNameCandidate(tok):
			spans[prev].Tag = "B-PERSON"
			span.Tag = "I-PERSON"
			span.POS = "PROPN"
		}

		spans = append(spans, span)
		prev = len(spans) - 1
	}

	return spans, nil
}

// isNameCandidate accepts Thai tokens that are not ordinary vocabulary,
// which is what an unknown name following a title looks like.
func (m *GazetteerModel) isNameCandidate(tok string) bool {
	if !tokenize.IsThaiWord(tok) || m.has(m.titles, tok) {
		return false
	}
	return !m.base.Contains(tok)
}
