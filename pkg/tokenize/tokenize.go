// Package tokenize segments Thai text into words.
//
// Thai is written without spaces between words, so segmentation runs a
// maximal-matching search over a dictionary: inside every run of Thai
// characters the segmentation with the fewest unknown clusters, then the
// fewest tokens, wins. A dictionary word may only end on a character
// cluster boundary. Characters that no dictionary word covers fall back to
// Thai character clusters and adjacent unknown clusters are merged.
package tokenize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenizer splits text into word tokens using a fixed dictionary.
// It is safe for concurrent use.
type Tokenizer struct {
	dict *Dictionary
}

// New creates a Tokenizer. A nil dictionary selects DefaultDictionary.
func New(dict *Dictionary) *Tokenizer {
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &Tokenizer{dict: dict}
}

// Dictionary returns the dictionary backing t.
func (t *Tokenizer) Dictionary() *Dictionary {
	return t.dict
}

type runeClass int

const (
	classThai runeClass = iota
	classSpace
	classWord
	classSymbol
)

func classify(r rune) runeClass {
	switch {
	case unicode.Is(unicode.Thai, r) && !unicode.IsDigit(r):
		return classThai
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	default:
		return classSymbol
	}
}

// Tokenize returns every token of text in order, including whitespace,
// punctuation and non-Thai runs. Use Filter or Words for the word stream.
func (t *Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return []string{}
	}

	runes := []rune(norm.NFC.String(text))
	tokens := make([]string, 0, len(runes)/3+1)

	for i := 0; i < len(runes); {
		class := classify(runes[i])
		if class == classSymbol {
			tokens = append(tokens, string(runes[i]))
			i++
			continue
		}

		j := i + 1
		for j < len(runes) && classify(runes[j]) == class {
			j++
		}

		if class == classThai {
			tokens = append(tokens, t.segmentThai(runes[i:j])...)
		} else {
			tokens = append(tokens, string(runes[i:j]))
		}
		i = j
	}

	return tokens
}

type segmentCost struct {
	unknown int
	tokens  int
}

func (c segmentCost) less(o segmentCost) bool {
	if c.unknown != o.unknown {
		return c.unknown < o.unknown
	}
	return c.tokens < o.tokens
}

// segmentThai runs maximal matching over a run of Thai characters.
func (t *Tokenizer) segmentThai(run []rune) []string {
	n := len(run)
	best := make([]segmentCost, n+1)
	next := make([]int, n+1)
	known := make([]bool, n+1)

	for i := n - 1; i >= 0; i-- {
		found := false
		for _, end := range t.dict.matchEnds(run, i) {
			if !clusterBoundary(run, end) {
				continue
			}
			cost := segmentCost{unknown: best[end].unknown, tokens: best[end].tokens + 1}
			if !found || cost.less(best[i]) {
				best[i], next[i], known[i] = cost, end, true
				found = true
			}
		}

		end := clusterEnd(run, i)
		cost := segmentCost{unknown: best[end].unknown + 1, tokens: best[end].tokens + 1}
		if !found || cost.less(best[i]) {
			best[i], next[i], known[i] = cost, end, false
		}
	}

	var tokens []string
	var pending strings.Builder
	for i := 0; i < n; i = next[i] {
		piece := string(run[i:next[i]])
		if known[i] {
			if pending.Len() > 0 {
				tokens = append(tokens, pending.String())
				pending.Reset()
			}
			tokens = append(tokens, piece)
			continue
		}
		pending.WriteString(piece)
	}
	if pending.Len() > 0 {
		tokens = append(tokens, pending.String())
	}

	return tokens
}

func isLeadingVowel(r rune) bool {
	return r >= 0x0E40 && r <= 0x0E44
}

func isFollowingVowel(r rune) bool {
	switch r {
	case 0x0E30, 0x0E32, 0x0E33, 0x0E45:
		return true
	}
	return false
}

// clusterEnd returns the end of the Thai character cluster starting at i:
// an optional leading vowel, one base character, then any combining marks
// and following vowels.
func clusterEnd(run []rune, i int) int {
	j := i
	if isLeadingVowel(run[j]) {
		j++
	}
	if j < len(run) {
		j++
	}
	for j < len(run) && (unicode.Is(unicode.Mn, run[j]) || isFollowingVowel(run[j])) {
		j++
	}
	return j
}

// clusterBoundary reports whether a word may end before run[i]. A break
// after a leading vowel or before a mark or following vowel would split a
// character cluster.
func clusterBoundary(run []rune, i int) bool {
	if i >= len(run) {
		return true
	}
	if isLeadingVowel(run[i-1]) {
		return false
	}
	return !unicode.Is(unicode.Mn, run[i]) && !isFollowingVowel(run[i])
}

// IsThaiWord reports whether token contains at least one Thai letter.
func IsThaiWord(token string) bool {
	for _, r := range token {
		if unicode.Is(unicode.Thai, r) && unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// Filter keeps only the tokens that carry Thai letters. Blank tokens,
// punctuation, digits and Latin fragments are dropped.
func Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		if !IsThaiWord(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Words tokenizes text and filters the result to Thai words.
func (t *Tokenizer) Words(text string) []string {
	return Filter(t.Tokenize(text))
}
