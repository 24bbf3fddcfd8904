package graph

import (
	"sort"
	"strings"

	"github.com/OFFIS-RIT/plotline/pkg/common"
)

// SplitParagraphs splits text on line breaks. Blank paragraphs are kept so
// positions stay aligned with the source lines.
func SplitParagraphs(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// BuildCooccurrence counts, for every unordered pair of characters, the
// paragraphs in which both names occur. Matching is a literal,
// case-sensitive substring test, so a name contained in a longer word
// also matches. Pairs that never co-occur are omitted.
//
// The result is ordered by descending weight, then by source and target.
func BuildCooccurrence(text string, characters []string) []common.RelationPair {
	names := uniqueNames(characters)
	if len(names) < 2 {
		return []common.RelationPair{}
	}

	type pairKey struct{ source, target string }
	weights := make(map[pairKey]*common.RelationPair)
	for _, paragraph := range SplitParagraphs(text) {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}

		present := make([]string, 0, len(names))
		for _, name := range names {
			if strings.Contains(paragraph, name) {
				present = append(present, name)
			}
		}

		for i := 0; i < len(present); i++ {
			for j := i + 1; j < len(present); j++ {
				pair := common.NewRelationPair(present[i], present[j])
				key := pairKey{pair.Source, pair.Target}
				if existing, ok := weights[key]; ok {
					existing.Weight++
					continue
				}
				pair.Weight = 1
				weights[key] = &pair
			}
		}
	}

	pairs := make([]common.RelationPair, 0, len(weights))
	for _, p := range weights {
		pairs = append(pairs, *p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Weight != pairs[j].Weight {
			return pairs[i].Weight > pairs[j].Weight
		}
		if pairs[i].Source != pairs[j].Source {
			return pairs[i].Source < pairs[j].Source
		}
		return pairs[i].Target < pairs[j].Target
	})

	return pairs
}

func uniqueNames(characters []string) []string {
	seen := make(map[string]struct{}, len(characters))
	out := make([]string, 0, len(characters))
	for _, c := range characters {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
