package graph

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/OFFIS-RIT/plotline/pkg/common"
	"github.com/OFFIS-RIT/plotline/pkg/ner"
)

// ParseNames splits comma-separated character names, trimming each entry
// and dropping empty ones.
func ParseNames(input string) []string {
	parts := strings.Split(input, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		names = append(names, p)
	}
	return names
}

// ResolveCharacters unions auto-detected PERSON names with user supplied
// names. Auto-detected names go through the PERSON noise filter, user
// names are only trimmed. Every result is longer than one character and
// appears once; the list is sorted lexicographically.
func ResolveCharacters(autoDetected []string, userSupplied []string) []string {
	set := make(map[string]struct{}, len(autoDetected)+len(userSupplied))

	for _, name := range autoDetected {
		name = strings.TrimSpace(name)
		if !ner.IsPersonCandidate(name) {
			continue
		}
		set[name] = struct{}{}
	}
	for _, name := range userSupplied {
		name = strings.TrimSpace(name)
		if utf8.RuneCountInString(name) <= 1 {
			continue
		}
		set[name] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RankCharacters counts the literal occurrences of every character name in
// text and orders them by descending count, then by name.
func RankCharacters(text string, characters []string) []common.CharacterCount {
	seen := make(map[string]struct{}, len(characters))
	ranking := make([]common.CharacterCount, 0, len(characters))
	for _, name := range characters {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		ranking = append(ranking, common.CharacterCount{
			Name:  name,
			Count: strings.Count(text, name),
		})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count == ranking[j].Count {
			return ranking[i].Name < ranking[j].Name
		}
		return ranking[i].Count > ranking[j].Count
	})
	return ranking
}

// TopCharacters returns the n most frequent characters of text. A
// non-positive n returns every character in ranking order.
func TopCharacters(text string, characters []string, n int) []string {
	ranking := RankCharacters(text, characters)
	if n > 0 && len(ranking) > n {
		ranking = ranking[:n]
	}

	out := make([]string, len(ranking))
	for i, r := range ranking {
		out[i] = r.Name
	}
	return out
}
