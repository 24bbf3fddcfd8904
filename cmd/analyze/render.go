package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/OFFIS-RIT/plotline/pkg/common"
)

// render prints result as plain text sections.
func render(w io.Writer, result *common.Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Tokens:            %d\n", result.Stats.TokenCount)
	fmt.Fprintf(&b, "Reading time:      %d min\n", result.Stats.ReadingMinutes)
	fmt.Fprintf(&b, "Lexical diversity: %.2f%%\n", result.Stats.LexicalDiversity)
	if result.Truncated {
		b.WriteString("Entity extraction ran on a truncated text.\n")
	}

	b.WriteString("\nEntities\n")
	categories := make([]string, 0, len(result.Entities))
	for cat := range result.Entities {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		fmt.Fprintf(&b, "  %-12s %s\n", cat, strings.Join(result.Entities[cat], ", "))
	}

	b.WriteString("\nCharacters\n")
	if len(result.Ranking) == 0 {
		b.WriteString("  none\n")
	}
	for _, c := range result.Ranking {
		fmt.Fprintf(&b, "  %-20s %d\n", c.Name, c.Count)
	}

	b.WriteString("\nRelations\n")
	switch result.RelationStatus {
	case common.RelationStatusOK:
		if len(result.Relations) == 0 {
			b.WriteString("  none\n")
		}
		for _, r := range result.Relations {
			fmt.Fprintf(&b, "  %s - %s (%d, width %.1f)\n", r.Source, r.Target, r.Weight, r.Width())
		}
	default:
		fmt.Fprintf(&b, "  %s\n", result.RelationStatus)
	}

	b.WriteString("\nSentiment arc\n")
	for _, p := range result.Arc {
		fmt.Fprintf(&b, "  %4d %+d\n", p.Position, p.Score)
	}

	if len(result.Errors) > 0 {
		b.WriteString("\nErrors\n")
		views := make([]string, 0, len(result.Errors))
		for v := range result.Errors {
			views = append(views, v)
		}
		sort.Strings(views)
		for _, v := range views {
			fmt.Fprintf(&b, "  %s: %s\n", v, result.Errors[v])
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
