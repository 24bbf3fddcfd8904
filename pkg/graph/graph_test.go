package graph

import (
	"reflect"
	"testing"

	"github.com/OFFIS-RIT/plotline/pkg/common"
)

func TestParseNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "only separators", input: " , ,", want: []string{}},
		{name: "trimmed", input: " มาลี , สมชาย,", want: []string{"มาลี", "สมชาย"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNames(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseNames(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveCharacters(t *testing.T) {
	tests := []struct {
		name string
		auto []string
		user []string
		want []string
	}{
		{
			name: "nothing",
			want: []string{},
		},
		{
			name: "blacklist and single characters dropped",
			auto: []string{"เขา", "ก", "มาลี", "สมชาย", "มาลี"},
			want: []string{"มาลี", "สมชาย"},
		},
		{
			name: "union with user names",
			auto: []string{"มาลี"},
			user: []string{" สมศรี ", "มาลี", "x"},
			want: []string{"มาลี", "สมศรี"},
		},
		{
			name: "user names bypass blacklist",
			user: []string{"พ่อ"},
			want: []string{"พ่อ"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveCharacters(tt.auto, tt.user)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveCharacters() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankCharacters(t *testing.T) {
	text := "B A B\nC B A"
	got := RankCharacters(text, []string{"A", "B", "C", "D", "B"})
	want := []common.CharacterCount{
		{Name: "B", Count: 3},
		{Name: "A", Count: 2},
		{Name: "C", Count: 1},
		{Name: "D", Count: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RankCharacters() = %v, want %v", got, want)
	}

	top := TopCharacters(text, []string{"A", "B", "C"}, 2)
	if !reflect.DeepEqual(top, []string{"B", "A"}) {
		t.Errorf("TopCharacters() = %v, want [B A]", top)
	}
}

func TestSplitParagraphs(t *testing.T) {
	got := SplitParagraphs("a\r\nb\n\nc")
	want := []string{"a", "b", "", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitParagraphs() = %q, want %q", got, want)
	}
	if got := SplitParagraphs(""); got != nil {
		t.Errorf("SplitParagraphs(\"\") = %q, want nil", got)
	}
}

func TestBuildCooccurrence(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		characters []string
		want       []common.RelationPair
	}{
		{
			name:       "no characters",
			text:       "A B",
			characters: nil,
			want:       []common.RelationPair{},
		},
		{
			name:       "single character",
			text:       "A",
			characters: []string{"A"},
			want:       []common.RelationPair{},
		},
		{
			name:       "three in one paragraph",
			text:       "A B C",
			characters: []string{"C", "B", "A"},
			want: []common.RelationPair{
				{Source: "A", Target: "B", Weight: 1},
				{Source: "A", Target: "C", Weight: 1},
				{Source: "B", Target: "C", Weight: 1},
			},
		},
		{
			name:       "weights across paragraphs",
			text:       "A and B\nB meets A again\nC alone\n\nB with C",
			characters: []string{"A", "B", "C"},
			want: []common.RelationPair{
				{Source: "A", Target: "B", Weight: 2},
				{Source: "B", Target: "C", Weight: 1},
			},
		},
		{
			name:       "separator characters in names stay distinct",
			text:       "a|b c\na b|c",
			characters: []string{"a|b", "c", "a", "b|c"},
			want: []common.RelationPair{
				{Source: "a", Target: "c", Weight: 2},
				{Source: "a", Target: "a|b", Weight: 1},
				{Source: "a", Target: "b|c", Weight: 1},
				{Source: "a|b", Target: "c", Weight: 1},
				{Source: "b|c", Target: "c", Weight: 1},
			},
		},
		{
			name:       "mentions within a paragraph count once",
			text:       "A A A B B",
			characters: []string{"A", "B"},
			want: []common.RelationPair{
				{Source: "A", Target: "B", Weight: 1},
			},
		},
		{
			name:       "thai names",
			text:       "มาลีเดินไปหาสมชาย\nสมชายยิ้ม",
			characters: []string{"สมชาย", "มาลี"},
			want: []common.RelationPair{
				{Source: "มาลี", Target: "สมชาย", Weight: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildCooccurrence(tt.text, tt.characters)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildCooccurrence() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuilderTopN(t *testing.T) {
	if got := NewBuilder(NewBuilderParams{}).TopN(); got != DefaultTopN {
		t.Errorf("default TopN = %d, want %d", got, DefaultTopN)
	}

	text := "A B C\nA B\nA B\nC D"
	b := NewBuilder(NewBuilderParams{TopN: 2})
	got := b.Build(text, []string{"A", "B", "C", "D"})
	want := []common.RelationPair{{Source: "A", Target: "B", Weight: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build() = %v, want %v", got, want)
	}

	all := NewBuilder(NewBuilderParams{TopN: -1}).Build(text, []string{"A", "B", "C", "D"})
	if len(all) != 4 {
		t.Errorf("unlimited Build() returned %d pairs, want 4: %v", len(all), all)
	}

	if got := b.Build(text, nil); len(got) != 0 {
		t.Errorf("Build() without characters = %v, want empty", got)
	}
}
