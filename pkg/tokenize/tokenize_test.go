package tokenize

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		dict *Dictionary
		text string
		want []string
	}{
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "default dictionary sentence",
			text: "ฉันรักเธอมาก",
			want: []string{"ฉัน", "รัก", "เธอ", "มาก"},
		},
		{
			name: "custom names",
			dict: NewDictionary("สมชาย", "มาลี", "รัก"),
			text: "สมชายรักมาลี",
			want: []string{"สมชาย", "รัก", "มาลี"},
		},
		{
			name: "fewest unknowns beats greedy longest match",
			dict: NewDictionary("มาก", "มา", "กลับ"),
			text: "มากลับ",
			want: []string{"มา", "กลับ"},
		},
		{
			name: "compound word preferred over its parts",
			dict: NewDictionary("เจ็บ", "ปวด", "เจ็บปวด"),
			text: "เจ็บปวด",
			want: []string{"เจ็บปวด"},
		},
		{
			name: "unknown clusters are merged",
			dict: NewDictionary("รัก"),
			text: "กขรัก",
			want: []string{"กข", "รัก"},
		},
		{
			name: "words do not end inside a character cluster",
			dict: NewDictionary("วรรณ", "ร้องไห้"),
			text: "วรรณาร้องไห้",
			want: []string{"วรรณา", "ร้องไห้"},
		},
		{
			name: "mixed scripts keep non thai runs",
			dict: NewDictionary("โลก"),
			text: "Hello, โลก 123!",
			want: []string{"Hello", ",", " ", "โลก", " ", "123", "!"},
		},
		{
			name: "line breaks are whitespace tokens",
			text: "รัก\nตาย",
			want: []string{"รัก", "\n", "ตาย"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.dict).Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTokenizeCompoundWords(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{text: "สวัสดีครับ", want: []string{"สวัสดี", "ครับ"}},
		{text: "รักษาสุขภาพ", want: []string{"รักษา", "สุขภาพ"}},
		{text: "ตายตัว", want: []string{"ตายตัว"}},
		{text: "สวยงาม", want: []string{"สวยงาม"}},
		{text: "กฎนี้ตายตัว", want: []string{"กฎ", "นี้", "ตายตัว"}},
		{text: "หมอช่วยรักษาสุขภาพของยาย", want: []string{"หมอ", "ช่วย", "รักษา", "สุขภาพ", "ของ", "ยาย"}},
		{text: "สวัสดีครับ วันนี้อากาศสวยงาม", want: []string{"สวัสดี", "ครับ", "วันนี้", "อากาศ", "สวยงาม"}},
		{text: "คุณวรรณาร้องไห้", want: []string{"คุณ", "วรรณา", "ร้องไห้"}},
	}

	tok := New(nil)
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := tok.Words(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Words(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	text := strings.Repeat("เขาเดินไปที่ตลาดแล้วยิ้ม ", 20)
	tok := New(nil)

	first := tok.Tokenize(text)
	for i := 0; i < 5; i++ {
		if got := tok.Tokenize(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("Tokenize() run %d = %v, want %v", i, got, first)
		}
	}
}

func TestFilter(t *testing.T) {
	tokens := []string{"รัก", " ", "", "\n", "abc", "123", "๑๒", "!", "ตาย", "xรัก"}
	want := []string{"รัก", "ตาย", "xรัก"}

	got := Filter(tokens)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %#v, want %#v", got, want)
	}

	if again := Filter(got); !reflect.DeepEqual(again, got) {
		t.Errorf("Filter(Filter()) = %#v, want %#v", again, got)
	}
}

func TestWords(t *testing.T) {
	got := New(nil).Words("ฉันรักเธอ, 2024!")
	want := []string{"ฉัน", "รัก", "เธอ"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %#v, want %#v", got, want)
	}

	if got := New(nil).Words("   \n\t "); len(got) != 0 {
		t.Errorf("Words() on blank text = %#v, want empty", got)
	}
}

func TestDictionary(t *testing.T) {
	d := NewDictionary("รัก", "รัก", " ", "ตาย")
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
	if !d.Contains("รัก") || d.Contains("รั") {
		t.Errorf("Contains() gave wrong membership")
	}

	c := d.Clone()
	c.Add("สมชาย")
	if d.Contains("สมชาย") {
		t.Errorf("Clone() shares state with original")
	}
	if !c.Contains("สมชาย") || !c.Contains("ตาย") {
		t.Errorf("clone lost or missed words")
	}

	if err := d.ReadWords(strings.NewReader("# comment\n\nมาลี\n")); err != nil {
		t.Fatalf("ReadWords() error = %v", err)
	}
	if !d.Contains("มาลี") || d.Contains("# comment") {
		t.Errorf("ReadWords() did not skip comments")
	}
}

func TestDefaultDictionaryHasLexicon(t *testing.T) {
	d := DefaultDictionary()
	for _, w := range []string{"รัก", "เจ็บปวด", "ร้องไห้", "เขา", "อาจารย์"} {
		if !d.Contains(w) {
			t.Errorf("default dictionary missing %q", w)
		}
	}
	if d.Len() < 20000 {
		t.Errorf("default dictionary has %d words, want a full word list", d.Len())
	}
}
