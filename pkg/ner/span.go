package ner

// SpanShape identifies which tuple layout a tagging model produced.
type SpanShape int

const (
	// ShapeUnrecognized marks model output that is neither a pair nor a
	// triple. Such spans are skipped by the extractor.
	ShapeUnrecognized SpanShape = iota
	// ShapePair is (text, tag).
	ShapePair
	// ShapeTriple is (text, part-of-speech, tag).
	ShapeTriple
)

func (s SpanShape) String() string {
	switch s {
	case ShapePair:
		return "pair"
	case ShapeTriple:
		return "triple"
	default:
		return "unrecognized"
	}
}

// TaggedSpan is one element of a tagging model's output. POS is only set
// for ShapeTriple. Tag uses a BIO scheme such as "B-PERSON" or "O".
type TaggedSpan struct {
	Shape SpanShape
	Text  string
	POS   string
	Tag   string
}

// NewTaggedSpan builds a span from raw tuple fields.
func NewTaggedSpan(fields []string) TaggedSpan {
	switch len(fields) {
	case 2:
		return TaggedSpan{Shape: ShapePair, Text: fields[0], Tag: fields[1]}
	case 3:
		return TaggedSpan{Shape: ShapeTriple, Text: fields[0], POS: fields[1], Tag: fields[2]}
	default:
		return TaggedSpan{Shape: ShapeUnrecognized}
	}
}

// Pair is a convenience constructor for a (text, tag) span.
func Pair(text, tag string) TaggedSpan {
	return TaggedSpan{Shape: ShapePair, Text: text, Tag: tag}
}

// Triple is a convenience constructor for a (text, pos, tag) span.
func Triple(text, pos, tag string) TaggedSpan {
	return TaggedSpan{Shape: ShapeTriple, Text: text, POS: pos, Tag: tag}
}

// Valid reports whether the span has a recognized shape.
func (s TaggedSpan) Valid() bool {
	return s.Shape == ShapePair || s.Shape == ShapeTriple
}
