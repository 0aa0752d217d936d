package report

// TextSpan represents a range or "span" of IDL source text.  It is used to
// point at erroneous or otherwise significant source text in diagnostics.
// Spans are inclusive on both sides and the line and column numbers are
// zero-indexed.  For source units embedded in larger documents (eg. an
// instruction's `operation()` field stored in a YAML record), the span is
// relative to the start of the unit; the unit itself carries the offset of
// its first line within the enclosing document.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}
