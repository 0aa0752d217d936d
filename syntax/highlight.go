package syntax

import "unicode"

// HighlightKind classifies a highlight token for editor tooling.
type HighlightKind int

const (
	HL_WHITESPACE = HighlightKind(iota)
	HL_COMMENT
	HL_KEYWORD
	HL_TYPENAME
	HL_BUILTIN
	HL_IDENT
	HL_NUMBER
	HL_STRING
	HL_OPERATOR
	HL_PUNCT
	HL_UNKNOWN
)

// HighlightToken is a contiguous run of source text with one classification.
// Offsets are byte positions into the input.
type HighlightToken struct {
	Kind       HighlightKind
	Start, End int
	Text       string
}

// punctRunes are the runes classified as punctuation rather than operators.
var punctRunes = map[rune]bool{
	'(': true, ')': true, '{': true, '}': true,
	'[': true, ']': true, ',': true, ';': true,
}

// Highlight tokenizes source text for syntax highlighting.  It is independent
// of the compiling lexer: it never fails, covers every input byte, and keeps
// whitespace runs so the output concatenates back to the input.
func Highlight(src string) []HighlightToken {
	var toks []HighlightToken
	runes := []rune(src)

	emit := func(kind HighlightKind, start, end int) {
		toks = append(toks, HighlightToken{
			Kind:  kind,
			Start: start,
			End:   end,
			Text:  string(runes[start:end]),
		})
	}

	for i := 0; i < len(runes); {
		c := runes[i]
		start := i

		switch {
		case unicode.IsSpace(c):
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}

			emit(HL_WHITESPACE, start, i)
		case c == '#':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}

			emit(HL_COMMENT, start, i)
		case c == '"':
			i++
			for i < len(runes) && runes[i] != '"' && runes[i] != '\n' {
				i++
			}

			if i < len(runes) && runes[i] == '"' {
				i++
			}

			emit(HL_STRING, start, i)
		case isDecimalDigit(c) || c == '\'':
			i = scanHighlightNumber(runes, i)
			emit(HL_NUMBER, start, i)
		case isFirstIdentChar(c):
			i++
			for i < len(runes) && isIdentChar(runes[i]) {
				i++
			}

			if i < len(runes) && runes[i] == '?' {
				i++
			}

			emit(classifyWord(string(runes[start:i])), start, i)
		case punctRunes[c]:
			i++
			emit(HL_PUNCT, start, i)
		default:
			// Consume the longest known operator; unknown runes pass through
			// one at a time.
			kind := HL_UNKNOWN
			end := i + 1
			for j := i + 1; j <= len(runes) && j-i <= 2; j++ {
				if _, ok := symbolPatterns[string(runes[i:j])]; ok {
					kind = HL_OPERATOR
					end = j
				}
			}

			i = end
			emit(kind, start, i)
		}
	}

	return toks
}

// scanHighlightNumber scans an integer literal in any of its written forms.
func scanHighlightNumber(runes []rune, i int) int {
	for i < len(runes) && (isDecimalDigit(runes[i]) || runes[i] == '_') {
		i++
	}

	if i < len(runes) && runes[i] == '\'' {
		i++

		if i < len(runes) && runes[i] == 's' {
			i++
		}

		switch {
		case i < len(runes) && (runes[i] == 'b' || runes[i] == 'o' || runes[i] == 'd' || runes[i] == 'h'):
			i++
		}

		for i < len(runes) && (isHexDigit(runes[i]) || runes[i] == '_') {
			i++
		}
	}

	return i
}

// classifyWord classifies an identifier-shaped word.
func classifyWord(word string) HighlightKind {
	if _, ok := keywordPatterns[word]; ok {
		return HL_KEYWORD
	}

	if word[0] == '$' {
		return HL_BUILTIN
	}

	if 'A' <= word[0] && word[0] <= 'Z' {
		return HL_TYPENAME
	}

	return HL_IDENT
}
