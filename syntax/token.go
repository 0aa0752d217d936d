package syntax

import "udbc/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.  For string tokens the leading and
	// trailing quotes are trimmed off for convenience.
	Value string

	// The text span over which the token exists.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_IF = iota
	TOK_ELSE
	TOK_FOR
	TOK_RETURN

	TOK_FUNCTION
	TOK_ENUM
	TOK_BITFIELD
	TOK_STRUCT

	TOK_ARGUMENTS
	TOK_RETURNS
	TOK_DESCRIPTION
	TOK_BODY
	TOK_INCLUDE

	TOK_TRUE
	TOK_FALSE

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD

	TOK_LSHIFT
	TOK_RSHIFT

	TOK_LT
	TOK_LTEQ
	TOK_GT
	TOK_GTEQ
	TOK_EQ
	TOK_NEQ

	TOK_AMP
	TOK_CARET
	TOK_PIPE
	TOK_COMPL

	TOK_AND
	TOK_OR
	TOK_NOT

	TOK_QUESTION
	TOK_COLON
	TOK_ASSIGN
	TOK_INC
	TOK_DEC

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_COMMA
	TOK_DOT
	TOK_SEMI

	TOK_IDENT
	TOK_INTLIT
	TOK_STRINGLIT

	TOK_EOF
)

// keywordPatterns maps keyword strings (patterns) to their keyword token kind.
var keywordPatterns = map[string]int{
	"if":     TOK_IF,
	"else":   TOK_ELSE,
	"for":    TOK_FOR,
	"return": TOK_RETURN,

	"function": TOK_FUNCTION,
	"enum":     TOK_ENUM,
	"bitfield": TOK_BITFIELD,
	"struct":   TOK_STRUCT,

	"arguments":   TOK_ARGUMENTS,
	"returns":     TOK_RETURNS,
	"description": TOK_DESCRIPTION,
	"body":        TOK_BODY,
	"include":     TOK_INCLUDE,

	"true":  TOK_TRUE,
	"false": TOK_FALSE,
}

// symbolPatterns maps symbol strings (patterns) to their punctuation/operator
// token kind.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,
	"/": TOK_DIV,
	"%": TOK_MOD,

	"<<": TOK_LSHIFT,
	">>": TOK_RSHIFT,

	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,
	"==": TOK_EQ,
	"!=": TOK_NEQ,

	"&": TOK_AMP,
	"^": TOK_CARET,
	"|": TOK_PIPE,
	"~": TOK_COMPL,

	"&&": TOK_AND,
	"||": TOK_OR,
	"!":  TOK_NOT,

	"?":  TOK_QUESTION,
	":":  TOK_COLON,
	"=":  TOK_ASSIGN,
	"++": TOK_INC,
	"--": TOK_DEC,

	"(": TOK_LPAREN,
	")": TOK_RPAREN,
	"{": TOK_LBRACE,
	"}": TOK_RBRACE,
	"[": TOK_LBRACKET,
	"]": TOK_RBRACKET,
	",": TOK_COMMA,
	".": TOK_DOT,
	";": TOK_SEMI,
}
