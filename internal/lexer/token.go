// Package lexer turns UTF-8 source into a token stream with
// indentation-aware block markers, per spec.md §4.1.
package lexer

import "github.com/aledsdavies/pycc/internal/diag"

// Kind is the lexical category of a Token.
type Kind int

const (
	EOF Kind = iota
	ILLEGAL
	NAME
	NUMBER
	STRING
	OP
	NEWLINE
	INDENT
	DEDENT
	KEYWORD
)

func (k Kind) String() string {
	names := [...]string{"EOF", "ILLEGAL", "NAME", "NUMBER", "STRING", "OP", "NEWLINE", "INDENT", "DEDENT", "KEYWORD"}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}

// NumberForm distinguishes int/float literals (spec.md §3 Token kind).
type NumberForm int

const (
	IntForm NumberForm = iota
	FloatForm
)

// StringForm distinguishes text/bytes/f-string literal content.
type StringForm int

const (
	TextForm StringForm = iota
	BytesForm
	FStringForm
)

// Token is one lexical unit.
type Token struct {
	Kind     Kind
	Lexeme   string
	Location diag.Location

	// NumForm/StrForm further classify NUMBER/STRING tokens.
	NumForm NumberForm
	StrForm StringForm

	// IntVal/FloatVal hold the decoded numeric value for NUMBER tokens.
	IntVal   int64
	FloatVal float64

	// StrVal holds the decoded text for STRING tokens after escape
	// processing (Lexeme retains the raw source text).
	StrVal   string
	BytesVal []byte
}

// Keywords is the reserved-word table from spec.md §4.1.
var Keywords = map[string]bool{
	"if": true, "elif": true, "else": true, "while": true, "for": true,
	"in": true, "not": true, "and": true, "or": true, "return": true,
	"try": true, "except": true, "finally": true, "import": true,
	"from": true, "def": true, "True": true, "False": true, "None": true,
	"pass": true, "break": true, "continue": true, "as": true, "is": true,
}
