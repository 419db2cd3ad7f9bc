package lexer

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/ast"
)

// TokenType represents the type of a token.
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Literals
	IDENT  // identifier
	INT    // 123
	FLOAT  // 123.45
	STRING // "abc"
	CHAR   // 'a'

	// Keywords
	TYPE   // Type
	MODULE // module
	IMPORT // import

	// Punctuation
	LAMBDA     // \
	ARROW      // ->
	FATARROW   // =>
	COLON      // :
	SEMICOLON  // ;
	EQUALS     // =
	LPAREN     // (
	RPAREN     // )
	UNDERSCORE // _
)

var tokenNames = map[TokenType]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	IDENT:      "IDENT",
	INT:        "INT",
	FLOAT:      "FLOAT",
	STRING:     "STRING",
	CHAR:       "CHAR",
	TYPE:       "Type",
	MODULE:     "module",
	IMPORT:     "import",
	LAMBDA:     "\\",
	ARROW:      "->",
	FATARROW:   "=>",
	COLON:      ":",
	SEMICOLON:  ";",
	EQUALS:     "=",
	LPAREN:     "(",
	RPAREN:     ")",
	UNDERSCORE: "_",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

var keywords = map[string]TokenType{
	"Type":   TYPE,
	"module": MODULE,
	"import": IMPORT,
}

// LookupIdent returns the keyword token type for an identifier, if any.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if ident == "_" {
		return UNDERSCORE
	}
	return IDENT
}

// Token is a lexical token with its source extent.
type Token struct {
	Type    TokenType
	Literal string
	Pos     ast.Pos
	End     ast.Pos
}

// Span returns the token's source span.
func (t Token) Span() ast.Span { return ast.Span{Start: t.Pos, End: t.End} }

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
}
