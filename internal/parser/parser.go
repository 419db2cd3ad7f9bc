// Package parser turns Lumen tokens into the concrete-syntax tree.
package parser

import (
	"fmt"
	"strconv"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/lexer"
)

// ParseError is a syntax error with its source span.
type ParseError struct {
	Msg  string
	Span ast.Span
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Msg)
}

// Parser consumes a token stream and produces concrete syntax.
type Parser struct {
	l        *lexer.Lexer
	curToken lexer.Token
	peek     lexer.Token
}

// New creates a parser over a lexer.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// Prime curToken and peek.
	p.nextToken()
	p.nextToken()
	return p
}

// ParseSource is a convenience constructor: lex and parse a module from
// raw source bytes. Input canonicalization happens at the lexer boundary.
func ParseSource(src []byte, filename string) (*ast.Module, error) {
	l := lexer.New(string(src), filename)
	return New(l).ParseModule()
}

// ParseTermSource parses a single term from raw source bytes, as entered at
// the REPL.
func ParseTermSource(src []byte, filename string) (ast.Term, error) {
	l := lexer.New(string(src), filename)
	p := New(l)
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.curToken.Type != lexer.EOF {
		return nil, p.errorf("unexpected %s after expression", p.curToken)
	}
	return term, nil
}

func (p *Parser) nextToken() {
	p.curToken = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Span: p.curToken.Span()}
}

func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	if p.curToken.Type != t {
		return lexer.Token{}, p.errorf("expected %s, found %s", t, p.curToken)
	}
	tok := p.curToken
	p.nextToken()
	return tok, nil
}

// ParseModule parses a complete source file:
//
//	module name;
//	name : term;
//	name params = term;
func (p *Parser) ParseModule() (*ast.Module, error) {
	start := p.curToken.Span()

	if _, err := p.expect(lexer.MODULE); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	m := &ast.Module{Name: name.Literal}
	for p.curToken.Type != lexer.EOF {
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		m.Decls = append(m.Decls, decl)
	}
	m.Sp = start.To(p.curToken.Span())
	return m, nil
}

func (p *Parser) parseDecl() (ast.Decl, error) {
	start := p.curToken.Span()

	if p.curToken.Type == lexer.IMPORT {
		p.nextToken()
		path, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		end, err := p.expect(lexer.SEMICOLON)
		if err != nil {
			return nil, err
		}
		return &ast.Import{Path: path.Literal, Sp: start.To(end.Span())}, nil
	}

	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}

	// A claim: `name : term;`
	if p.curToken.Type == lexer.COLON {
		p.nextToken()
		ann, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(lexer.SEMICOLON)
		if err != nil {
			return nil, err
		}
		return &ast.Claim{Name: name.Literal, Ann: ann, Sp: start.To(end.Span())}, nil
	}

	// A definition: `name params = term;`
	var params []ast.ParamGroup
	for p.curToken.Type != lexer.EQUALS {
		group, err := p.parseParamGroup(false)
		if err != nil {
			return nil, err
		}
		params = append(params, group)
	}
	p.nextToken() // consume =
	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(lexer.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return &ast.Definition{Name: name.Literal, Params: params, Body: body, Sp: start.To(end.Span())}, nil
}

// parseParamGroup parses one λ/definition parameter group: a bare name or
// `(x y : term)`. With allowBareAnn, the unparenthesized `x : term` form is
// accepted (used directly after `\`).
func (p *Parser) parseParamGroup(allowBareAnn bool) (ast.ParamGroup, error) {
	if p.curToken.Type == lexer.IDENT || p.curToken.Type == lexer.UNDERSCORE {
		name := ast.Binder{Name: p.curToken.Literal, Sp: p.curToken.Span()}
		p.nextToken()

		if allowBareAnn && p.curToken.Type == lexer.COLON {
			p.nextToken()
			ann, err := p.parseArrowLevel()
			if err != nil {
				return ast.ParamGroup{}, err
			}
			return ast.ParamGroup{Names: []ast.Binder{name}, Ann: ann}, nil
		}
		return ast.ParamGroup{Names: []ast.Binder{name}}, nil
	}

	if p.curToken.Type != lexer.LPAREN {
		return ast.ParamGroup{}, p.errorf("expected parameter, found %s", p.curToken)
	}
	p.nextToken()

	var binders []ast.Binder
	for p.curToken.Type == lexer.IDENT || p.curToken.Type == lexer.UNDERSCORE {
		binders = append(binders, ast.Binder{Name: p.curToken.Literal, Sp: p.curToken.Span()})
		p.nextToken()
	}
	if len(binders) == 0 {
		return ast.ParamGroup{}, p.errorf("expected parameter name, found %s", p.curToken)
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return ast.ParamGroup{}, err
	}
	ann, err := p.parseTerm()
	if err != nil {
		return ast.ParamGroup{}, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return ast.ParamGroup{}, err
	}
	return ast.ParamGroup{Names: binders, Ann: ann}, nil
}

// parseTerm parses a term. Annotation binds loosest and associates to the
// right: `Type : Type : Type` is `Type : (Type : Type)`.
func (p *Parser) parseTerm() (ast.Term, error) {
	expr, err := p.parseArrowLevel()
	if err != nil {
		return nil, err
	}
	if p.curToken.Type == lexer.COLON {
		p.nextToken()
		ty, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return &ast.Ann{Expr: expr, Type: ty, Sp: expr.Span().To(ty.Span())}, nil
	}
	return expr, nil
}

// parseArrowLevel parses lambdas, Π-types, arrows and applications.
func (p *Parser) parseArrowLevel() (ast.Term, error) {
	if p.curToken.Type == lexer.LAMBDA {
		return p.parseLam()
	}

	// `(x y : A) -> B` — a dependent function type. Tried whenever an
	// identifier follows `(`; parsePi falls back to a parenthesized term
	// when no colon comes after the identifiers.
	if p.curToken.Type == lexer.LPAREN && p.isPiBinder() {
		return p.parsePi()
	}

	fn, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	if p.curToken.Type == lexer.ARROW {
		p.nextToken()
		to, err := p.parseArrowLevel()
		if err != nil {
			return nil, err
		}
		return &ast.Arrow{From: fn, To: to, Sp: fn.Span().To(to.Span())}, nil
	}
	return fn, nil
}

// isPiBinder reports whether the token after the current `(` is an
// identifier or `_`, as in every Π binder group and parenthesized annotated
// variable. It looks no further: parsePi and parsePiAtom read the
// identifiers and fall back to an ordinary parenthesized term when no colon
// follows them.
func (p *Parser) isPiBinder() bool {
	return p.peek.Type == lexer.IDENT || p.peek.Type == lexer.UNDERSCORE
}

// parsePi handles the shared prefix of `(x : A) -> B` (a Π type) and
// `(x : A)` (an annotated variable in parens). Only a single binder may be
// reinterpreted as an annotation; `(x y : A)` without `->` is an error.
func (p *Parser) parsePi() (ast.Term, error) {
	start := p.curToken.Span()
	p.nextToken() // consume (

	var binders []ast.Binder
	for p.curToken.Type == lexer.IDENT || p.curToken.Type == lexer.UNDERSCORE {
		binders = append(binders, ast.Binder{Name: p.curToken.Literal, Sp: p.curToken.Span()})
		p.nextToken()
	}

	if len(binders) == 0 || p.curToken.Type != lexer.COLON {
		// Not a binder group after all: re-parse as an ordinary
		// parenthesized term starting from the identifiers we consumed.
		return p.finishParenTerm(start, binders)
	}
	p.nextToken() // consume :

	ann, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	if p.curToken.Type != lexer.ARROW {
		if len(binders) == 1 {
			// `(x : A)` — an annotated variable.
			v := &ast.Ident{Name: binders[0].Name, Sp: binders[0].Sp}
			term := ast.Term(&ast.Ann{Expr: v, Type: ann, Sp: start.To(ann.Span())})
			return p.finishApp(term)
		}
		return nil, p.errorf("expected -> after binder group, found %s", p.curToken)
	}
	p.nextToken() // consume ->

	body, err := p.parseArrowLevel()
	if err != nil {
		return nil, err
	}
	return &ast.Pi{Names: binders, Ann: ann, Body: body, Sp: start.To(body.Span())}, nil
}

// finishParenTerm resumes an ordinary parenthesized term when the binder
// lookahead in parsePi fell through. Any identifiers already consumed form
// an application prefix.
func (p *Parser) finishParenTerm(start ast.Span, consumed []ast.Binder) (ast.Term, error) {
	var term ast.Term
	for _, b := range consumed {
		v := &ast.Ident{Name: b.Name, Sp: b.Sp}
		if term == nil {
			term = v
		} else {
			term = &ast.App{Fn: term, Arg: v, Sp: term.Span().To(v.Span())}
		}
	}

	if term == nil {
		inner, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		term = inner
	} else if p.curToken.Type != lexer.RPAREN {
		// More of the application (or an arrow, annotation, …) inside the
		// parens.
		rest, err := p.parseAppCont(term)
		if err != nil {
			return nil, err
		}
		term = rest
	}

	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return p.finishApp(term)
}

// parseAppCont continues parsing a term whose first atoms were already
// consumed: more application arguments, then arrow/annotation tails.
func (p *Parser) parseAppCont(fn ast.Term) (ast.Term, error) {
	for p.atomStart() {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		fn = &ast.App{Fn: fn, Arg: arg, Sp: fn.Span().To(arg.Span())}
	}
	if p.curToken.Type == lexer.ARROW {
		p.nextToken()
		to, err := p.parseArrowLevel()
		if err != nil {
			return nil, err
		}
		return &ast.Arrow{From: fn, To: to, Sp: fn.Span().To(to.Span())}, nil
	}
	if p.curToken.Type == lexer.COLON {
		p.nextToken()
		ty, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return &ast.Ann{Expr: fn, Type: ty, Sp: fn.Span().To(ty.Span())}, nil
	}
	return fn, nil
}

// finishApp continues an application chain after a parenthesized head, and
// handles a trailing arrow.
func (p *Parser) finishApp(head ast.Term) (ast.Term, error) {
	term, err := p.appChain(head)
	if err != nil {
		return nil, err
	}
	if p.curToken.Type == lexer.ARROW {
		p.nextToken()
		to, err := p.parseArrowLevel()
		if err != nil {
			return nil, err
		}
		return &ast.Arrow{From: term, To: to, Sp: term.Span().To(to.Span())}, nil
	}
	return term, nil
}

func (p *Parser) parseLam() (ast.Term, error) {
	start := p.curToken.Span()
	p.nextToken() // consume \

	var params []ast.ParamGroup
	for p.curToken.Type != lexer.FATARROW {
		// Only the first parameter may use the bare `x : T` form, since a
		// colon after later ones would be ambiguous.
		group, err := p.parseParamGroup(len(params) == 0)
		if err != nil {
			return nil, err
		}
		params = append(params, group)
	}
	if len(params) == 0 {
		return nil, p.errorf("lambda needs at least one parameter")
	}
	p.nextToken() // consume =>

	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return &ast.Lam{Params: params, Body: body, Sp: start.To(body.Span())}, nil
}

func (p *Parser) parseApp() (ast.Term, error) {
	head, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	return p.appChain(head)
}

func (p *Parser) appChain(fn ast.Term) (ast.Term, error) {
	for p.atomStart() {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		fn = &ast.App{Fn: fn, Arg: arg, Sp: fn.Span().To(arg.Span())}
	}
	return fn, nil
}

func (p *Parser) atomStart() bool {
	switch p.curToken.Type {
	case lexer.IDENT, lexer.UNDERSCORE, lexer.TYPE, lexer.INT, lexer.FLOAT,
		lexer.STRING, lexer.CHAR, lexer.LPAREN:
		return true
	}
	return false
}

func (p *Parser) parseAtom() (ast.Term, error) {
	tok := p.curToken
	switch tok.Type {
	case lexer.IDENT:
		p.nextToken()
		return &ast.Ident{Name: tok.Literal, Sp: tok.Span()}, nil

	case lexer.UNDERSCORE:
		p.nextToken()
		return &ast.Hole{Sp: tok.Span()}, nil

	case lexer.TYPE:
		p.nextToken()
		// `Type 2` — an explicit universe level.
		if p.curToken.Type == lexer.INT {
			level, err := strconv.Atoi(p.curToken.Literal)
			if err != nil {
				return nil, p.errorf("invalid universe level %q", p.curToken.Literal)
			}
			end := p.curToken.Span()
			p.nextToken()
			return &ast.Universe{Level: level, Sp: tok.Span().To(end)}, nil
		}
		return &ast.Universe{Level: 0, Sp: tok.Span()}, nil

	case lexer.INT:
		p.nextToken()
		value, err := strconv.ParseUint(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", tok.Literal)
		}
		return &ast.Literal{Kind: ast.IntLit, Int: value, Sp: tok.Span()}, nil

	case lexer.FLOAT:
		p.nextToken()
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorf("invalid float literal %q", tok.Literal)
		}
		return &ast.Literal{Kind: ast.FloatLit, Float: value, Sp: tok.Span()}, nil

	case lexer.STRING:
		p.nextToken()
		return &ast.Literal{Kind: ast.StringLit, Str: tok.Literal, Sp: tok.Span()}, nil

	case lexer.CHAR:
		p.nextToken()
		r := []rune(tok.Literal)
		if len(r) != 1 {
			return nil, p.errorf("invalid character literal %q", tok.Literal)
		}
		return &ast.Literal{Kind: ast.CharLit, Char: r[0], Sp: tok.Span()}, nil

	case lexer.LPAREN:
		if p.isPiBinder() {
			return p.parsePiAtom()
		}
		p.nextToken()
		inner, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	}

	return nil, p.errorf("unexpected %s", tok)
}

// parsePiAtom parses a parenthesized atom that may be a Π binder group used
// in atom position (e.g. as a function argument). If no arrow follows, the
// parenthesized term is returned as-is.
func (p *Parser) parsePiAtom() (ast.Term, error) {
	start := p.curToken.Span()
	p.nextToken() // consume (

	var binders []ast.Binder
	for p.curToken.Type == lexer.IDENT || p.curToken.Type == lexer.UNDERSCORE {
		binders = append(binders, ast.Binder{Name: p.curToken.Literal, Sp: p.curToken.Span()})
		p.nextToken()
	}

	if len(binders) == 0 || p.curToken.Type != lexer.COLON {
		var term ast.Term
		for _, b := range binders {
			v := &ast.Ident{Name: b.Name, Sp: b.Sp}
			if term == nil {
				term = v
			} else {
				term = &ast.App{Fn: term, Arg: v, Sp: term.Span().To(v.Span())}
			}
		}
		if term == nil {
			inner, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			term = inner
		} else if p.curToken.Type != lexer.RPAREN {
			rest, err := p.parseAppCont(term)
			if err != nil {
				return nil, err
			}
			term = rest
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return term, nil
	}
	p.nextToken() // consume :

	ann, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	if p.curToken.Type != lexer.ARROW {
		if len(binders) == 1 {
			v := &ast.Ident{Name: binders[0].Name, Sp: binders[0].Sp}
			return &ast.Ann{Expr: v, Type: ann, Sp: start.To(ann.Span())}, nil
		}
		return nil, p.errorf("expected -> after binder group, found %s", p.curToken)
	}
	p.nextToken() // consume ->

	body, err := p.parseArrowLevel()
	if err != nil {
		return nil, err
	}
	return &ast.Pi{Names: binders, Ann: ann, Body: body, Sp: start.To(body.Span())}, nil
}
