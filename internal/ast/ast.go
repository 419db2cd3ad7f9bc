// Package ast defines the concrete-syntax tree produced by the parser,
// together with the source positions shared by every later representation.
package ast

import (
	"fmt"
	"strings"
)

// Pos represents a position in the source code.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int // byte offset in the (normalized) input
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span represents a byte range in source code.
type Span struct {
	Start Pos
	End   Pos
}

// To returns a span covering the receiver through other.
func (s Span) To(other Span) Span {
	return Span{Start: s.Start, End: other.End}
}

// IsZero reports whether the span carries no position information.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Node is the base interface for all concrete-syntax nodes.
type Node interface {
	String() string
	Position() Pos
	Span() Span
}

// Term is a concrete-syntax term.
type Term interface {
	Node
	termNode()
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	declNode()
}

// Module represents a complete Lumen source file.
type Module struct {
	Name  string
	Decls []Decl
	Sp    Span
}

func (m *Module) String() string {
	parts := []string{fmt.Sprintf("module %s;", m.Name)}
	for _, d := range m.Decls {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "\n")
}
func (m *Module) Position() Pos { return m.Sp.Start }
func (m *Module) Span() Span    { return m.Sp }

// Claim declares the type of a forthcoming definition: `name : term;`.
type Claim struct {
	Name string
	Ann  Term
	Sp   Span
}

func (c *Claim) String() string { return fmt.Sprintf("%s : %s;", c.Name, c.Ann) }
func (c *Claim) Position() Pos  { return c.Sp.Start }
func (c *Claim) Span() Span     { return c.Sp }
func (c *Claim) declNode()      {}

// Definition gives a body for a name: `name params = term;`.
type Definition struct {
	Name   string
	Params []ParamGroup
	Body   Term
	Sp     Span
}

func (d *Definition) String() string {
	s := d.Name
	for _, g := range d.Params {
		s += " " + g.String()
	}
	return fmt.Sprintf("%s = %s;", s, d.Body)
}
func (d *Definition) Position() Pos { return d.Sp.Start }
func (d *Definition) Span() Span    { return d.Sp }
func (d *Definition) declNode()     {}

// Import brings another module into scope. Parsed for diagnostics; the
// desugarer rejects it as unimplemented.
type Import struct {
	Path string
	Sp   Span
}

func (i *Import) String() string { return fmt.Sprintf("import %s;", i.Path) }
func (i *Import) Position() Pos  { return i.Sp.Start }
func (i *Import) Span() Span     { return i.Sp }
func (i *Import) declNode()      {}

// Binder is an identifier in a parameter group, with its own span.
type Binder struct {
	Name string
	Sp   Span
}

func (b Binder) String() string { return b.Name }

// ParamGroup is one group of λ or Π parameters: `x`, `(x y : T)`, or the
// unparenthesized `x : T` form. Ann is nil when the annotation was omitted.
type ParamGroup struct {
	Names []Binder
	Ann   Term
}

func (g ParamGroup) String() string {
	parts := make([]string, len(g.Names))
	for i, n := range g.Names {
		parts[i] = n.Name
	}
	joined := strings.Join(parts, " ")
	if g.Ann == nil {
		return joined
	}
	return fmt.Sprintf("(%s : %s)", joined, g.Ann)
}

// Ident is a variable reference.
type Ident struct {
	Name string
	Sp   Span
}

func (i *Ident) String() string { return i.Name }
func (i *Ident) Position() Pos  { return i.Sp.Start }
func (i *Ident) Span() Span     { return i.Sp }
func (i *Ident) termNode()      {}

// Hole is the `_` placeholder.
type Hole struct {
	Sp Span
}

func (h *Hole) String() string { return "_" }
func (h *Hole) Position() Pos  { return h.Sp.Start }
func (h *Hole) Span() Span     { return h.Sp }
func (h *Hole) termNode()      {}

// Universe is `Type` or `Type N`.
type Universe struct {
	Level int
	Sp    Span
}

func (u *Universe) String() string {
	if u.Level == 0 {
		return "Type"
	}
	return fmt.Sprintf("Type %d", u.Level)
}
func (u *Universe) Position() Pos { return u.Sp.Start }
func (u *Universe) Span() Span    { return u.Sp }
func (u *Universe) termNode()     {}

// LiteralKind distinguishes the literal families.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	StringLit
	CharLit
)

// Literal is a numeric, string or character literal.
type Literal struct {
	Kind  LiteralKind
	Int   uint64
	Float float64
	Str   string
	Char  rune
	Sp    Span
}

func (l *Literal) String() string {
	switch l.Kind {
	case IntLit:
		return fmt.Sprintf("%d", l.Int)
	case FloatLit:
		return fmt.Sprintf("%g", l.Float)
	case StringLit:
		return fmt.Sprintf("%q", l.Str)
	case CharLit:
		return fmt.Sprintf("%q", l.Char)
	}
	return "<literal>"
}
func (l *Literal) Position() Pos { return l.Sp.Start }
func (l *Literal) Span() Span    { return l.Sp }
func (l *Literal) termNode()     {}

// Ann is a type annotation: `expr : type`.
type Ann struct {
	Expr Term
	Type Term
	Sp   Span
}

func (a *Ann) String() string { return fmt.Sprintf("%s : %s", a.Expr, a.Type) }
func (a *Ann) Position() Pos  { return a.Sp.Start }
func (a *Ann) Span() Span     { return a.Sp }
func (a *Ann) termNode()      {}

// Arrow is a non-dependent function type: `A -> B`.
type Arrow struct {
	From Term
	To   Term
	Sp   Span
}

func (a *Arrow) String() string { return fmt.Sprintf("%s -> %s", a.From, a.To) }
func (a *Arrow) Position() Pos  { return a.Sp.Start }
func (a *Arrow) Span() Span     { return a.Sp }
func (a *Arrow) termNode()      {}

// Pi is a dependent function type with one binder group:
// `(x y : A) -> B`.
type Pi struct {
	Names []Binder
	Ann   Term
	Body  Term
	Sp    Span
}

func (p *Pi) String() string {
	parts := make([]string, len(p.Names))
	for i, n := range p.Names {
		parts[i] = n.Name
	}
	return fmt.Sprintf("(%s : %s) -> %s", strings.Join(parts, " "), p.Ann, p.Body)
}
func (p *Pi) Position() Pos { return p.Sp.Start }
func (p *Pi) Span() Span    { return p.Sp }
func (p *Pi) termNode()     {}

// Lam is a lambda abstraction: `\params => body`.
type Lam struct {
	Params []ParamGroup
	Body   Term
	Sp     Span
}

func (l *Lam) String() string {
	parts := make([]string, len(l.Params))
	for i, g := range l.Params {
		parts[i] = g.String()
	}
	return fmt.Sprintf("\\%s => %s", strings.Join(parts, " "), l.Body)
}
func (l *Lam) Position() Pos { return l.Sp.Start }
func (l *Lam) Span() Span    { return l.Sp }
func (l *Lam) termNode()     {}

// App is juxtaposition application: `f x`.
type App struct {
	Fn  Term
	Arg Term
	Sp  Span
}

func (a *App) String() string {
	arg := a.Arg.String()
	switch a.Arg.(type) {
	case *App, *Lam, *Ann, *Arrow:
		arg = "(" + arg + ")"
	}
	return fmt.Sprintf("%s %s", a.Fn, arg)
}
func (a *App) Position() Pos { return a.Sp.Start }
func (a *App) Span() Span    { return a.Sp }
func (a *App) termNode()     {}
