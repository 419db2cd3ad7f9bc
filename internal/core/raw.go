// Package core defines the three term representations shared by the
// elaborator: raw terms as delivered by the desugarer, core terms in which
// every binder carries an annotation, and values in weak-head normal form.
// It also provides the capture-avoiding scope machinery and the typing
// context that the normalizer and type checker operate over.
package core

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/names"
)

// Level is a universe level. Type 0 lives in Type 1, and so on.
type Level uint

// Succ returns the next universe level.
func (l Level) Succ() Level { return l + 1 }

func (l Level) String() string {
	if l == 0 {
		return "Type"
	}
	return fmt.Sprintf("Type %d", l)
}

// Meta carries the source span of a raw or core node.
type Meta struct {
	Sp ast.Span
}

// Span returns the node's source span.
func (m Meta) Span() ast.Span { return m.Sp }

// RawTerm is a term as produced by the desugarer: binder annotations may be
// holes, and numeric literals do not yet have a width.
type RawTerm interface {
	String() string
	Span() ast.Span
	rawTerm()
}

// RawAnn is an annotated raw term: `expr : type`.
type RawAnn struct {
	Meta
	Expr RawTerm
	Type RawTerm
}

func (t *RawAnn) rawTerm()       {}
func (t *RawAnn) String() string { return fmt.Sprintf("%s : %s", t.Expr, t.Type) }

// RawUniverse is `Type` at a given level.
type RawUniverse struct {
	Meta
	Level Level
}

func (t *RawUniverse) rawTerm()       {}
func (t *RawUniverse) String() string { return t.Level.String() }

// RawHole is the `_` placeholder awaiting elaboration.
type RawHole struct {
	Meta
}

func (t *RawHole) rawTerm()       {}
func (t *RawHole) String() string { return "_" }

// RawConst is a literal or primitive type name before elaboration.
type RawConst struct {
	Meta
	Const RawConstant
}

func (t *RawConst) rawTerm()       {}
func (t *RawConst) String() string { return t.Const.String() }

// RawVar is a variable occurrence.
type RawVar struct {
	Meta
	Var names.Var
}

func (t *RawVar) rawTerm()       {}
func (t *RawVar) String() string { return t.Var.String() }

// RawPi is a dependent function type `(x : A) -> B`.
type RawPi struct {
	Meta
	Scope RawScope
}

func (t *RawPi) rawTerm() {}
func (t *RawPi) String() string {
	return fmt.Sprintf("(%s : %s) -> %s", display(t.Scope.Binder), t.Scope.Ann, t.Scope.Body)
}

// RawLam is a lambda abstraction `\x : A => b`.
type RawLam struct {
	Meta
	Scope RawScope
}

func (t *RawLam) rawTerm() {}
func (t *RawLam) String() string {
	if _, hole := t.Scope.Ann.(*RawHole); hole {
		return fmt.Sprintf("\\%s => %s", display(t.Scope.Binder), t.Scope.Body)
	}
	return fmt.Sprintf("\\%s : %s => %s", display(t.Scope.Binder), t.Scope.Ann, t.Scope.Body)
}

// RawApp is an application `f x`.
type RawApp struct {
	Meta
	Fn  RawTerm
	Arg RawTerm
}

func (t *RawApp) rawTerm() {}
func (t *RawApp) String() string {
	arg := t.Arg.String()
	switch t.Arg.(type) {
	case *RawApp, *RawLam, *RawAnn, *RawPi:
		arg = "(" + arg + ")"
	}
	return fmt.Sprintf("%s %s", t.Fn, arg)
}

// RawScope pairs a binder pattern (name plus annotation) with a body in
// which index 0 refers to the binder.
type RawScope struct {
	Binder names.Name
	Ann    RawTerm
	Body   RawTerm
}

// BindRaw abstracts all free occurrences of name in body into De Bruijn
// indices, producing a scope. The annotation is not under the binder.
func BindRaw(name names.Name, ann, body RawTerm) RawScope {
	return RawScope{Binder: name, Ann: ann, Body: abstractRaw(body, name, 0)}
}

// Open renames the scope's bound variable to a fresh free name and returns
// it together with the instantiated body.
func (s RawScope) Open() (names.Name, RawTerm) {
	fresh := names.Fresh(s.Binder.Hint())
	return fresh, s.OpenWith(fresh)
}

// OpenWith instantiates the scope's bound variable with the given free name.
func (s RawScope) OpenWith(name names.Name) RawTerm {
	return instantiateRaw(s.Body, name, 0)
}

func abstractRaw(t RawTerm, name names.Name, depth int) RawTerm {
	switch t := t.(type) {
	case *RawAnn:
		return &RawAnn{t.Meta, abstractRaw(t.Expr, name, depth), abstractRaw(t.Type, name, depth)}
	case *RawUniverse, *RawHole, *RawConst:
		return t
	case *RawVar:
		if t.Var.Kind == names.FreeVar && t.Var.Name.Eq(name) {
			return &RawVar{t.Meta, names.Bound(name, depth)}
		}
		return t
	case *RawPi:
		return &RawPi{t.Meta, RawScope{
			Binder: t.Scope.Binder,
			Ann:    abstractRaw(t.Scope.Ann, name, depth),
			Body:   abstractRaw(t.Scope.Body, name, depth+1),
		}}
	case *RawLam:
		return &RawLam{t.Meta, RawScope{
			Binder: t.Scope.Binder,
			Ann:    abstractRaw(t.Scope.Ann, name, depth),
			Body:   abstractRaw(t.Scope.Body, name, depth+1),
		}}
	case *RawApp:
		return &RawApp{t.Meta, abstractRaw(t.Fn, name, depth), abstractRaw(t.Arg, name, depth)}
	}
	panic(fmt.Sprintf("core: unknown raw term %T", t))
}

func instantiateRaw(t RawTerm, name names.Name, depth int) RawTerm {
	switch t := t.(type) {
	case *RawAnn:
		return &RawAnn{t.Meta, instantiateRaw(t.Expr, name, depth), instantiateRaw(t.Type, name, depth)}
	case *RawUniverse, *RawHole, *RawConst:
		return t
	case *RawVar:
		if t.Var.Kind == names.BoundVar && t.Var.Index == depth {
			return &RawVar{t.Meta, names.Free(name)}
		}
		return t
	case *RawPi:
		return &RawPi{t.Meta, RawScope{
			Binder: t.Scope.Binder,
			Ann:    instantiateRaw(t.Scope.Ann, name, depth),
			Body:   instantiateRaw(t.Scope.Body, name, depth+1),
		}}
	case *RawLam:
		return &RawLam{t.Meta, RawScope{
			Binder: t.Scope.Binder,
			Ann:    instantiateRaw(t.Scope.Ann, name, depth),
			Body:   instantiateRaw(t.Scope.Body, name, depth+1),
		}}
	case *RawApp:
		return &RawApp{t.Meta, instantiateRaw(t.Fn, name, depth), instantiateRaw(t.Arg, name, depth)}
	}
	panic(fmt.Sprintf("core: unknown raw term %T", t))
}

// RawDefinition is one desugared top-level definition.
type RawDefinition struct {
	Name string
	Term RawTerm
	Ann  RawTerm
}

// RawModule is a desugared module awaiting elaboration.
type RawModule struct {
	Name        string
	Definitions []RawDefinition
}
