package core

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/names"
)

// Term is an elaborated term: every binder carries an annotation, every
// literal has a specific kind, and no holes remain.
type Term interface {
	String() string
	Span() ast.Span
	coreTerm()
}

// Ann is an annotated term: `expr : type`.
type Ann struct {
	Meta
	Expr Term
	Type Term
}

func (t *Ann) coreTerm()      {}
func (t *Ann) String() string { return fmt.Sprintf("%s : %s", t.Expr, t.Type) }

// Universe is `Type` at a given level.
type Universe struct {
	Meta
	Level Level
}

func (t *Universe) coreTerm()      {}
func (t *Universe) String() string { return t.Level.String() }

// Const is an elaborated constant.
type Const struct {
	Meta
	Const Constant
}

func (t *Const) coreTerm()      {}
func (t *Const) String() string { return t.Const.String() }

// Var is a variable occurrence.
type Var struct {
	Meta
	Var names.Var
}

func (t *Var) coreTerm()      {}
func (t *Var) String() string { return t.Var.String() }

// Pi is a dependent function type `(x : A) -> B`.
type Pi struct {
	Meta
	Scope Scope
}

func (t *Pi) coreTerm() {}
func (t *Pi) String() string {
	return fmt.Sprintf("(%s : %s) -> %s", display(t.Scope.Binder), t.Scope.Ann, t.Scope.Body)
}

// Lam is a lambda abstraction `\x : A => b`.
type Lam struct {
	Meta
	Scope Scope
}

func (t *Lam) coreTerm() {}
func (t *Lam) String() string {
	return fmt.Sprintf("\\%s : %s => %s", display(t.Scope.Binder), t.Scope.Ann, t.Scope.Body)
}

// App is an application `f x`.
type App struct {
	Meta
	Fn  Term
	Arg Term
}

func (t *App) coreTerm() {}
func (t *App) String() string {
	arg := t.Arg.String()
	switch t.Arg.(type) {
	case *App, *Lam, *Ann, *Pi:
		arg = "(" + arg + ")"
	}
	return fmt.Sprintf("%s %s", t.Fn, arg)
}

// Scope pairs a binder pattern with a body in which index 0 refers to the
// binder.
type Scope struct {
	Binder names.Name
	Ann    Term
	Body   Term
}

// Bind abstracts all free occurrences of name in body into De Bruijn
// indices, producing a scope.
func Bind(name names.Name, ann, body Term) Scope {
	return Scope{Binder: name, Ann: ann, Body: abstractTerm(body, name, 0)}
}

// Open renames the scope's bound variable to a fresh free name and returns
// it together with the instantiated body.
func (s Scope) Open() (names.Name, Term) {
	fresh := names.Fresh(s.Binder.Hint())
	return fresh, s.OpenWith(fresh)
}

// OpenWith instantiates the scope's bound variable with the given free name.
func (s Scope) OpenWith(name names.Name) Term {
	return instantiateTerm(s.Body, name, 0)
}

func abstractTerm(t Term, name names.Name, depth int) Term {
	switch t := t.(type) {
	case *Ann:
		return &Ann{t.Meta, abstractTerm(t.Expr, name, depth), abstractTerm(t.Type, name, depth)}
	case *Universe, *Const:
		return t
	case *Var:
		if t.Var.Kind == names.FreeVar && t.Var.Name.Eq(name) {
			return &Var{t.Meta, names.Bound(name, depth)}
		}
		return t
	case *Pi:
		return &Pi{t.Meta, Scope{
			Binder: t.Scope.Binder,
			Ann:    abstractTerm(t.Scope.Ann, name, depth),
			Body:   abstractTerm(t.Scope.Body, name, depth+1),
		}}
	case *Lam:
		return &Lam{t.Meta, Scope{
			Binder: t.Scope.Binder,
			Ann:    abstractTerm(t.Scope.Ann, name, depth),
			Body:   abstractTerm(t.Scope.Body, name, depth+1),
		}}
	case *App:
		return &App{t.Meta, abstractTerm(t.Fn, name, depth), abstractTerm(t.Arg, name, depth)}
	}
	panic(fmt.Sprintf("core: unknown term %T", t))
}

func instantiateTerm(t Term, name names.Name, depth int) Term {
	switch t := t.(type) {
	case *Ann:
		return &Ann{t.Meta, instantiateTerm(t.Expr, name, depth), instantiateTerm(t.Type, name, depth)}
	case *Universe, *Const:
		return t
	case *Var:
		if t.Var.Kind == names.BoundVar && t.Var.Index == depth {
			return &Var{t.Meta, names.Free(name)}
		}
		return t
	case *Pi:
		return &Pi{t.Meta, Scope{
			Binder: t.Scope.Binder,
			Ann:    instantiateTerm(t.Scope.Ann, name, depth),
			Body:   instantiateTerm(t.Scope.Body, name, depth+1),
		}}
	case *Lam:
		return &Lam{t.Meta, Scope{
			Binder: t.Scope.Binder,
			Ann:    instantiateTerm(t.Scope.Ann, name, depth),
			Body:   instantiateTerm(t.Scope.Body, name, depth+1),
		}}
	case *App:
		return &App{t.Meta, instantiateTerm(t.Fn, name, depth), instantiateTerm(t.Arg, name, depth)}
	}
	panic(fmt.Sprintf("core: unknown term %T", t))
}

// Definition is one elaborated top-level definition: Term has type Ann in
// the context of all preceding definitions.
type Definition struct {
	Name string
	Term Term
	Ann  Value
}

// Module is a fully elaborated module.
type Module struct {
	Name        string
	Definitions []Definition
}
