package core

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/names"
)

// Value is a term in weak-head normal form: a universe, a Π, a λ, a
// constant, or a neutral form stuck on a free variable. Values carry no
// source spans.
type Value interface {
	String() string
	valueNode()
}

// Type is an alias used where a value stands for the type of something.
type Type = Value

// UniverseValue is `Type` at a given level.
type UniverseValue struct {
	Level Level
}

func (v *UniverseValue) valueNode()     {}
func (v *UniverseValue) String() string { return v.Level.String() }

// ConstValue is an elaborated constant.
type ConstValue struct {
	Const Constant
}

func (v *ConstValue) valueNode()     {}
func (v *ConstValue) String() string { return v.Const.String() }

// PiValue is a dependent function type in normal form.
type PiValue struct {
	Scope ValueScope
}

func (v *PiValue) valueNode() {}
func (v *PiValue) String() string {
	return fmt.Sprintf("(%s : %s) -> %s", display(v.Scope.Binder), v.Scope.Ann, v.Scope.Body)
}

// LamValue is a lambda abstraction in normal form.
type LamValue struct {
	Scope ValueScope
}

func (v *LamValue) valueNode() {}
func (v *LamValue) String() string {
	return fmt.Sprintf("\\%s : %s => %s", display(v.Scope.Binder), v.Scope.Ann, v.Scope.Body)
}

// NeutralValue is a stuck computation headed by a free variable.
type NeutralValue struct {
	Neutral Neutral
}

func (v *NeutralValue) valueNode()     {}
func (v *NeutralValue) String() string { return v.Neutral.String() }

// Neutral is the spine of a stuck computation: a variable, or a neutral
// applied to an (unevaluated) term argument.
type Neutral interface {
	String() string
	neutralNode()
}

// NeutralVar is a stuck variable.
type NeutralVar struct {
	Var names.Var
}

func (n *NeutralVar) neutralNode()   {}
func (n *NeutralVar) String() string { return n.Var.String() }

// NeutralApp is a neutral applied to a term argument.
type NeutralApp struct {
	Fn  Neutral
	Arg Term
}

func (n *NeutralApp) neutralNode() {}
func (n *NeutralApp) String() string {
	arg := n.Arg.String()
	switch n.Arg.(type) {
	case *App, *Lam, *Ann, *Pi:
		arg = "(" + arg + ")"
	}
	return fmt.Sprintf("%s %s", n.Fn, arg)
}

// ValueScope pairs a binder pattern with a value body in which index 0
// refers to the binder.
type ValueScope struct {
	Binder names.Name
	Ann    Value
	Body   Value
}

// BindValue abstracts all free occurrences of name in body into De Bruijn
// indices, producing a value scope.
func BindValue(name names.Name, ann, body Value) ValueScope {
	return ValueScope{Binder: name, Ann: ann, Body: abstractValue(body, name, 0)}
}

// Open renames the scope's bound variable to a fresh free name and returns
// it together with the instantiated body.
func (s ValueScope) Open() (names.Name, Value) {
	fresh := names.Fresh(s.Binder.Hint())
	return fresh, s.OpenWith(fresh)
}

// OpenWith instantiates the scope's bound variable with the given free name.
func (s ValueScope) OpenWith(name names.Name) Value {
	return instantiateValue(s.Body, name, 0)
}

func abstractValue(v Value, name names.Name, depth int) Value {
	switch v := v.(type) {
	case *UniverseValue, *ConstValue:
		return v
	case *PiValue:
		return &PiValue{ValueScope{
			Binder: v.Scope.Binder,
			Ann:    abstractValue(v.Scope.Ann, name, depth),
			Body:   abstractValue(v.Scope.Body, name, depth+1),
		}}
	case *LamValue:
		return &LamValue{ValueScope{
			Binder: v.Scope.Binder,
			Ann:    abstractValue(v.Scope.Ann, name, depth),
			Body:   abstractValue(v.Scope.Body, name, depth+1),
		}}
	case *NeutralValue:
		return &NeutralValue{abstractNeutral(v.Neutral, name, depth)}
	}
	panic(fmt.Sprintf("core: unknown value %T", v))
}

func abstractNeutral(n Neutral, name names.Name, depth int) Neutral {
	switch n := n.(type) {
	case *NeutralVar:
		if n.Var.Kind == names.FreeVar && n.Var.Name.Eq(name) {
			return &NeutralVar{names.Bound(name, depth)}
		}
		return n
	case *NeutralApp:
		return &NeutralApp{
			Fn:  abstractNeutral(n.Fn, name, depth),
			Arg: abstractTerm(n.Arg, name, depth),
		}
	}
	panic(fmt.Sprintf("core: unknown neutral %T", n))
}

func instantiateValue(v Value, name names.Name, depth int) Value {
	switch v := v.(type) {
	case *UniverseValue, *ConstValue:
		return v
	case *PiValue:
		return &PiValue{ValueScope{
			Binder: v.Scope.Binder,
			Ann:    instantiateValue(v.Scope.Ann, name, depth),
			Body:   instantiateValue(v.Scope.Body, name, depth+1),
		}}
	case *LamValue:
		return &LamValue{ValueScope{
			Binder: v.Scope.Binder,
			Ann:    instantiateValue(v.Scope.Ann, name, depth),
			Body:   instantiateValue(v.Scope.Body, name, depth+1),
		}}
	case *NeutralValue:
		return &NeutralValue{instantiateNeutral(v.Neutral, name, depth)}
	}
	panic(fmt.Sprintf("core: unknown value %T", v))
}

func instantiateNeutral(n Neutral, name names.Name, depth int) Neutral {
	switch n := n.(type) {
	case *NeutralVar:
		if n.Var.Kind == names.BoundVar && n.Var.Index == depth {
			return &NeutralVar{names.Free(name)}
		}
		return n
	case *NeutralApp:
		return &NeutralApp{
			Fn:  instantiateNeutral(n.Fn, name, depth),
			Arg: instantiateTerm(n.Arg, name, depth),
		}
	}
	panic(fmt.Sprintf("core: unknown neutral %T", n))
}

// EmbedValue losslessly re-embeds a value as a core term so that reduction
// can continue under it. Neutrals embed as variables and applications,
// universes and constants as themselves; scope bodies transfer verbatim.
func EmbedValue(v Value) Term {
	switch v := v.(type) {
	case *UniverseValue:
		return &Universe{Level: v.Level}
	case *ConstValue:
		return &Const{Const: v.Const}
	case *PiValue:
		return &Pi{Scope: embedScope(v.Scope)}
	case *LamValue:
		return &Lam{Scope: embedScope(v.Scope)}
	case *NeutralValue:
		return embedNeutral(v.Neutral)
	}
	panic(fmt.Sprintf("core: unknown value %T", v))
}

func embedScope(s ValueScope) Scope {
	return Scope{
		Binder: s.Binder,
		Ann:    EmbedValue(s.Ann),
		Body:   EmbedValue(s.Body),
	}
}

func embedNeutral(n Neutral) Term {
	switch n := n.(type) {
	case *NeutralVar:
		return &Var{Var: n.Var}
	case *NeutralApp:
		return &App{Fn: embedNeutral(n.Fn), Arg: n.Arg}
	}
	panic(fmt.Sprintf("core: unknown neutral %T", n))
}
