// Package names provides variable names and the locally-nameless variable
// representation used by the raw, core and value trees.
//
// Free variables carry a Name; bound variables carry a De Bruijn index giving
// the number of binders between the occurrence and its binder. Scopes in the
// term packages convert between the two when terms are opened and closed.
package names

import (
	"fmt"
	"sync/atomic"
)

// genCounter assigns identities to generated names. It is the only piece of
// process-wide mutable state in the checker; different runs may hand out
// different numbers, which is fine because results are compared up to
// α-equivalence.
var genCounter atomic.Uint64

// Name identifies a binder or free variable. A name is either user-chosen
// (a string, id 0) or generated (a nonzero id with an optional display hint).
type Name struct {
	text string
	id   uint64
}

// User returns the name the user wrote in the source.
func User(text string) Name {
	return Name{text: text}
}

// Fresh returns a globally fresh generated name. The hint is kept for
// display only and does not participate in equality.
func Fresh(hint string) Name {
	return Name{text: hint, id: genCounter.Add(1)}
}

// IsGenerated reports whether the name was produced by Fresh.
func (n Name) IsGenerated() bool { return n.id != 0 }

// Hint returns the display text of the name.
func (n Name) Hint() string { return n.text }

// Eq decides name equality: user names are equal when their text matches,
// generated names when their identities match. Hints on generated names are
// ignored.
func (n Name) Eq(other Name) bool {
	if n.id != 0 || other.id != 0 {
		return n.id == other.id
	}
	return n.text == other.text
}

func (n Name) String() string {
	if n.id == 0 {
		return n.text
	}
	if n.text == "" {
		return fmt.Sprintf("$%d", n.id)
	}
	return fmt.Sprintf("%s$%d", n.text, n.id)
}

// VarKind distinguishes free from bound variable occurrences.
type VarKind int

const (
	FreeVar VarKind = iota
	BoundVar
)

// Var is a variable occurrence. Free occurrences carry a Name; bound
// occurrences carry the binder's name as a hint plus a De Bruijn index.
type Var struct {
	Kind  VarKind
	Name  Name
	Index int
}

// Free constructs a free variable occurrence.
func Free(n Name) Var {
	return Var{Kind: FreeVar, Name: n}
}

// Bound constructs a bound variable occurrence at the given index.
func Bound(hint Name, index int) Var {
	return Var{Kind: BoundVar, Name: hint, Index: index}
}

// Eq decides variable equality up to α-conversion: bound variables compare
// by index only, free variables by name.
func (v Var) Eq(other Var) bool {
	if v.Kind != other.Kind {
		return false
	}
	if v.Kind == BoundVar {
		return v.Index == other.Index
	}
	return v.Name.Eq(other.Name)
}

func (v Var) String() string {
	if v.Kind == BoundVar {
		if v.Name.text != "" {
			return v.Name.text
		}
		return fmt.Sprintf("@%d", v.Index)
	}
	return v.Name.String()
}
