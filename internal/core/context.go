package core

import (
	"strings"

	"github.com/lumen-lang/lumen/internal/names"
)

// BinderKind tags how a name entered the context.
type BinderKind int

const (
	LamBinder BinderKind = iota
	PiBinder
	LetBinder
)

func (k BinderKind) String() string {
	switch k {
	case LamBinder:
		return "\\"
	case PiBinder:
		return "Pi"
	case LetBinder:
		return "let"
	}
	return "?"
}

// Binder is one context entry. Ann is the type of the name; Value is the
// definition for let entries, kept as a term to preserve its source form.
type Binder struct {
	Name  names.Name
	Kind  BinderKind
	Ann   Value
	Value Term
}

// Context is an immutable ordered list of binders. Extension returns a new
// context sharing the tail, so sibling branches of the checker can extend
// the same parent without interference. The zero value (nil) is the empty
// context.
type Context struct {
	binder Binder
	parent *Context
}

// NewContext returns the empty context.
func NewContext() *Context { return nil }

// ExtendLam returns a context with a λ-bound name on top.
func (c *Context) ExtendLam(name names.Name, ann Value) *Context {
	return &Context{binder: Binder{Name: name, Kind: LamBinder, Ann: ann}, parent: c}
}

// ExtendPi returns a context with a Π-bound name on top.
func (c *Context) ExtendPi(name names.Name, ann Value) *Context {
	return &Context{binder: Binder{Name: name, Kind: PiBinder, Ann: ann}, parent: c}
}

// ExtendLet returns a context with a definition on top.
func (c *Context) ExtendLet(name names.Name, ann Value, value Term) *Context {
	return &Context{binder: Binder{Name: name, Kind: LetBinder, Ann: ann, Value: value}, parent: c}
}

// Lookup returns the innermost binder for the name, or nil. Later entries
// shadow earlier ones.
func (c *Context) Lookup(name names.Name) *Binder {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.binder.Name.Eq(name) {
			b := cur.binder
			return &b
		}
	}
	return nil
}

func (c *Context) String() string {
	var parts []string
	for cur := c; cur != nil; cur = cur.parent {
		parts = append(parts, cur.binder.Kind.String()+" "+cur.binder.Name.String())
	}
	// Entries print outermost first.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ", ")
}
