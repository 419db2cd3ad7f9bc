// Package desugar translates concrete syntax into the raw terms consumed by
// the elaborator: grouped binders expand into nested single binders,
// non-dependent arrows get generated fresh names, omitted λ annotations
// become holes, and type claims pair up with their definitions.
package desugar

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/core"
	"github.com/lumen-lang/lumen/internal/names"
)

// Error reports a desugaring failure with its source span. Unimplemented
// marks surface forms the language reserves but does not support yet.
type Error struct {
	Msg           string
	Span          ast.Span
	Unimplemented bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Msg)
}

// Module desugars a parsed module into a raw module. Claims pair with the
// next matching definition; a claim whose definition never arrives becomes
// a definition with a hole body. Import declarations are refused.
func Module(m *ast.Module) (*core.RawModule, error) {
	out := &core.RawModule{Name: m.Name}

	// The claim we have seen but not yet matched with a definition.
	var claimName string
	var claimAnn core.RawTerm
	haveClaim := false

	flushClaim := func() {
		if haveClaim {
			out.Definitions = append(out.Definitions, core.RawDefinition{
				Name: claimName,
				Term: &core.RawHole{},
				Ann:  claimAnn,
			})
			haveClaim = false
		}
	}

	for _, decl := range m.Decls {
		switch decl := decl.(type) {
		case *ast.Import:
			return nil, &Error{Msg: "import declarations are not implemented", Span: decl.Span(), Unimplemented: true}

		case *ast.Claim:
			ann, err := Term(decl.Ann)
			if err != nil {
				return nil, err
			}
			flushClaim()
			claimName, claimAnn, haveClaim = decl.Name, ann, true

		case *ast.Definition:
			body, err := lamFromGroups(decl.Params, decl.Body)
			if err != nil {
				return nil, err
			}
			ann := core.RawTerm(&core.RawHole{})
			if haveClaim {
				if claimName == decl.Name {
					ann = claimAnn
					haveClaim = false
				} else {
					flushClaim()
				}
			}
			out.Definitions = append(out.Definitions, core.RawDefinition{
				Name: decl.Name,
				Term: body,
				Ann:  ann,
			})

		default:
			return nil, &Error{Msg: fmt.Sprintf("unsupported declaration %T", decl), Span: decl.Span()}
		}
	}
	flushClaim()

	return out, nil
}

// Term desugars a concrete term into a raw term.
func Term(t ast.Term) (core.RawTerm, error) {
	meta := core.Meta{Sp: t.Span()}

	switch t := t.(type) {
	case *ast.Ident:
		if t.Name == "_" {
			return &core.RawHole{Meta: meta}, nil
		}
		if kind, ok := core.PrimitiveTypeName(t.Name); ok {
			return &core.RawConst{Meta: meta, Const: core.RawConstant{Kind: kind}}, nil
		}
		return &core.RawVar{Meta: meta, Var: names.Free(names.User(t.Name))}, nil

	case *ast.Hole:
		return &core.RawHole{Meta: meta}, nil

	case *ast.Universe:
		return &core.RawUniverse{Meta: meta, Level: core.Level(t.Level)}, nil

	case *ast.Literal:
		return &core.RawConst{Meta: meta, Const: literal(t)}, nil

	case *ast.Ann:
		expr, err := Term(t.Expr)
		if err != nil {
			return nil, err
		}
		ty, err := Term(t.Type)
		if err != nil {
			return nil, err
		}
		return &core.RawAnn{Meta: meta, Expr: expr, Type: ty}, nil

	case *ast.Arrow:
		// `A -> B` is a Π whose binder is fresh, so it can never capture a
		// user name.
		from, err := Term(t.From)
		if err != nil {
			return nil, err
		}
		to, err := Term(t.To)
		if err != nil {
			return nil, err
		}
		name := names.Fresh("_")
		return &core.RawPi{Meta: meta, Scope: core.BindRaw(name, from, to)}, nil

	case *ast.Pi:
		return piFromBinders(t.Names, t.Ann, t.Body, t.Span())

	case *ast.Lam:
		return lamFromGroups(t.Params, t.Body)

	case *ast.App:
		fn, err := Term(t.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := Term(t.Arg)
		if err != nil {
			return nil, err
		}
		return &core.RawApp{Meta: meta, Fn: fn, Arg: arg}, nil
	}

	return nil, &Error{Msg: fmt.Sprintf("unsupported term %T", t), Span: t.Span()}
}

func literal(l *ast.Literal) core.RawConstant {
	switch l.Kind {
	case ast.IntLit:
		return core.RawConstant{Kind: core.RawInt, Int: l.Int}
	case ast.FloatLit:
		return core.RawConstant{Kind: core.RawFloat, Float: l.Float}
	case ast.StringLit:
		return core.RawConstant{Kind: core.RawString, Str: l.Str}
	default:
		return core.RawConstant{Kind: core.RawChar, Char: l.Char}
	}
}

// piFromBinders expands `(a b : T) -> body` into nested single-binder Πs.
func piFromBinders(binders []ast.Binder, ann ast.Term, body ast.Term, span ast.Span) (core.RawTerm, error) {
	annTerm, err := Term(ann)
	if err != nil {
		return nil, err
	}
	term, err := Term(body)
	if err != nil {
		return nil, err
	}

	for i := len(binders) - 1; i >= 0; i-- {
		b := binders[i]
		meta := core.Meta{Sp: b.Sp.To(span)}
		term = &core.RawPi{Meta: meta, Scope: core.BindRaw(binderName(b), annTerm, term)}
	}
	return term, nil
}

// lamFromGroups expands `\(a b : t1) c => body` into nested single-binder
// lambdas, inserting holes for omitted annotations.
func lamFromGroups(groups []ast.ParamGroup, body ast.Term) (core.RawTerm, error) {
	term, err := Term(body)
	if err != nil {
		return nil, err
	}

	for gi := len(groups) - 1; gi >= 0; gi-- {
		group := groups[gi]

		var annTerm core.RawTerm
		if group.Ann != nil {
			annTerm, err = Term(group.Ann)
			if err != nil {
				return nil, err
			}
		}

		for i := len(group.Names) - 1; i >= 0; i-- {
			b := group.Names[i]
			ann := annTerm
			if ann == nil {
				ann = &core.RawHole{Meta: core.Meta{Sp: b.Sp}}
			}
			meta := core.Meta{Sp: b.Sp.To(body.Span())}
			term = &core.RawLam{Meta: meta, Scope: core.BindRaw(binderName(b), ann, term)}
		}
	}
	return term, nil
}

// binderName interprets `_` as a fresh anonymous binder.
func binderName(b ast.Binder) names.Name {
	if b.Name == "_" {
		return names.Fresh("_")
	}
	return names.User(b.Name)
}
