// Package semantics implements the bidirectional elaborator: normalization
// of core terms to values, type checking of raw terms against expected
// value-types, and type inference. Checking and inference are mutually
// recursive and both lean on the normalizer.
package semantics

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/core"
	"github.com/lumen-lang/lumen/internal/names"
)

// Normalize evaluates a core term to weak-head-and-below normal form under
// the context. It is total for well-typed input; any error it returns is an
// elaborator bug, not a user error.
func Normalize(ctx *core.Context, term core.Term) (core.Value, error) {
	switch term := term.(type) {
	// The annotation is erased.
	case *core.Ann:
		return Normalize(ctx, term.Expr)

	case *core.Universe:
		return &core.UniverseValue{Level: term.Level}, nil

	case *core.Const:
		return &core.ConstValue{Const: term.Const}, nil

	case *core.Var:
		switch term.Var.Kind {
		case names.FreeVar:
			binder := ctx.Lookup(term.Var.Name)
			if binder == nil {
				return nil, &InternalError{
					Kind: UndefinedNameInternal,
					Span: term.Span(),
					Name: term.Var.Name,
				}
			}
			switch binder.Kind {
			// λ- and Π-bound names cannot reduce further; they stay stuck
			// until EVAL/APP or INFER/APP substitutes them away.
			case core.LamBinder, core.PiBinder:
				return &core.NeutralValue{Neutral: &core.NeutralVar{Var: term.Var}}, nil
			case core.LetBinder:
				return Normalize(ctx, binder.Value)
			}
		case names.BoundVar:
			// Scopes are always opened before descending, so a bound
			// variable here means the discipline was violated somewhere.
			return nil, &InternalError{
				Kind:  UnsubstitutedDebruijnIndex,
				Span:  term.Span(),
				Name:  term.Var.Name,
				Index: term.Var.Index,
			}
		}

	case *core.Pi:
		name, body := term.Scope.Open()
		ann, err := Normalize(ctx, term.Scope.Ann)
		if err != nil {
			return nil, err
		}
		bodyValue, err := Normalize(ctx.ExtendPi(name, ann), body)
		if err != nil {
			return nil, err
		}
		return &core.PiValue{Scope: core.BindValue(name, ann, bodyValue)}, nil

	case *core.Lam:
		name, body := term.Scope.Open()
		ann, err := Normalize(ctx, term.Scope.Ann)
		if err != nil {
			return nil, err
		}
		bodyValue, err := Normalize(ctx.ExtendLam(name, ann), body)
		if err != nil {
			return nil, err
		}
		return &core.LamValue{Scope: core.BindValue(name, ann, bodyValue)}, nil

	case *core.App:
		fn, err := Normalize(ctx, term.Fn)
		if err != nil {
			return nil, err
		}
		switch fn := fn.(type) {
		case *core.LamValue:
			// One β-step: bind the argument as a definition and keep
			// reducing the body, re-embedded as a term.
			name, body := fn.Scope.Open()
			bodyCtx := ctx.ExtendLet(name, fn.Scope.Ann, term.Arg)
			return Normalize(bodyCtx, core.EmbedValue(body))
		case *core.NeutralValue:
			return &core.NeutralValue{Neutral: &core.NeutralApp{Fn: fn.Neutral, Arg: term.Arg}}, nil
		default:
			return nil, &InternalError{
				Kind: ArgumentAppliedToNonFunction,
				Span: term.Fn.Span(),
			}
		}
	}

	panic(fmt.Sprintf("semantics: unknown core term %T", term))
}
