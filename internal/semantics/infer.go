package semantics

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/core"
	"github.com/lumen-lang/lumen/internal/names"
)

// Infer synthesizes a type for a raw term, returning the elaborated core
// form together with the inferred value-type.
func Infer(ctx *core.Context, term core.RawTerm) (core.Term, core.Type, *TypeError) {
	switch term := term.(type) {
	case *core.RawAnn:
		// Elaborate the annotation as a type, normalize it, then push it
		// into the expression.
		elabType, _, err := InferUniverse(ctx, term.Type)
		if err != nil {
			return nil, nil, err
		}
		typeValue, nerr := Normalize(ctx, elabType)
		if nerr != nil {
			return nil, nil, wrapInternal(nerr)
		}
		elabExpr, err := Check(ctx, term.Expr, typeValue)
		if err != nil {
			return nil, nil, err
		}
		return &core.Ann{Meta: term.Meta, Expr: elabExpr, Type: elabType}, typeValue, nil

	case *core.RawUniverse:
		return &core.Universe{Meta: term.Meta, Level: term.Level},
			&core.UniverseValue{Level: term.Level.Succ()}, nil

	case *core.RawHole:
		return nil, nil, newUnableToElaborateHole(term.Span(), nil)

	case *core.RawConst:
		return inferConst(term)

	case *core.RawVar:
		switch term.Var.Kind {
		case names.FreeVar:
			binder := ctx.Lookup(term.Var.Name)
			if binder == nil {
				return nil, nil, newUndefinedName(term.Span(), term.Var.Name)
			}
			return &core.Var{Meta: term.Meta, Var: term.Var}, binder.Ann, nil
		default:
			// Scopes are always opened before descending; a bound variable
			// here is an elaborator bug surfaced as a type error.
			ie := &InternalError{
				Kind:  UnsubstitutedDebruijnIndex,
				Span:  term.Span(),
				Name:  term.Var.Name,
				Index: term.Var.Index,
			}
			return nil, nil, ie.TypeError()
		}

	case *core.RawPi:
		name, body := term.Scope.Open()

		elabAnn, annLevel, err := InferUniverse(ctx, term.Scope.Ann)
		if err != nil {
			return nil, nil, err
		}
		annValue, nerr := Normalize(ctx, elabAnn)
		if nerr != nil {
			return nil, nil, wrapInternal(nerr)
		}
		bodyCtx := ctx.ExtendPi(name, annValue)
		elabBody, bodyLevel, err := InferUniverse(bodyCtx, body)
		if err != nil {
			return nil, nil, err
		}

		level := max(annLevel, bodyLevel)
		return &core.Pi{Meta: term.Meta, Scope: core.Bind(name, elabAnn, elabBody)},
			&core.UniverseValue{Level: level}, nil

	case *core.RawLam:
		if hole, ok := term.Scope.Ann.(*core.RawHole); ok {
			return nil, nil, newFunctionParamNeedsAnnotation(hole.Span(), term.Scope.Binder)
		}

		name, body := term.Scope.Open()

		elabAnn, _, err := InferUniverse(ctx, term.Scope.Ann)
		if err != nil {
			return nil, nil, err
		}
		annValue, nerr := Normalize(ctx, elabAnn)
		if nerr != nil {
			return nil, nil, wrapInternal(nerr)
		}
		bodyCtx := ctx.ExtendLam(name, annValue)
		elabBody, bodyType, err := Infer(bodyCtx, body)
		if err != nil {
			return nil, nil, err
		}

		return &core.Lam{Meta: term.Meta, Scope: core.Bind(name, elabAnn, elabBody)},
			&core.PiValue{Scope: core.BindValue(name, annValue, bodyType)}, nil

	case *core.RawApp:
		elabFn, fnType, err := Infer(ctx, term.Fn)
		if err != nil {
			return nil, nil, err
		}
		pi, ok := fnType.(*core.PiValue)
		if !ok {
			return nil, nil, newArgAppliedToNonFunction(term.Fn.Span(), term.Arg.Span(), fnType)
		}

		name, piBody := pi.Scope.Open()
		elabArg, err := Check(ctx, term.Arg, pi.Scope.Ann)
		if err != nil {
			return nil, nil, err
		}

		// Substitute the argument into the codomain by normalizing it
		// under a let binding.
		resultType, nerr := Normalize(
			ctx.ExtendLet(name, pi.Scope.Ann, elabArg),
			core.EmbedValue(piBody),
		)
		if nerr != nil {
			return nil, nil, wrapInternal(nerr)
		}

		return &core.App{Meta: term.Meta, Fn: elabFn, Arg: elabArg}, resultType, nil
	}

	panic(fmt.Sprintf("semantics: unknown raw term %T", term))
}

// InferUniverse elaborates a raw term and demands that its type is a
// universe, returning the universe's level.
func InferUniverse(ctx *core.Context, term core.RawTerm) (core.Term, core.Level, *TypeError) {
	elab, ty, err := Infer(ctx, term)
	if err != nil {
		return nil, 0, err
	}
	if u, ok := ty.(*core.UniverseValue); ok {
		return elab, u.Level, nil
	}
	return nil, 0, newExpectedUniverse(term.Span(), ty)
}

func inferConst(term *core.RawConst) (core.Term, core.Type, *TypeError) {
	c := term.Const

	typeConst := func(k core.ConstKind) (core.Term, core.Type, *TypeError) {
		return &core.Const{Meta: term.Meta, Const: core.Constant{Kind: k}},
			&core.UniverseValue{Level: 0}, nil
	}

	switch c.Kind {
	case core.RawString:
		return &core.Const{Meta: term.Meta, Const: core.Constant{Kind: core.ConstString, Str: c.Str}},
			&core.ConstValue{Const: core.Constant{Kind: core.ConstStringType}}, nil
	case core.RawChar:
		return &core.Const{Meta: term.Meta, Const: core.Constant{Kind: core.ConstChar, Char: c.Char}},
			&core.ConstValue{Const: core.Constant{Kind: core.ConstCharType}}, nil
	case core.RawInt:
		// Bare numeric literals can only be checked against a concrete
		// numeric type, never inferred.
		return nil, nil, &TypeError{Kind: AmbiguousIntLiteralError, Span: term.Span()}
	case core.RawFloat:
		return nil, nil, &TypeError{Kind: AmbiguousFloatLiteralError, Span: term.Span()}
	case core.RawStringType:
		return typeConst(core.ConstStringType)
	case core.RawCharType:
		return typeConst(core.ConstCharType)
	case core.RawU8Type:
		return typeConst(core.ConstU8Type)
	case core.RawU16Type:
		return typeConst(core.ConstU16Type)
	case core.RawU32Type:
		return typeConst(core.ConstU32Type)
	case core.RawU64Type:
		return typeConst(core.ConstU64Type)
	case core.RawI8Type:
		return typeConst(core.ConstI8Type)
	case core.RawI16Type:
		return typeConst(core.ConstI16Type)
	case core.RawI32Type:
		return typeConst(core.ConstI32Type)
	case core.RawI64Type:
		return typeConst(core.ConstI64Type)
	case core.RawF32Type:
		return typeConst(core.ConstF32Type)
	case core.RawF64Type:
		return typeConst(core.ConstF64Type)
	}

	panic(fmt.Sprintf("semantics: unknown raw constant kind %d", c.Kind))
}
