package semantics

import (
	"github.com/lumen-lang/lumen/internal/core"
	"github.com/lumen-lang/lumen/internal/names"
)

// Check verifies a raw term against the expected value-type and returns its
// elaborated core form.
func Check(ctx *core.Context, term core.RawTerm, expected core.Type) (core.Term, *TypeError) {
	switch term := term.(type) {
	case *core.RawLam:
		pi, ok := expected.(*core.PiValue)
		if !ok {
			return nil, newUnexpectedFunction(term.Span(), expected)
		}

		// Open the λ and Π scopes jointly against the same fresh name so
		// that the Π's domain and codomain line up with the λ's body.
		fresh := names.Fresh(term.Scope.Binder.Hint())
		lamBody := term.Scope.OpenWith(fresh)
		piBody := pi.Scope.OpenWith(fresh)

		// The supplied Π fills in a missing parameter annotation. An
		// explicit annotation falls through to inference, which will
		// compare the whole Π types.
		if _, hole := term.Scope.Ann.(*core.RawHole); hole {
			bodyCtx := ctx.ExtendPi(fresh, pi.Scope.Ann)
			elabBody, err := Check(bodyCtx, lamBody, piBody)
			if err != nil {
				return nil, err
			}
			elabAnn := core.EmbedValue(pi.Scope.Ann)
			return &core.Lam{Meta: term.Meta, Scope: core.Bind(fresh, elabAnn, elabBody)}, nil
		}

	case *core.RawConst:
		if c, ok := expected.(*core.ConstValue); ok {
			if coerced, ok := coerceConst(term.Const, c.Const); ok {
				return &core.Const{Meta: term.Meta, Const: coerced}, nil
			}
		}

	case *core.RawHole:
		return nil, newUnableToElaborateHole(term.Span(), expected)
	}

	// Flip the direction of the checker: infer a type for the term and
	// compare it with the expected type for α-equivalence. Both sides are
	// already values, so weak-head comparison plus congruence suffices.
	elab, inferred, err := Infer(ctx, term)
	if err != nil {
		return nil, err
	}
	if !core.AlphaEqValue(inferred, expected) {
		return nil, newMismatch(term.Span(), inferred, expected)
	}
	return elab, nil
}

// coerceConst fits a generic literal to the primitive type it is being
// checked against. Integer coercion wraps modulo 2ⁿ rather than reporting
// overflow; floating point casts are lossy.
func coerceConst(c core.RawConstant, target core.Constant) (core.Constant, bool) {
	switch {
	case c.Kind == core.RawInt:
		switch target.Kind {
		case core.ConstU8Type:
			return core.Constant{Kind: core.ConstU8, Uint: uint64(uint8(c.Int))}, true
		case core.ConstU16Type:
			return core.Constant{Kind: core.ConstU16, Uint: uint64(uint16(c.Int))}, true
		case core.ConstU32Type:
			return core.Constant{Kind: core.ConstU32, Uint: uint64(uint32(c.Int))}, true
		case core.ConstU64Type:
			return core.Constant{Kind: core.ConstU64, Uint: c.Int}, true
		case core.ConstI8Type:
			return core.Constant{Kind: core.ConstI8, Int: int64(int8(c.Int))}, true
		case core.ConstI16Type:
			return core.Constant{Kind: core.ConstI16, Int: int64(int16(c.Int))}, true
		case core.ConstI32Type:
			return core.Constant{Kind: core.ConstI32, Int: int64(int32(c.Int))}, true
		case core.ConstI64Type:
			return core.Constant{Kind: core.ConstI64, Int: int64(c.Int)}, true
		case core.ConstF32Type:
			return core.Constant{Kind: core.ConstF32, Float: float64(float32(c.Int))}, true
		case core.ConstF64Type:
			return core.Constant{Kind: core.ConstF64, Float: float64(c.Int)}, true
		}
	case c.Kind == core.RawFloat:
		switch target.Kind {
		case core.ConstF32Type:
			return core.Constant{Kind: core.ConstF32, Float: float64(float32(c.Float))}, true
		case core.ConstF64Type:
			return core.Constant{Kind: core.ConstF64, Float: c.Float}, true
		}
	}
	return core.Constant{}, false
}
