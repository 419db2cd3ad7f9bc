package semantics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumen-lang/lumen/internal/core"
	"github.com/lumen-lang/lumen/internal/desugar"
	"github.com/lumen-lang/lumen/internal/parser"
)

// parseRaw parses and desugars a term.
func parseRaw(t *testing.T, src string) core.RawTerm {
	t.Helper()
	concrete, err := parser.ParseTermSource([]byte(src), "test.lum")
	require.NoError(t, err, "parse %q", src)
	raw, err := desugar.Term(concrete)
	require.NoError(t, err, "desugar %q", src)
	return raw
}

// parseCore parses a term straight into the core representation. Only valid
// for sources without holes or numeric literals; used by normalizer tests,
// which operate below elaboration.
func parseCore(t *testing.T, src string) core.Term {
	t.Helper()
	return rawToCore(t, parseRaw(t, src))
}

var rawTypeToCoreType = map[core.RawConstKind]core.ConstKind{
	core.RawStringType: core.ConstStringType,
	core.RawCharType:   core.ConstCharType,
	core.RawU8Type:     core.ConstU8Type,
	core.RawU16Type:    core.ConstU16Type,
	core.RawU32Type:    core.ConstU32Type,
	core.RawU64Type:    core.ConstU64Type,
	core.RawI8Type:     core.ConstI8Type,
	core.RawI16Type:    core.ConstI16Type,
	core.RawI32Type:    core.ConstI32Type,
	core.RawI64Type:    core.ConstI64Type,
	core.RawF32Type:    core.ConstF32Type,
	core.RawF64Type:    core.ConstF64Type,
}

func rawToCore(t *testing.T, raw core.RawTerm) core.Term {
	t.Helper()
	switch raw := raw.(type) {
	case *core.RawAnn:
		return &core.Ann{Meta: raw.Meta, Expr: rawToCore(t, raw.Expr), Type: rawToCore(t, raw.Type)}
	case *core.RawUniverse:
		return &core.Universe{Meta: raw.Meta, Level: raw.Level}
	case *core.RawVar:
		return &core.Var{Meta: raw.Meta, Var: raw.Var}
	case *core.RawConst:
		kind, ok := rawTypeToCoreType[raw.Const.Kind]
		require.True(t, ok, "literal %s has no core form before elaboration", raw)
		return &core.Const{Meta: raw.Meta, Const: core.Constant{Kind: kind}}
	case *core.RawPi:
		return &core.Pi{Meta: raw.Meta, Scope: core.Scope{
			Binder: raw.Scope.Binder,
			Ann:    rawToCore(t, raw.Scope.Ann),
			Body:   rawToCore(t, raw.Scope.Body),
		}}
	case *core.RawLam:
		return &core.Lam{Meta: raw.Meta, Scope: core.Scope{
			Binder: raw.Scope.Binder,
			Ann:    rawToCore(t, raw.Scope.Ann),
			Body:   rawToCore(t, raw.Scope.Body),
		}}
	case *core.RawApp:
		return &core.App{Meta: raw.Meta, Fn: rawToCore(t, raw.Fn), Arg: rawToCore(t, raw.Arg)}
	}
	t.Fatalf("cannot convert %T to a core term", raw)
	return nil
}

// coreToRaw re-embeds an elaborated term as raw syntax, for checking that
// elaboration outputs re-infer to the same type.
func coreToRaw(t *testing.T, term core.Term) core.RawTerm {
	t.Helper()
	switch term := term.(type) {
	case *core.Ann:
		return &core.RawAnn{Meta: term.Meta, Expr: coreToRaw(t, term.Expr), Type: coreToRaw(t, term.Type)}
	case *core.Universe:
		return &core.RawUniverse{Meta: term.Meta, Level: term.Level}
	case *core.Var:
		return &core.RawVar{Meta: term.Meta, Var: term.Var}
	case *core.Const:
		for rawKind, coreKind := range rawTypeToCoreType {
			if coreKind == term.Const.Kind {
				return &core.RawConst{Meta: term.Meta, Const: core.RawConstant{Kind: rawKind}}
			}
		}
		t.Fatalf("cannot re-embed literal %s as raw syntax", term)
		return nil
	case *core.Pi:
		return &core.RawPi{Meta: term.Meta, Scope: core.RawScope{
			Binder: term.Scope.Binder,
			Ann:    coreToRaw(t, term.Scope.Ann),
			Body:   coreToRaw(t, term.Scope.Body),
		}}
	case *core.Lam:
		return &core.RawLam{Meta: term.Meta, Scope: core.RawScope{
			Binder: term.Scope.Binder,
			Ann:    coreToRaw(t, term.Scope.Ann),
			Body:   coreToRaw(t, term.Scope.Body),
		}}
	case *core.App:
		return &core.RawApp{Meta: term.Meta, Fn: coreToRaw(t, term.Fn), Arg: coreToRaw(t, term.Arg)}
	}
	t.Fatalf("cannot convert %T to a raw term", term)
	return nil
}

// mustNormalize normalizes source text in a context.
func mustNormalize(t *testing.T, ctx *core.Context, src string) core.Value {
	t.Helper()
	value, err := Normalize(ctx, parseCore(t, src))
	require.NoError(t, err, "normalize %q", src)
	return value
}

// mustInfer infers the type of source text in the empty context.
func mustInfer(t *testing.T, src string) (core.Term, core.Value) {
	t.Helper()
	elab, ty, err := Infer(core.NewContext(), parseRaw(t, src))
	if err != nil {
		t.Fatalf("infer %q: %v", src, err)
	}
	return elab, ty
}

// assertInfersType checks that src infers a type α-equal to the
// normalization of want.
func assertInfersType(t *testing.T, src, want string) {
	t.Helper()
	_, ty := mustInfer(t, src)
	wantValue := mustNormalize(t, core.NewContext(), want)
	if !core.AlphaEqValue(wantValue, ty) {
		t.Errorf("inferred type of %q:\n  want %s\n  got  %s", src, wantValue, ty)
	}
}

// inferError runs inference expecting a failure.
func inferError(t *testing.T, src string) *TypeError {
	t.Helper()
	_, _, err := Infer(core.NewContext(), parseRaw(t, src))
	require.NotNil(t, err, "expected infer %q to fail", src)
	return err
}
