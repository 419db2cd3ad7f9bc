package semantics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-lang/lumen/internal/core"
	"github.com/lumen-lang/lumen/internal/desugar"
	"github.com/lumen-lang/lumen/internal/names"
	"github.com/lumen-lang/lumen/internal/parser"
	"github.com/lumen-lang/lumen/testutil"
)

func parseModule(t *testing.T, src string) *core.RawModule {
	t.Helper()
	concrete, err := parser.ParseSource([]byte(src), "test.lum")
	require.NoError(t, err)
	raw, err := desugar.Module(concrete)
	require.NoError(t, err)
	return raw
}

const preludeSrc = `
module prelude;

id : (a : Type) -> a -> a;
id = \a x => x;

const : (a : Type) -> (b : Type) -> a -> b -> a;
const = \a b x y => x;

flip : (a : Type) -> (b : Type) -> (c : Type) -> (a -> b -> c) -> (b -> a -> c);
flip = \a b c f x y => f y x;

compose : (a : Type) -> (b : Type) -> (c : Type) -> (b -> c) -> (a -> b) -> (a -> c);
compose = \a b c f g x => f (g x);
`

func TestCheckModulePrelude(t *testing.T) {
	module, err := CheckModule(parseModule(t, preludeSrc))
	require.Nil(t, err)

	require.Len(t, module.Definitions, 4)

	// Every definition's binders come out explicitly annotated: the bodies
	// were written with bare parameters, so the annotations must have been
	// pushed in from the claims.
	for _, def := range module.Definitions {
		lam, ok := def.Term.(*core.Lam)
		require.True(t, ok, "%s must elaborate to a lambda", def.Name)
		require.NotNil(t, lam.Scope.Ann, "%s lost its parameter annotation", def.Name)
		_, ok = def.Ann.(*core.PiValue)
		assert.True(t, ok, "%s must have a Pi type", def.Name)
	}
}

func TestCheckModulePreludeGolden(t *testing.T) {
	module, err := CheckModule(parseModule(t, preludeSrc))
	require.Nil(t, err)
	testutil.AssertGolden(t, "prelude_elaborated", module.String()+"\n")
}

func TestCheckModuleLaterDefinitionsSeeEarlierOnes(t *testing.T) {
	module, err := CheckModule(parseModule(t, `
module m;
t = Type;
u = t;
`))
	require.Nil(t, err)
	require.Len(t, module.Definitions, 2)

	// u's inferred type is t's type.
	assert.True(t, core.AlphaEqValue(&core.UniverseValue{Level: 1}, module.Definitions[1].Ann))
}

func TestCheckModuleUsesEarlierDefinitionsDefinitionally(t *testing.T) {
	// `ty` must unfold to Type when used as a type annotation.
	module, err := CheckModule(parseModule(t, `
module m;
ty = Type;
id : (a : ty) -> a -> a;
id = \a x => x;
`))
	require.Nil(t, err)
	require.Len(t, module.Definitions, 2)
}

func TestCheckModuleInferredAnnotation(t *testing.T) {
	module, err := CheckModule(parseModule(t, `
module m;
f = \a : Type => a;
`))
	require.Nil(t, err)

	want := mustNormalize(t, core.NewContext(), "(a : Type) -> Type")
	assert.True(t, core.AlphaEqValue(want, module.Definitions[0].Ann))
}

func TestCheckModuleMismatchAborts(t *testing.T) {
	_, err := CheckModule(parseModule(t, `
module m;
x : Char;
x = "hi";
`))
	require.NotNil(t, err)
	assert.Equal(t, MismatchError, err.Kind)
}

func TestCheckModuleUndefinedNameAborts(t *testing.T) {
	_, err := CheckModule(parseModule(t, `
module m;
x = missing;
`))
	require.NotNil(t, err)
	assert.Equal(t, UndefinedNameError, err.Kind)
}

func TestCheckModuleClaimWithoutDefinition(t *testing.T) {
	// An unmatched claim desugars to a hole body, which cannot be checked.
	_, err := CheckModule(parseModule(t, `
module m;
f : Type -> Type;
`))
	require.NotNil(t, err)
	assert.Equal(t, UnableToElaborateHoleError, err.Kind)
}

func TestCheckModuleInThreadsContext(t *testing.T) {
	first := parseModule(t, `
module first;
t = Type;
`)
	second := parseModule(t, `
module second;
u = t;
`)

	_, ctx, err := CheckModuleIn(core.NewContext(), first)
	require.Nil(t, err)
	_, ctx, err = CheckModuleIn(ctx, second)
	require.Nil(t, err)

	require.NotNil(t, ctx.Lookup(names.User("u")))
	require.NotNil(t, ctx.Lookup(names.User("t")))
}

func TestCheckModuleShadowing(t *testing.T) {
	// Redefining a name shadows the earlier definition for later uses.
	module, err := CheckModule(parseModule(t, `
module m;
x = Type;
x = Type 1;
y = x;
`))
	require.Nil(t, err)

	// y : Type 2, the type of the latest x.
	assert.True(t, core.AlphaEqValue(&core.UniverseValue{Level: 2}, module.Definitions[2].Ann))
}
