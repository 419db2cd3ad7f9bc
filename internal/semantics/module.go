package semantics

import (
	"github.com/lumen-lang/lumen/internal/core"
	"github.com/lumen-lang/lumen/internal/names"
)

// CheckModule elaborates a raw module starting from the empty context. Each
// definition sees all earlier ones as let bindings; the first failure aborts
// the module.
func CheckModule(module *core.RawModule) (*core.Module, *TypeError) {
	elab, _, err := CheckModuleIn(core.NewContext(), module)
	return elab, err
}

// CheckModuleIn elaborates a raw module under an ambient context (for
// example one carrying the prelude) and also returns the extended context,
// so callers can thread definitions across modules.
func CheckModuleIn(ctx *core.Context, module *core.RawModule) (*core.Module, *core.Context, *TypeError) {
	definitions := make([]core.Definition, 0, len(module.Definitions))

	for _, def := range module.Definitions {
		var (
			term core.Term
			ann  core.Type
			err  *TypeError
		)
		if _, hole := def.Ann.(*core.RawHole); hole {
			// No declared type: infer one from the body.
			term, ann, err = Infer(ctx, def.Term)
			if err != nil {
				return nil, nil, err
			}
		} else {
			// Elaborate the declared type, normalize it, then check the
			// body against it.
			elabAnn, _, aerr := InferUniverse(ctx, def.Ann)
			if aerr != nil {
				return nil, nil, aerr
			}
			annValue, nerr := Normalize(ctx, elabAnn)
			if nerr != nil {
				return nil, nil, wrapInternal(nerr)
			}
			term, err = Check(ctx, def.Term, annValue)
			if err != nil {
				return nil, nil, err
			}
			ann = annValue
		}

		ctx = ctx.ExtendLet(names.User(def.Name), ann, term)
		definitions = append(definitions, core.Definition{Name: def.Name, Term: term, Ann: ann})
	}

	return &core.Module{Name: module.Name, Definitions: definitions}, ctx, nil
}
