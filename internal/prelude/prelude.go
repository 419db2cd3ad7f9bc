// Package prelude embeds the standard prelude and loads it into a typing
// context for the REPL and the module checker.
package prelude

import (
	_ "embed"
	"fmt"

	"github.com/lumen-lang/lumen/internal/core"
	"github.com/lumen-lang/lumen/internal/desugar"
	"github.com/lumen-lang/lumen/internal/parser"
	"github.com/lumen-lang/lumen/internal/semantics"
)

//go:embed prelude.lum
var source []byte

// Source returns the prelude's source text.
func Source() []byte { return source }

// Load parses, desugars and elaborates the prelude, returning the
// elaborated module and a context carrying its definitions. A failure here
// means the prelude shipped broken.
func Load() (*core.Module, *core.Context, error) {
	concrete, err := parser.ParseSource(source, "prelude.lum")
	if err != nil {
		return nil, nil, fmt.Errorf("prelude: %w", err)
	}
	raw, err := desugar.Module(concrete)
	if err != nil {
		return nil, nil, fmt.Errorf("prelude: %w", err)
	}
	module, ctx, terr := semantics.CheckModuleIn(core.NewContext(), raw)
	if terr != nil {
		return nil, nil, fmt.Errorf("prelude: %w", terr)
	}
	return module, ctx, nil
}
