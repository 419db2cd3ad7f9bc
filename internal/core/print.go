package core

import (
	"fmt"
	"strings"

	"github.com/lumen-lang/lumen/internal/names"
)

// display renders a binder name for printing. Generated names print their
// hint so that closed terms read the way the user wrote them; the numeric
// identity only shows when there is no hint to fall back on.
func display(n names.Name) string {
	if h := n.Hint(); h != "" {
		return h
	}
	return n.String()
}

// String renders an elaborated module as claim/definition pairs.
func (m *Module) String() string {
	parts := make([]string, len(m.Definitions))
	for i, def := range m.Definitions {
		parts[i] = fmt.Sprintf("%s : %s;\n%s = %s;", def.Name, def.Ann, def.Name, def.Term)
	}
	return strings.Join(parts, "\n\n")
}
