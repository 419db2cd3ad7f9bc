package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lumen-lang/lumen/internal/ast"
)

// ignoreSpans compares concrete syntax structurally, ignoring positions.
var ignoreSpans = cmpopts.IgnoreTypes(ast.Span{})

// mustParseTerm parses a term or fails the test.
func mustParseTerm(t *testing.T, src string) ast.Term {
	t.Helper()
	term, err := ParseTermSource([]byte(src), "test.lum")
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return term
}

// mustParseModule parses a module or fails the test.
func mustParseModule(t *testing.T, src string) *ast.Module {
	t.Helper()
	m, err := ParseSource([]byte(src), "test.lum")
	if err != nil {
		t.Fatalf("parse module: %v", err)
	}
	return m
}

// assertTermEq fails the test with a diff when the parsed term does not
// match the expected tree (spans ignored).
func assertTermEq(t *testing.T, want, got ast.Term) {
	t.Helper()
	if diff := cmp.Diff(want, got, ignoreSpans); diff != "" {
		t.Errorf("term mismatch (-want +got):\n%s", diff)
	}
}
