package errors

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-lang/lumen/internal/ast"
)

func span() ast.Span {
	return ast.Span{
		Start: ast.Pos{Line: 1, Column: 3, File: "m.lum", Offset: 2},
		End:   ast.Pos{Line: 1, Column: 7, File: "m.lum", Offset: 6},
	}
}

func TestDiagnosticIsAnError(t *testing.T) {
	d := New(CodeMismatch, "typecheck", "type mismatch", span())
	assert.Equal(t, "TC002: m.lum:1:3: type mismatch", d.Error())

	noLoc := New(CodeParse, "parse", "oops", ast.Span{})
	assert.Equal(t, "PAR001: oops", noLoc.Error())
}

func TestFindThroughWrapping(t *testing.T) {
	d := New(CodeUndefinedName, "typecheck", "undefined name: x", span())

	// The diagnostic must survive further error context.
	wrapped := fmt.Errorf("checking module: %w", error(d))
	got, ok := Find(wrapped)
	require.True(t, ok)
	assert.Equal(t, d, got)
}

func TestFindOnPlainError(t *testing.T) {
	_, ok := Find(fmt.Errorf("boom"))
	assert.False(t, ok)
}

func TestGeneric(t *testing.T) {
	d := Generic("manifest", fmt.Errorf("no such file"))
	assert.Equal(t, CodeGeneric, d.Code)
	assert.Equal(t, SeverityError, d.Severity)
	assert.Equal(t, "no such file", d.Message)
}

func TestBugSeverity(t *testing.T) {
	d := Bug(CodeInternal, "typecheck", "unsubstituted index", ast.Span{})
	assert.Equal(t, SeverityBug, d.Severity)
}

func TestNoteChaining(t *testing.T) {
	d := New(CodeMismatch, "typecheck", "type mismatch", span()).
		Note("found", "Type 1").
		Note("expected", "Type")
	assert.Equal(t, "Type 1", d.Notes["found"])
	assert.Equal(t, "Type", d.Notes["expected"])
}

func TestJSON(t *testing.T) {
	d := New(CodeUndefinedName, "typecheck", "undefined name: x", span()).Note("name", "x")

	out, err := d.JSON(true)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, SchemaVersion, decoded["schema"])
	assert.Equal(t, "TC001", decoded["code"])
	assert.Equal(t, "typecheck", decoded["phase"])
	assert.Equal(t, "error", decoded["severity"])
	require.Contains(t, decoded, "span")
	require.Contains(t, decoded, "notes")
}

func TestJSONOmitsZeroSpan(t *testing.T) {
	d := New(CodeParse, "parse", "oops", ast.Span{})
	out, err := d.JSON(true)
	require.NoError(t, err)
	assert.NotContains(t, out, "span")
	assert.NotContains(t, out, "notes")
}
