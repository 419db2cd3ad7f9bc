// Package testutil provides utilities for golden file testing.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// UpdateGoldens controls whether to update golden files.
// Set via environment variable: UPDATE_GOLDENS=true go test ./...
var UpdateGoldens = os.Getenv("UPDATE_GOLDENS") == "true"

// AssertGolden compares got against testdata/<name>.golden, rewriting the
// file instead when UPDATE_GOLDENS is set. Trailing newlines are ignored so
// editors that add a final newline don't break tests.
func AssertGolden(t *testing.T, name string, got string) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")

	if UpdateGoldens {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create testdata dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("update golden %s: %v", path, err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s (run with UPDATE_GOLDENS=true to create): %v", path, err)
	}

	wantStr := strings.TrimRight(string(want), "\n")
	gotStr := strings.TrimRight(got, "\n")
	if wantStr == gotStr {
		return
	}

	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(wantStr),
		B:        difflib.SplitLines(gotStr),
		FromFile: path,
		ToFile:   "got",
		Context:  3,
	})
	t.Errorf("golden mismatch for %s:\n%s", name, diff)
}
