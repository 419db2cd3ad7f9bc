// Package pipeline wires the front end to the elaborator: source bytes in,
// elaborated modules and structured diagnostics out. The CLI and REPL both
// drive it.
package pipeline

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/lumen-lang/lumen/internal/core"
	"github.com/lumen-lang/lumen/internal/desugar"
	"github.com/lumen-lang/lumen/internal/errors"
	"github.com/lumen-lang/lumen/internal/manifest"
	"github.com/lumen-lang/lumen/internal/parser"
	"github.com/lumen-lang/lumen/internal/semantics"
)

// CheckSource parses, desugars and elaborates one module under the ambient
// context. All failures come back as diagnostics.
func CheckSource(ctx *core.Context, src []byte, filename string) (*core.Module, *core.Context, error) {
	concrete, err := parser.ParseSource(src, filename)
	if err != nil {
		return nil, nil, toDiagnostic(err)
	}

	raw, err := desugar.Module(concrete)
	if err != nil {
		return nil, nil, toDiagnostic(err)
	}

	module, extended, terr := semantics.CheckModuleIn(ctx, raw)
	if terr != nil {
		return nil, nil, terr.Diagnostic()
	}
	return module, extended, nil
}

// CheckFile elaborates a single module file.
func CheckFile(ctx *core.Context, path string) (*core.Module, *core.Context, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return CheckSource(ctx, src, path)
}

// CheckProject checks every module listed in a directory's lumen.yaml, in
// order, threading the context so later modules see earlier definitions.
func CheckProject(ctx *core.Context, dir string) ([]*core.Module, *core.Context, error) {
	m, err := manifest.LoadDir(dir)
	if err != nil {
		d := errors.Generic("manifest", err)
		d.Code = errors.CodeManifest
		return nil, nil, d
	}

	var modules []*core.Module
	for _, path := range m.ModulePaths() {
		module, extended, err := CheckFile(ctx, path)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		modules = append(modules, module)
		ctx = extended
	}
	return modules, ctx, nil
}

// InferTerm parses, desugars and infers a single term, as entered at the
// REPL. Returns the elaborated term and its type.
func InferTerm(ctx *core.Context, src []byte, filename string) (core.Term, core.Value, error) {
	concrete, err := parser.ParseTermSource(src, filename)
	if err != nil {
		return nil, nil, toDiagnostic(err)
	}

	raw, err := desugar.Term(concrete)
	if err != nil {
		return nil, nil, toDiagnostic(err)
	}

	term, ty, terr := semantics.Infer(ctx, raw)
	if terr != nil {
		return nil, nil, terr.Diagnostic()
	}
	return term, ty, nil
}

// NormalizeTerm infers a term (to make sure it is well-typed) and then
// normalizes it. Returns the normal form and the type.
func NormalizeTerm(ctx *core.Context, src []byte, filename string) (core.Value, core.Value, error) {
	term, ty, err := InferTerm(ctx, src, filename)
	if err != nil {
		return nil, nil, err
	}

	value, nerr := semantics.Normalize(ctx, term)
	if nerr != nil {
		var ierr *semantics.InternalError
		if stderrors.As(nerr, &ierr) {
			return nil, nil, ierr.Diagnostic()
		}
		return nil, nil, errors.Generic("normalize", nerr)
	}
	return value, ty, nil
}

// toDiagnostic reduces front-end errors to diagnostics with their phase's
// code and span.
func toDiagnostic(err error) error {
	var perr *parser.ParseError
	if stderrors.As(err, &perr) {
		return errors.New(errors.CodeParse, "parse", perr.Msg, perr.Span)
	}

	var derr *desugar.Error
	if stderrors.As(err, &derr) {
		code := errors.CodeDesugar
		if derr.Unimplemented {
			code = errors.CodeUnimplemented
		}
		return errors.New(code, "desugar", derr.Msg, derr.Span)
	}

	return errors.Generic("frontend", err)
}
