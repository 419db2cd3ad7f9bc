package semantics

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/core"
	"github.com/lumen-lang/lumen/internal/names"
)

// Two error families: InternalError for scope or typing discipline
// violations that indicate a bug in the elaborator itself, and TypeError for
// problems in the user's program. Internal errors convert into type errors
// so that drivers surface everything uniformly, but their appearance at all
// is a defect signal.

// InternalErrorKind enumerates normalizer bugs.
type InternalErrorKind string

const (
	UndefinedNameInternal        InternalErrorKind = "undefined_name"
	UnsubstitutedDebruijnIndex   InternalErrorKind = "unsubstituted_debruijn_index"
	ArgumentAppliedToNonFunction InternalErrorKind = "argument_applied_to_non_function"
)

// InternalError reports a violation of the invariants the type checker is
// supposed to maintain. It should never arise on well-typed input.
type InternalError struct {
	Kind  InternalErrorKind
	Span  ast.Span
	Name  names.Name
	Index int
}

func (e *InternalError) Error() string {
	switch e.Kind {
	case UndefinedNameInternal:
		return fmt.Sprintf("internal: undefined name %s during normalization", e.Name)
	case UnsubstitutedDebruijnIndex:
		return fmt.Sprintf("internal: unsubstituted De Bruijn index %d (%s) escaped its scope", e.Index, e.Name)
	case ArgumentAppliedToNonFunction:
		return "internal: argument applied to non-function during normalization"
	}
	return fmt.Sprintf("internal: %s", string(e.Kind))
}

// TypeError converts the internal error for uniform surfacing.
func (e *InternalError) TypeError() *TypeError {
	return &TypeError{Kind: InternalTypeError, Span: e.Span, Internal: e}
}

// TypeErrorKind enumerates user-facing elaboration errors.
type TypeErrorKind string

const (
	UndefinedNameError                TypeErrorKind = "undefined_name"
	MismatchError                     TypeErrorKind = "mismatch"
	UnexpectedFunctionError           TypeErrorKind = "unexpected_function"
	ExpectedUniverseError             TypeErrorKind = "expected_universe"
	ArgAppliedToNonFunctionError      TypeErrorKind = "arg_applied_to_non_function"
	FunctionParamNeedsAnnotationError TypeErrorKind = "function_param_needs_annotation"
	UnableToElaborateHoleError        TypeErrorKind = "unable_to_elaborate_hole"
	AmbiguousIntLiteralError          TypeErrorKind = "ambiguous_int_literal"
	AmbiguousFloatLiteralError        TypeErrorKind = "ambiguous_float_literal"
	InternalTypeError                 TypeErrorKind = "internal"
)

// TypeError is a user-facing elaboration error. Span always points at the
// offending region; ArgSpan is set for application errors, Found/Expected
// for mismatches.
type TypeError struct {
	Kind     TypeErrorKind
	Span     ast.Span
	ArgSpan  ast.Span
	Name     names.Name
	Found    core.Value
	Expected core.Value
	Internal *InternalError
}

func (e *TypeError) Error() string {
	switch e.Kind {
	case UndefinedNameError:
		return fmt.Sprintf("undefined name: %s", e.Name)
	case MismatchError:
		return fmt.Sprintf("type mismatch:\n  Expected: %s\n  Found:    %s", e.Expected, e.Found)
	case UnexpectedFunctionError:
		return fmt.Sprintf("found a function, but expected %s", e.Expected)
	case ExpectedUniverseError:
		return fmt.Sprintf("expected a universe, found a term of type %s", e.Found)
	case ArgAppliedToNonFunctionError:
		return fmt.Sprintf("cannot apply an argument to a term of type %s", e.Found)
	case FunctionParamNeedsAnnotationError:
		return fmt.Sprintf("parameter %s of this function needs a type annotation", e.Name)
	case UnableToElaborateHoleError:
		if e.Expected != nil {
			return fmt.Sprintf("unable to elaborate hole, expected %s", e.Expected)
		}
		return "unable to elaborate hole"
	case AmbiguousIntLiteralError:
		return "ambiguous integer literal: annotate it with a specific numeric type"
	case AmbiguousFloatLiteralError:
		return "ambiguous floating point literal: annotate it with a specific numeric type"
	case InternalTypeError:
		return e.Internal.Error()
	}
	return string(e.Kind)
}

func newUndefinedName(span ast.Span, name names.Name) *TypeError {
	return &TypeError{Kind: UndefinedNameError, Span: span, Name: name}
}

func newMismatch(span ast.Span, found, expected core.Value) *TypeError {
	return &TypeError{Kind: MismatchError, Span: span, Found: found, Expected: expected}
}

func newUnexpectedFunction(span ast.Span, expected core.Value) *TypeError {
	return &TypeError{Kind: UnexpectedFunctionError, Span: span, Expected: expected}
}

func newExpectedUniverse(span ast.Span, found core.Value) *TypeError {
	return &TypeError{Kind: ExpectedUniverseError, Span: span, Found: found}
}

func newArgAppliedToNonFunction(fnSpan, argSpan ast.Span, found core.Value) *TypeError {
	return &TypeError{Kind: ArgAppliedToNonFunctionError, Span: fnSpan, ArgSpan: argSpan, Found: found}
}

func newFunctionParamNeedsAnnotation(span ast.Span, name names.Name) *TypeError {
	return &TypeError{Kind: FunctionParamNeedsAnnotationError, Span: span, Name: name}
}

func newUnableToElaborateHole(span ast.Span, expected core.Value) *TypeError {
	return &TypeError{Kind: UnableToElaborateHoleError, Span: span, Expected: expected}
}

// wrapInternal converts a normalizer failure surfacing through the checker.
func wrapInternal(err error) *TypeError {
	if ie, ok := err.(*InternalError); ok {
		return ie.TypeError()
	}
	return &TypeError{Kind: InternalTypeError, Internal: &InternalError{Kind: InternalErrorKind(err.Error())}}
}
