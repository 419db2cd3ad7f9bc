package semantics

import "github.com/lumen-lang/lumen/internal/errors"

var typeErrorCodes = map[TypeErrorKind]string{
	UndefinedNameError:                errors.CodeUndefinedName,
	MismatchError:                     errors.CodeMismatch,
	UnexpectedFunctionError:           errors.CodeUnexpectedFunction,
	ExpectedUniverseError:             errors.CodeExpectedUniverse,
	ArgAppliedToNonFunctionError:      errors.CodeArgAppliedToNonFunction,
	FunctionParamNeedsAnnotationError: errors.CodeFunctionParamNeedsAnn,
	UnableToElaborateHoleError:        errors.CodeUnableToElaborateHole,
	AmbiguousIntLiteralError:          errors.CodeAmbiguousIntLiteral,
	AmbiguousFloatLiteralError:        errors.CodeAmbiguousFloatLiteral,
	InternalTypeError:                 errors.CodeInternal,
}

// Diagnostic reduces the error to a structured diagnostic. Internal errors
// surfacing through a TypeError keep bug severity: seeing one means the
// elaborator broke its own scope discipline.
func (e *TypeError) Diagnostic() *errors.Diagnostic {
	if e.Kind == InternalTypeError {
		return e.Internal.Diagnostic()
	}

	code, ok := typeErrorCodes[e.Kind]
	if !ok {
		code = errors.CodeGeneric
	}

	d := errors.New(code, "typecheck", e.Error(), e.Span)
	if e.Found != nil {
		d.Note("found", e.Found.String())
	}
	if e.Expected != nil {
		d.Note("expected", e.Expected.String())
	}
	if h := e.Name.Hint(); h != "" {
		d.Note("name", e.Name.String())
	}
	return d
}

// Diagnostic reduces the internal error to a bug-severity diagnostic.
func (e *InternalError) Diagnostic() *errors.Diagnostic {
	return errors.Bug(errors.CodeInternal, "typecheck", e.Error(), e.Span)
}
