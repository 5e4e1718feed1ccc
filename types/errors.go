package types

import "fmt"

// ErrorKind enumerates the diagnostic kinds surfaced by the compiler (§7).
type ErrorKind int

const (
	ErrUnknownToken ErrorKind = iota
	ErrSyntaxError
	ErrUndefinedIdentifier
	ErrNameInUse
	ErrUndefinedType
	ErrTypeMismatch
	ErrInvalidRefQualifier
	ErrMissingReturn
	ErrUnknownLibrary
	ErrUnknownFunction
	ErrVoidArgument
	ErrNonObjectDelete
	ErrNonObjectNew
	ErrLinkerUnset
)

var errorKindNames = map[ErrorKind]string{
	ErrUnknownToken:        "UnknownToken",
	ErrSyntaxError:         "SyntaxError",
	ErrUndefinedIdentifier: "UndefinedIdentifier",
	ErrNameInUse:           "NameInUse",
	ErrUndefinedType:       "UndefinedType",
	ErrTypeMismatch:        "TypeMismatch",
	ErrInvalidRefQualifier: "InvalidRefQualifier",
	ErrMissingReturn:       "MissingReturn",
	ErrUnknownLibrary:      "UnknownLibrary",
	ErrUnknownFunction:     "UnknownFunction",
	ErrVoidArgument:        "VoidArgument",
	ErrNonObjectDelete:     "NonObjectDelete",
	ErrNonObjectNew:        "NonObjectNew",
	ErrLinkerUnset:         "LinkerUnset",
}

func (k ErrorKind) String() string {
	if n, ok := errorKindNames[k]; ok {
		return n
	}
	return "UnknownError"
}

// CompileError is one accumulated diagnostic, carrying source coordinates
// so the front end can print a caret under the offending token.
type CompileError struct {
	Kind    ErrorKind
	Line    int
	Column  int
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Message)
}

// NewError constructs a CompileError at the given source position.
func NewError(kind ErrorKind, line, column int, format string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Line: line, Column: column, Message: fmt.Sprintf(format, args...)}
}
