package importer

import (
	"errors"
	"fmt"
)

// ImportErrorCode categorizes import failures. Every failure is fatal for
// the whole pass; nothing is retried.
type ImportErrorCode string

const (
	// ErrCodeUnsupportedValueKind indicates a constant value's runtime
	// tag has no IR representation.
	ErrCodeUnsupportedValueKind ImportErrorCode = "UNSUPPORTED_VALUE_KIND"

	// ErrCodeUnknownMethod indicates a method invocation names a method
	// absent from the receiver's class method table.
	ErrCodeUnknownMethod ImportErrorCode = "UNKNOWN_METHOD"

	// ErrCodeDuplicateSymbol indicates two distinct source entities
	// would synthesize the same qualified symbol name.
	ErrCodeDuplicateSymbol ImportErrorCode = "DUPLICATE_SYMBOL"

	// ErrCodeCyclicResolution indicates a cycle through a value kind the
	// instance placeholder mechanism cannot break (e.g. a tuple that
	// reaches itself).
	ErrCodeCyclicResolution ImportErrorCode = "CYCLIC_RESOLUTION"

	// ErrCodeBadOperand indicates a method-body instruction references a
	// value index outside the method's value space.
	ErrCodeBadOperand ImportErrorCode = "BAD_OPERAND"
)

// ImportError is a structured import failure with enough context to
// diagnose the offending symbol, class, or method.
type ImportError struct {
	Code    ImportErrorCode
	Message string

	// Symbol is the offending qualified symbol, if any.
	Symbol string

	// Class is the qualified name of the involved class, if any.
	Class string

	// Method is the involved method name, if any.
	Method string
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	switch {
	case e.Class != "" && e.Method != "":
		return fmt.Sprintf("%s: %s (class=%s, method=%s)", e.Code, e.Message, e.Class, e.Method)
	case e.Class != "":
		return fmt.Sprintf("%s: %s (class=%s)", e.Code, e.Message, e.Class)
	case e.Symbol != "":
		return fmt.Sprintf("%s: %s (symbol=%s)", e.Code, e.Message, e.Symbol)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// NewUnsupportedValueKindError reports a value tag with no IR mapping.
func NewUnsupportedValueKindError(kind string, context string) *ImportError {
	return &ImportError{
		Code:    ErrCodeUnsupportedValueKind,
		Message: fmt.Sprintf("value kind %q has no IR representation in %s", kind, context),
	}
}

// NewUnknownMethodError reports a method missing from a class's table.
func NewUnknownMethodError(class, method string) *ImportError {
	return &ImportError{
		Code:    ErrCodeUnknownMethod,
		Message: "method not found in receiver's class method table",
		Class:   class,
		Method:  method,
	}
}

// NewDuplicateSymbolError reports a symbol collision between distinct
// source entities.
func NewDuplicateSymbolError(symbol string) *ImportError {
	return &ImportError{
		Code:    ErrCodeDuplicateSymbol,
		Message: "distinct definitions synthesize the same qualified name",
		Symbol:  symbol,
	}
}

// NewCyclicResolutionError reports a cycle the placeholder mechanism
// cannot apply to.
func NewCyclicResolutionError(kind string) *ImportError {
	return &ImportError{
		Code:    ErrCodeCyclicResolution,
		Message: fmt.Sprintf("cycle through %s value cannot be broken by a back-reference", kind),
	}
}

// NewBadOperandError reports an operand index outside a method body's
// value space.
func NewBadOperandError(symbol string, index, width int) *ImportError {
	return &ImportError{
		Code:    ErrCodeBadOperand,
		Message: fmt.Sprintf("operand index %d is outside the value space of %d values", index, width),
		Symbol:  symbol,
	}
}

// IsUnsupportedValueKind reports whether err is an UNSUPPORTED_VALUE_KIND
// import error. Uses errors.As to handle wrapped errors.
func IsUnsupportedValueKind(err error) bool { return hasCode(err, ErrCodeUnsupportedValueKind) }

// IsUnknownMethod reports whether err is an UNKNOWN_METHOD import error.
func IsUnknownMethod(err error) bool { return hasCode(err, ErrCodeUnknownMethod) }

// IsDuplicateSymbol reports whether err is a DUPLICATE_SYMBOL import error.
func IsDuplicateSymbol(err error) bool { return hasCode(err, ErrCodeDuplicateSymbol) }

// IsCyclicResolution reports whether err is a CYCLIC_RESOLUTION import error.
func IsCyclicResolution(err error) bool { return hasCode(err, ErrCodeCyclicResolution) }

// IsBadOperand reports whether err is a BAD_OPERAND import error.
func IsBadOperand(err error) bool { return hasCode(err, ErrCodeBadOperand) }

func hasCode(err error, code ImportErrorCode) bool {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie.Code == code
	}
	return false
}
