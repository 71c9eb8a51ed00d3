// Package errors provides the closed file-I/O error taxonomy shared by all
// geoio filters and the load/save orchestrator. It includes the Code
// enumeration, helpers for attaching codes to Go errors, and consistent
// error wrapping across the system.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies the outcome of a load or save operation.
// It is a closed set: filters must not invent codes outside this list.
type Code int

const (
	// CodeNoError is the only success value.
	CodeNoError Code = iota
	// CodeBadArgument reports an invalid internal call (nil entity, empty path or filter).
	CodeBadArgument
	// CodeUnknownFile reports that no filter resolves the requested path or identifier.
	CodeUnknownFile
	// CodeWrongFileType reports a file header that doesn't match the expected format.
	CodeWrongFileType
	// CodeWriting reports a filesystem-level write failure.
	CodeWriting
	// CodeReading reports a filesystem-level read failure.
	CodeReading
	// CodeNoSave reports that nothing was applicable to save.
	CodeNoSave
	// CodeNoLoad reports that nothing was applicable to load.
	CodeNoLoad
	// CodeBadEntityType reports an entity/file type mismatch.
	CodeBadEntityType
	// CodeCanceledByUser reports a user-initiated abort.
	CodeCanceledByUser
	// CodeNotEnoughMemory reports an allocation failure during I/O.
	CodeNotEnoughMemory
	// CodeMalformedFile reports structurally invalid file content.
	CodeMalformedFile
	// CodeBrokenDependency reports referenced sibling entities that are missing.
	CodeBrokenDependency
	// CodeUnknownPlugin reports a recognized format whose producing plugin is absent.
	CodeUnknownPlugin
	// CodeThirdPartyLibFailure reports that an underlying codec library failed.
	CodeThirdPartyLibFailure
	// CodeThirdPartyLibException reports that an underlying codec library panicked.
	CodeThirdPartyLibException
	// CodeNotImplemented reports a filter feature stub.
	CodeNotImplemented
	// CodeConsoleError is the generic classification: detail already logged elsewhere.
	CodeConsoleError
)

// String returns the identifier-style name of the code.
func (c Code) String() string {
	switch c {
	case CodeNoError:
		return "no_error"
	case CodeBadArgument:
		return "bad_argument"
	case CodeUnknownFile:
		return "unknown_file"
	case CodeWrongFileType:
		return "wrong_file_type"
	case CodeWriting:
		return "writing"
	case CodeReading:
		return "reading"
	case CodeNoSave:
		return "no_save"
	case CodeNoLoad:
		return "no_load"
	case CodeBadEntityType:
		return "bad_entity_type"
	case CodeCanceledByUser:
		return "canceled_by_user"
	case CodeNotEnoughMemory:
		return "not_enough_memory"
	case CodeMalformedFile:
		return "malformed_file"
	case CodeBrokenDependency:
		return "broken_dependency"
	case CodeUnknownPlugin:
		return "unknown_plugin"
	case CodeThirdPartyLibFailure:
		return "third_party_lib_failure"
	case CodeThirdPartyLibException:
		return "third_party_lib_exception"
	case CodeNotImplemented:
		return "not_implemented"
	case CodeConsoleError:
		return "console_error"
	default:
		return "unknown"
	}
}

// Message returns the human-readable diagnostic phrase for the code.
// CodeNoError (and any unknown value) yields an empty string: no message
// is ever displayed for success.
func (c Code) Message() string {
	switch c {
	case CodeBadArgument:
		return "bad argument (internal)"
	case CodeUnknownFile:
		return "unknown file"
	case CodeWrongFileType:
		return "wrong file type (check header)"
	case CodeWriting:
		return "writing error (disk full/no access right?)"
	case CodeReading:
		return "reading error (no access right?)"
	case CodeNoSave:
		return "nothing to save"
	case CodeNoLoad:
		return "nothing to load"
	case CodeBadEntityType:
		return "incompatible entity/file types"
	case CodeCanceledByUser:
		return "process canceled by user"
	case CodeNotEnoughMemory:
		return "not enough memory"
	case CodeMalformedFile:
		return "malformed file"
	case CodeBrokenDependency:
		return "dependent entities missing (see Console)"
	case CodeUnknownPlugin:
		return "the file was written by a plugin but none of the loaded plugins can deserialize it"
	case CodeThirdPartyLibFailure:
		return "the third-party library in charge of saving/loading the file has failed to perform the operation"
	case CodeThirdPartyLibException:
		return "the third-party library in charge of saving/loading the file has thrown an exception"
	case CodeNotImplemented:
		return "this function is not implemented yet!"
	case CodeConsoleError:
		return "see console"
	default:
		return ""
	}
}

// Warning reports whether the code describes expected behavior rather than
// a fault. Diagnostics for such codes are emitted at warning severity.
func (c Code) Warning() bool {
	return c == CodeCanceledByUser
}

// CodedError attaches a Code to an underlying error, with optional
// component/operation context for diagnostics.
type CodedError struct {
	Code      Code
	Err       error
	Component string
	Operation string
}

// Error implements the error interface.
func (ce *CodedError) Error() string {
	if ce.Err != nil {
		return ce.Err.Error()
	}
	return ce.Code.Message()
}

// Unwrap returns the underlying error.
func (ce *CodedError) Unwrap() error {
	return ce.Err
}

// New creates a coded error from a plain message.
func New(code Code, msg string) error {
	return &CodedError{Code: code, Err: errors.New(msg)}
}

// Newf creates a coded error from a format string.
func Newf(code Code, format string, args ...any) error {
	return &CodedError{Code: code, Err: fmt.Errorf(format, args...)}
}

// Coded attaches a code to an existing error. A nil error stays nil.
func Coded(code Code, err error) error {
	if err == nil {
		return nil
	}
	return &CodedError{Code: code, Err: err}
}

// CodeOf extracts the Code carried by an error chain. A nil error maps to
// CodeNoError; a non-nil error without an embedded code maps to
// CodeConsoleError, the generic "detail already logged" classification.
func CodeOf(err error) Code {
	if err == nil {
		return CodeNoError
	}
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return CodeConsoleError
}

// IsCanceled reports whether the error chain carries a user cancellation.
func IsCanceled(err error) bool {
	return CodeOf(err) == CodeCanceledByUser
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w". The code carried by err (if any)
// is preserved through the chain.
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapCoded wraps an error with context and attaches a code in one step.
func WrapCoded(code Code, err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return &CodedError{
		Code:      code,
		Err:       Wrap(err, component, method, action),
		Component: component,
		Operation: method,
	}
}
