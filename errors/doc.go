// Package errors implements the closed error classification used across
// geoio file I/O operations.
//
// # Overview
//
// Every public load/save operation in geoio resolves to exactly one Code.
// CodeNoError is the only success value; every other code has a fixed
// human-readable diagnostic phrase returned by Code.Message. Filters signal
// failures by returning errors carrying a code (via Coded, New or
// WrapCoded); the orchestrator extracts the classification with CodeOf and
// emits the diagnostic through the logging collaborator.
//
// # Quick Start
//
// Return a coded error from a filter:
//
//	if header != magic {
//	    return errors.New(errors.CodeWrongFileType, "bad magic number")
//	}
//
// Wrap a lower-level failure with context:
//
//	if err := enc.Encode(doc); err != nil {
//	    return errors.WrapCoded(errors.CodeWriting, err, "NativeFilter", "Save", "encode document")
//	}
//
// Classify at the call site:
//
//	result, err := manager.LoadFromPath(path, params, "")
//	if errors.CodeOf(err) == errors.CodeCanceledByUser {
//	    // expected behavior, not a fault
//	}
//
// The classification system integrates with Go's standard error handling,
// supporting errors.Is, errors.As and wrapping chains.
package errors
