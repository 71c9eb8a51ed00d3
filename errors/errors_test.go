package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCode_String(t *testing.T) {
	tests := []struct {
		code     Code
		expected string
	}{
		{CodeNoError, "no_error"},
		{CodeBadArgument, "bad_argument"},
		{CodeUnknownFile, "unknown_file"},
		{CodeCanceledByUser, "canceled_by_user"},
		{CodeThirdPartyLibException, "third_party_lib_exception"},
		{CodeConsoleError, "console_error"},
		{Code(999), "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			if got := test.code.String(); got != test.expected {
				t.Errorf("expected %s, got %s", test.expected, got)
			}
		})
	}
}

func TestCode_Message(t *testing.T) {
	tests := []struct {
		name     string
		code     Code
		expected string
	}{
		{"success has no message", CodeNoError, ""},
		{"unknown value has no message", Code(999), ""},
		{"bad argument", CodeBadArgument, "bad argument (internal)"},
		{"unknown file", CodeUnknownFile, "unknown file"},
		{"wrong file type", CodeWrongFileType, "wrong file type (check header)"},
		{"canceled", CodeCanceledByUser, "process canceled by user"},
		{"malformed", CodeMalformedFile, "malformed file"},
		{"broken dependency", CodeBrokenDependency, "dependent entities missing (see Console)"},
		{"third-party exception", CodeThirdPartyLibException, "the third-party library in charge of saving/loading the file has thrown an exception"},
		{"console error", CodeConsoleError, "see console"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.code.Message(); got != test.expected {
				t.Errorf("expected %q, got %q", test.expected, got)
			}
		})
	}
}

func TestCode_Warning(t *testing.T) {
	if !CodeCanceledByUser.Warning() {
		t.Error("cancellation must be classified as a warning")
	}
	for _, c := range []Code{CodeNoError, CodeBadArgument, CodeMalformedFile, CodeConsoleError} {
		if c.Warning() {
			t.Errorf("%s must not be classified as a warning", c)
		}
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"nil error", nil, CodeNoError},
		{"plain error", errors.New("boom"), CodeConsoleError},
		{"coded error", New(CodeMalformedFile, "truncated record"), CodeMalformedFile},
		{"wrapped coded error", fmt.Errorf("outer: %w", New(CodeReading, "eof")), CodeReading},
		{"double wrapped", Wrap(Coded(CodeWriting, errors.New("disk full")), "Filter", "Save", "write points"), CodeWriting},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CodeOf(test.err); got != test.expected {
				t.Errorf("expected %s, got %s", test.expected, got)
			}
		})
	}
}

func TestCoded_NilStaysNil(t *testing.T) {
	if Coded(CodeReading, nil) != nil {
		t.Error("Coded(nil) must be nil")
	}
	if Wrap(nil, "c", "m", "a") != nil {
		t.Error("Wrap(nil) must be nil")
	}
	if WrapCoded(CodeReading, nil, "c", "m", "a") != nil {
		t.Error("WrapCoded(nil) must be nil")
	}
}

func TestWrapCoded_Format(t *testing.T) {
	err := WrapCoded(CodeWriting, errors.New("disk full"), "AsciiFilter", "Save", "write header")
	want := "AsciiFilter.Save: write header failed: disk full"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	if CodeOf(err) != CodeWriting {
		t.Errorf("expected code writing, got %s", CodeOf(err))
	}
}

func TestIsCanceled(t *testing.T) {
	if !IsCanceled(New(CodeCanceledByUser, "user aborted")) {
		t.Error("expected cancellation to be detected")
	}
	if IsCanceled(New(CodeReading, "eof")) {
		t.Error("reading error is not a cancellation")
	}
	if IsCanceled(nil) {
		t.Error("nil error is not a cancellation")
	}
}
