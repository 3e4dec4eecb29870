package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexingError(t *testing.T) {
	underlying := errors.New("underlying error")
	err := NewIndexingError("parse", underlying).
		WithFile("/src/foo.cpp").
		WithRecoverable(true)

	if err.Type != ErrorTypeIndexing {
		t.Errorf("Expected Type to be ErrorTypeIndexing, got %v", err.Type)
	}

	if err.FilePath != "/src/foo.cpp" {
		t.Errorf("Expected FilePath to be '/src/foo.cpp', got %s", err.FilePath)
	}

	if !errors.Is(err, underlying) {
		t.Errorf("Expected error to unwrap to underlying error")
	}

	if !err.IsRecoverable() {
		t.Errorf("Expected error to be marked as recoverable")
	}

	expectedMsg := "indexing parse failed for /src/foo.cpp: underlying error"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}

	noFile := NewIndexingError("resolve", underlying)
	if noFile.Error() != "indexing resolve failed: underlying error" {
		t.Errorf("Unexpected message without file: %q", noFile.Error())
	}
}

func TestParseError(t *testing.T) {
	underlying := errors.New("unreadable")
	err := NewParseError("/src/foo.cpp", 0, underlying)

	if err.Type != ErrorTypeParse {
		t.Errorf("Expected Type to be ErrorTypeParse, got %v", err.Type)
	}

	if err.Error() != "parse error in /src/foo.cpp: unreadable" {
		t.Errorf("Unexpected message: %q", err.Error())
	}

	withLine := NewParseError("/src/foo.cpp", 12, underlying)
	if withLine.Error() != "parse error at /src/foo.cpp:12: unreadable" {
		t.Errorf("Unexpected message: %q", withLine.Error())
	}

	if !errors.Is(withLine, underlying) {
		t.Errorf("Expected error to unwrap to underlying error")
	}
}

func TestFileError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"not exist", fs.ErrNotExist, ErrorTypeFileNotFound},
		{"path error", &fs.PathError{Op: "open", Path: "/nope", Err: fs.ErrNotExist}, ErrorTypeFileNotFound},
		{"permission", &os.PathError{Op: "open", Path: "/nope", Err: os.ErrPermission}, ErrorTypePermission},
		{"other", errors.New("is a directory"), ErrorTypeFileRead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewFileError("read", "/nope", tt.err)
			assert.Equal(t, tt.want, err.Type)
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), "file read failed for /nope")
		})
	}
}

func TestIdentityError(t *testing.T) {
	underlying := errors.New("no USR")
	err := NewIdentityError("a.cpp:3", underlying)

	assert.Equal(t, ErrorTypeIdentity, err.Type)
	assert.Equal(t, "identify", err.Operation)
	assert.True(t, err.IsRecoverable())
	assert.ErrorIs(t, err, underlying)
	assert.Equal(t, "identity identify failed for a.cpp:3: no USR", err.Error())
}

func TestConfigErrorAs(t *testing.T) {
	underlying := errors.New("must be >= 0")
	wrapped := fmt.Errorf("loading: %w", NewConfigError("num_threads", "-1", underlying))

	var cfgErr *ConfigError
	if !errors.As(wrapped, &cfgErr) {
		t.Fatalf("Expected errors.As to find ConfigError")
	}
	if cfgErr.Field != "num_threads" || cfgErr.Value != "-1" {
		t.Errorf("Unexpected field/value: %s/%s", cfgErr.Field, cfgErr.Value)
	}
	if !errors.Is(wrapped, underlying) {
		t.Errorf("Expected wrapped error to reach the underlying error")
	}
}

func TestMultiError(t *testing.T) {
	err1 := errors.New("error 1")
	err2 := errors.New("error 2")

	multi := NewMultiError([]error{err1, nil, err2})
	if len(multi.Errors) != 2 {
		t.Fatalf("Expected nil errors to be dropped, got %d", len(multi.Errors))
	}
	if !errors.Is(multi, err2) {
		t.Errorf("Expected errors.Is to search every error")
	}

	if NewMultiError(nil).ErrorOrNil() != nil {
		t.Errorf("Expected empty MultiError to collapse to nil")
	}
	if NewMultiError([]error{err1}).Error() != "error 1" {
		t.Errorf("Expected single error message to pass through")
	}
}
