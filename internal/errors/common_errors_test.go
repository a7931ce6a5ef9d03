package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "schema error type", errType: ErrTypeSchema, expected: "SCHEMA"},
		{name: "io error type", errType: ErrTypeIO, expected: "IO"},
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    NewAppValidationError("threshold out of range"),
			wantMessage: "[VALIDATION] threshold out of range",
		},
		{
			name:        "error with cause",
			appError:    NewConfigError("load config", fmt.Errorf("bad yaml")),
			wantMessage: "[CONFIG] load config: bad yaml",
		},
		{
			name:        "schema error names the column",
			appError:    NewSchemaError("filter", "COLPROT"),
			wantMessage: `[SCHEMA] filter: column "COLPROT" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewIOError("open", "missing.csv", os.ErrNotExist)

	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "missing.csv")
	assert.Equal(t, "missing.csv", err.Context["path"])
}

func TestNewIOError_PathNotRepeated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")
	_, openErr := os.Open(path)
	require.Error(t, openErr)

	tests := []struct {
		name  string
		path  string
		count int
	}{
		{name: "same path", path: path, count: 1},
		{name: "other path keeps the cause", path: "other.csv", count: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewIOError("open", tt.path, openErr)
			assert.Equal(t, tt.count, strings.Count(err.Error(), path), "got %v", err)
			assert.True(t, errors.Is(err, fs.ErrNotExist))
		})
	}

	var pathErr *fs.PathError
	require.True(t, errors.As(openErr, &pathErr))
	assert.Equal(t, "[IO] open "+path+": "+pathErr.Err.Error(), NewIOError("open", path, openErr).Error())
}

func TestIsSchemaError(t *testing.T) {
	schemaErr := NewSchemaError("label_encode", "DX_bl")
	wrapped := fmt.Errorf("step failed: %w", schemaErr)

	assert.True(t, IsSchemaError(schemaErr))
	assert.True(t, IsSchemaError(wrapped))
	assert.False(t, IsIOError(wrapped))
	assert.False(t, IsSchemaError(errors.New("plain")))
	assert.False(t, IsSchemaError(nil))
}

func TestColumn(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewSchemaError("static_drop", "SITE"))
	require.True(t, IsSchemaError(wrapped))

	assert.Equal(t, "SITE", Column(wrapped))
	assert.Equal(t, "", Column(NewIOError("read", "x.csv", nil)))
	assert.Equal(t, "", Column(errors.New("plain")))
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeIO, Message: "write"}
	err.WithContext("path", "out.csv").WithContext("bytes", 10)

	assert.Equal(t, "out.csv", err.Context["path"])
	assert.Equal(t, 10, err.Context["bytes"])
}
