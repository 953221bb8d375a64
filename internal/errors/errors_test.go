package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrStat,
		ErrFormat,
		ErrSurface,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "sample_interval must be positive",
			suggestion: "Use a duration like 200ms",
		},
		{
			name:       "stat error",
			code:       ErrStat,
			message:    "Unknown panel: bogus",
			suggestion: "",
		},
		{
			name:       "surface error",
			code:       ErrSurface,
			message:    "Debug window stopped unexpectedly",
			suggestion: "Run with STATOVERLAY_DEBUG=1 for a log",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name:          "message and suggestion",
			err:           New(ErrConfig, "Invalid configuration", "Check config.yaml syntax"),
			expectedParts: []string{"✗ Invalid configuration", "Check config.yaml syntax"},
		},
		{
			name:          "with cause",
			err:           WrapWithCode(errors.New("yaml: line 3"), ErrConfig, "Invalid config format", ""),
			expectedParts: []string{"Invalid config format", "yaml: line 3"},
		},
		{
			name:          "without suggestion",
			err:           New(ErrStat, "statistic missing", ""),
			expectedParts: []string{"statistic missing"},
			notExpected:   []string{"\n\n  \n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()

			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part)
			}
			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part)
			}
		})
	}
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("open /nope: no such file"),
		ErrConfig,
		"Failed to read config file",
		"Check the file exists and is valid YAML",
	)

	lines := strings.Split(err.Error(), "\n")

	assert.True(t, strings.HasPrefix(lines[0], "✗"))
	assert.Contains(t, lines[0], "Failed to read config file")
}

func TestUnavailable(t *testing.T) {
	err := Unavailable("timesync", "WarpRate")

	assert.Equal(t, ErrStat, err.Code)
	assert.Contains(t, err.Message, "timesync/WarpRate")
	assert.True(t, IsCode(err, ErrStat))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	wrapped := WrapWithCode(cause, ErrSurface, "Render failed", "")

	assert.Equal(t, cause, wrapped.Unwrap())
	assert.True(t, errors.Is(wrapped, cause))
}

func TestErrorsAs(t *testing.T) {
	wrapped := New(ErrConfig, "Config error", "Fix config")

	var overlayErr *Error
	ok := errors.As(wrapped, &overlayErr)

	assert.True(t, ok)
	assert.Equal(t, ErrConfig, overlayErr.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrStat))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
}
