package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New(ErrCodeInvalidKey, "duplicate metric %q", "sales")

	if err.Code != ErrCodeInvalidKey {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidKey)
	}
	if want := `duplicate metric "sales"`; err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
	if want := `INVALID_KEY: duplicate metric "sales"`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("record on line 3: wrong number of fields")
	err := Wrap(ErrCodeInvalidDataset, cause, "decode %s", "sales.csv")

	if err.Code != ErrCodeInvalidDataset {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDataset)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if got := err.Error(); got != "INVALID_DATASET: decode sales.csv: record on line 3: wrong number of fields" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCodeLookup(t *testing.T) {
	keyErr := ValidateKey("month", nil)

	tests := []struct {
		name   string
		err    error
		code   Code
		wantIs bool
		want   Code
	}{
		{"direct", New(ErrCodeInvalidColor, "x"), ErrCodeInvalidColor, true, ErrCodeInvalidColor},
		{"other code", New(ErrCodeInvalidColor, "x"), ErrCodeInvalidKey, false, ErrCodeInvalidColor},
		{"validation result", keyErr, ErrCodeInvalidKey, true, ErrCodeInvalidKey},
		{"outer code wins", Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidKey, "inner"), "chart.toml"), ErrCodeInvalidConfig, true, ErrCodeInvalidConfig},
		{"fmt wrapped", fmt.Errorf("load: %w", New(ErrCodeFileNotFound, "x")), ErrCodeFileNotFound, true, ErrCodeFileNotFound},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false, ""},
		{"nil", nil, ErrCodeInvalidInput, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.wantIs {
				t.Errorf("Is(%s) = %v, want %v", tt.code, got, tt.wantIs)
			}
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid key", New(ErrCodeInvalidKey, "x"), http.StatusBadRequest},
		{"invalid color", New(ErrCodeInvalidColor, "x"), http.StatusBadRequest},
		{"wrapped dataset", fmt.Errorf("load: %w", New(ErrCodeInvalidDataset, "x")), http.StatusBadRequest},
		{"file not found", New(ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{"unsupported", New(ErrCodeUnsupported, "x"), http.StatusUnsupportedMediaType},
		{"timeout", New(ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
