package errors

import (
	"strings"
	"testing"
)

func TestValidateFieldName(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		wantErr bool
	}{
		{"simple", "month", false},
		{"with spaces", "units sold", false},
		{"unicode", "Umsatz €", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"control char", "mo\x07nth", true},
		{"too long", strings.Repeat("a", 129), true},
		{"max length", strings.Repeat("a", 128), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFieldName(tt.field)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFieldName(%q) error = %v, wantErr %v", tt.field, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidKey) {
				t.Errorf("ValidateFieldName(%q) code = %v, want %v", tt.field, GetCode(err), ErrCodeInvalidKey)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name      string
		dimension string
		metrics   []string
		wantErr   bool
	}{
		{"single metric", "month", []string{"a"}, false},
		{"stacked metrics", "month", []string{"a", "b", "c"}, false},
		{"no metrics", "month", nil, true},
		{"empty dimension", "", []string{"a"}, true},
		{"empty metric", "month", []string{"a", ""}, true},
		{"duplicate metric", "month", []string{"a", "a"}, true},
		{"metric equals dimension", "month", []string{"month"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.dimension, tt.metrics)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q, %v) error = %v, wantErr %v", tt.dimension, tt.metrics, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative file", "data/sales.csv", false},
		{"absolute file", "/tmp/sales.csv", false},
		{"empty", "", true},
		{"traversal", "../secret.csv", true},
		{"null byte", "sales\x00.csv", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{"#98abc5", false},
		{"#FF8C00", false},
		{"#fff", false},
		{"98abc5", true},
		{"#98abc", true},
		{"red", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateColor(tt.color)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidColor) {
			t.Errorf("ValidateColor(%q) code = %v, want %v", tt.color, GetCode(err), ErrCodeInvalidColor)
		}
	}
}

func TestValidateColors(t *testing.T) {
	if err := ValidateColors([]string{"#98abc5", "#8a89a6"}); err != nil {
		t.Errorf("valid palette should pass: %v", err)
	}
	if err := ValidateColors([]string{"#98abc5", "nope"}); err == nil {
		t.Error("palette with invalid entry should fail")
	}
	if err := ValidateColors(nil); err != nil {
		t.Errorf("empty palette should pass: %v", err)
	}
}
