package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeConflict, "shape %s already contains text", "rect-1"),
			want: "CONFLICT: shape rect-1 already contains text",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeInvalidManifest, stderrors.New("unexpected EOF"), "parse diagram.toml"),
			want: "INVALID_MANIFEST: parse diagram.toml: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeInvalidReference, "unknown element %q", "ghost")

	if !Is(err, ErrCodeInvalidReference) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeConflict) {
		t.Error("Is should not match a different code")
	}
	if got := GetCode(err); got != ErrCodeInvalidReference {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeInvalidReference)
	}

	// Wrapped errors keep their code discoverable through the chain.
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeInvalidReference) {
		t.Error("Is should unwrap to find the code")
	}

	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeStateError, "no open group to end")
	if got := UserMessage(err); got != "no open group to end" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name       string
		violations []string
		contains   []string
	}{
		{
			name:       "Single",
			violations: []string{"arrow a1 start references missing element x"},
			contains:   []string{"VALIDATION_ERROR", "arrow a1"},
		},
		{
			name: "Multiple",
			violations: []string{
				"arrow a1 start references missing element x",
				"group g1 contains itself",
			},
			contains: []string{"2 violations", "group g1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ValidationError{Violations: tt.violations}
			msg := err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, missing %q", msg, want)
				}
			}
		})
	}
}

func TestAsValidation(t *testing.T) {
	ve := &ValidationError{Violations: []string{"dangling reference"}}
	wrapped := fmt.Errorf("assemble: %w", ve)

	got, ok := AsValidation(wrapped)
	if !ok {
		t.Fatal("AsValidation should find the wrapped ValidationError")
	}
	if len(got.Violations) != 1 {
		t.Errorf("violations = %d, want 1", len(got.Violations))
	}

	if _, ok := AsValidation(stderrors.New("plain")); ok {
		t.Error("AsValidation should not match a plain error")
	}
}

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantErr bool
	}{
		{"Valid", "Process Step", false},
		{"Unicode", "Überprüfung", false},
		{"Empty", "", true},
		{"ControlChar", "bad\x00label", true},
		{"Newline", "two\nlines", true},
		{"TooLong", strings.Repeat("x", 257), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.label)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.label, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{"#ffec99", false},
		{"#fff", false},
		{"#a5d8ff80", false},
		{"transparent", false},
		{"", false},
		{"yellow", true},
		{"#gggggg", true},
		{"ffec99", true},
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			err := ValidateColor(tt.color)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
			}
		})
	}
}

func TestValidateManifestFilename(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"diagram.toml", false},
		{"", true},
		{"dir/diagram.toml", true},
		{`dir\diagram.toml`, true},
		{".hidden.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			err := ValidateManifestFilename(tt.filename)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateManifestFilename(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
			}
		})
	}
}
