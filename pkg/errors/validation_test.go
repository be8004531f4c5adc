package errors

import (
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  Code
	}{
		{"simple", "the cat sat", ""},
		{"multiline", "the cat.\nthe dog!", ""},
		{"digits only", "1984", ""},
		{"unicode", "café au lait", ""},

		{"empty", "", ErrCodeEmptyText},
		{"whitespace", "  \n\t ", ErrCodeEmptyText},
		{"punctuation only", "?!.", ErrCodeEmptyText},
		{"too long", strings.Repeat("a", MaxTextLength+1), ErrCodeInvalidInput},
		{"control char", "foo\x01bar", ErrCodeInvalidInput},
		{"invalid utf8", "foo\xffbar", ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.input)
			if tt.code == "" {
				if err != nil {
					t.Errorf("ValidateText(%q) error = %v, want nil", tt.input, err)
				}
				return
			}
			if !Is(err, tt.code) {
				t.Errorf("ValidateText(%q) error = %v, want code %s", tt.input, err, tt.code)
			}
		})
	}
}

func TestValidateSeedString(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{"", 0, false},
		{"42", 42, false},
		{" 7 ", 7, false},
		{"18446744073709551615", 18446744073709551615, false},

		{"-1", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
		{"18446744073709551616", 0, true},
	}

	for _, tt := range tests {
		got, err := ValidateSeedString(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSeedString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil && !Is(err, ErrCodeInvalidSeed) {
			t.Errorf("ValidateSeedString(%q) code = %s, want %s", tt.input, GetCode(err), ErrCodeInvalidSeed)
		}
		if got != tt.want {
			t.Errorf("ValidateSeedString(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range Formats {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) error = %v", f, err)
		}
	}
	for _, f := range []string{"", "PNG", "gif", "dot"} {
		if err := ValidateFormat(f); !Is(err, ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) error = %v, want %s", f, err, ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "inscription", false},
		{"with extension", "out.png", false},
		{"with dash", "my-text_2", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 256), true},
		{"path", "dir/out", true},
		{"backslash", `dir\out`, true},
		{"traversal", "../out", true},
		{"hidden", ".out", true},
		{"null byte", "out\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
