package token

import (
	"errors"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"plain", "/home/u/proj"},
		{"root", "/"},
		{"spaces", "/home/u/My Documents/draft 2"},
		{"multi-byte", "/home/u/проекты/日本語/ファイル"},
		{"percent literal", "/tmp/100%done"},
		{"embedded tab", "/tmp/weird\tname"},
		{"embedded newline", "/tmp/weird\nname"},
		{"carriage return", "/tmp/weird\rname"},
		{"all escapes adjacent", "/t\t\n\r%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := Encode(tt.path)
			if strings.ContainsAny(tok, "\t\n\r") {
				t.Errorf("token %q contains raw delimiter bytes", tok)
			}
			got, err := Decode(tok)
			if err != nil {
				t.Fatalf("Decode(%q) failed: %v", tok, err)
			}
			if got != tt.path {
				t.Errorf("Decode(Encode(%q)) = %q", tt.path, got)
			}
		})
	}
}

func TestEncodeInjective(t *testing.T) {
	// A literal "%09" in a path must not collide with an encoded tab.
	a := Encode("/tmp/a\tb")
	b := Encode("/tmp/a%09b")
	if a == b {
		t.Errorf("expected distinct tokens, both %q", a)
	}
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode("")
	if !errors.Is(err, ErrEmptyToken) {
		t.Errorf("expected ErrEmptyToken, got %v", err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		tok  string
	}{
		{"truncated escape", "/tmp/a%0"},
		{"trailing escape", "/tmp/a%"},
		{"non-hex digits", "/tmp/a%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.tok); err == nil {
				t.Errorf("Decode(%q) should fail", tt.tok)
			}
		})
	}
}
