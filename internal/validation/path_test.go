package validation

import (
	"os"
	"strings"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	sep := string(os.PathSeparator)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a.xml", "a.xml"},
		{"a/b/c.xml", "a" + sep + "b" + sep + "c.xml"},
		{`a\b\c.xml`, "a" + sep + "b" + sep + "c.xml"},
		{`a/b\c.xml`, "a" + sep + "b" + sep + "c.xml"},
		{`a//b\\c`, "a" + sep + sep + "b" + sep + sep + "c"},
		{"/abs/", sep + "abs" + sep},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizePath(tt.in); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizePath_Idempotent(t *testing.T) {
	inputs := []string{
		`db/changelog\v1/a.xml`,
		`\\server\share/x`,
		`mixed/\/\/sep`,
		"plain",
		"",
	}

	for _, in := range inputs {
		once := NormalizePath(in)
		twice := NormalizePath(once)
		if once != twice {
			t.Errorf("NormalizePath not idempotent for %q: %q then %q", in, once, twice)
		}
		other := `\`
		if os.PathSeparator == '\\' {
			other = "/"
		}
		if strings.Contains(once, other) {
			t.Errorf("NormalizePath(%q) = %q still contains %q", in, once, other)
		}
	}
}
