package slug_test

import (
	"strings"
	"testing"

	"focus/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Write docs":          "write-docs",
		"  Ship v2.0!  ":      "ship-v2-0",
		"???":                 "untitled",
		strings.Repeat("a", 80): strings.Repeat("a", 48),
	}
	for in, want := range cases {
		if got := slug.Make(in); got != want {
			t.Fatalf("slug.Make(%q) = %q, want %q", in, got, want)
		}
	}
}
