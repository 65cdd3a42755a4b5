package textblock_test

import (
	"testing"

	"focus/internal/platform/textblock"
)

const (
	start = "# begin"
	end   = "# end"
)

func TestReplaceAppendsAndSwaps(t *testing.T) {
	t.Parallel()
	body := "127.0.0.1 localhost\n"
	first := textblock.Replace(body, start, end, "a")
	if first != "127.0.0.1 localhost\n# begin\na\n# end\n" {
		t.Fatalf("unexpected append result: %q", first)
	}
	second := textblock.Replace(first, start, end, "b")
	if second != "127.0.0.1 localhost\n# begin\nb\n# end\n" {
		t.Fatalf("unexpected swap result: %q", second)
	}
	if got := textblock.Replace("", start, end, "x"); got != "# begin\nx\n# end\n" {
		t.Fatalf("unexpected empty-body result: %q", got)
	}
}

func TestRemoveRoundTrips(t *testing.T) {
	t.Parallel()
	body := "127.0.0.1 localhost\n::1 localhost\n"
	blocked := textblock.Replace(body, start, end, "127.0.0.1 example.com")
	if got := textblock.Remove(blocked, start, end); got != body {
		t.Fatalf("remove did not restore body: %q", got)
	}
	if got := textblock.Remove(body, start, end); got != body {
		t.Fatalf("remove changed body without markers: %q", got)
	}
	dangling := body + start + "\n"
	if got := textblock.Remove(dangling, start, end); got != dangling {
		t.Fatalf("dangling start marker must be left alone: %q", got)
	}
}
