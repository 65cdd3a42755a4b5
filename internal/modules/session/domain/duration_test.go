package domain_test

import (
	"testing"

	"focus/internal/modules/session/domain"
)

func TestParseDuration(t *testing.T) {
	t.Parallel()
	cases := map[string]int{
		"15 minutes":                      900,
		"2 hours":                         7200,
		"1 minute":                        60,
		"1 hour":                          3600,
		"4 HOURS":                         14400,
		"30minutes":                       1800,
		"garbage":                         3600,
		"":                                3600,
		"for 45 minutes please":           2700,
		"99999999999999999999999 minutes": 3600,
	}
	for label, want := range cases {
		if got := domain.ParseDuration(label); got != want {
			t.Fatalf("ParseDuration(%q) = %d, want %d", label, got, want)
		}
	}
}

func TestDurationOptionsParse(t *testing.T) {
	t.Parallel()
	prev := 0
	for _, label := range domain.DurationOptions {
		got := domain.ParseDuration(label)
		if got <= prev {
			t.Fatalf("options must be increasing: %q -> %d", label, got)
		}
		prev = got
	}
	if domain.ParseDuration(domain.DefaultDurationLabel) != domain.DefaultDurationSeconds {
		t.Fatalf("default label must map to default seconds")
	}
}

func TestFormatClock(t *testing.T) {
	t.Parallel()
	cases := map[int]string{0: "00:00", 59: "00:59", 61: "01:01", 3600: "60:00", -4: "00:00"}
	for in, want := range cases {
		if got := domain.FormatClock(in); got != want {
			t.Fatalf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatSpan(t *testing.T) {
	t.Parallel()
	cases := map[int]string{30: "<1m", 60: "1m", 900: "15m", 3600: "1h 0m", 5400: "1h 30m"}
	for in, want := range cases {
		if got := domain.FormatSpan(in); got != want {
			t.Fatalf("FormatSpan(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestProgress(t *testing.T) {
	t.Parallel()
	s := domain.Session{Duration: 100, Remaining: 25}
	if got := domain.Progress(s); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
	if got := domain.Progress(domain.Session{}); got != 0 {
		t.Fatalf("expected 0 for empty session, got %v", got)
	}
}
