package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultDurationSeconds = 3600
	DefaultDurationLabel   = "1 hour"
)

// DurationOptions are the labels offered by the duration selector.
var DurationOptions = []string{
	"1 minute",
	"15 minutes",
	"30 minutes",
	"1 hour",
	"2 hours",
	"3 hours",
	"4 hours",
}

var durationPattern = regexp.MustCompile(`(?i)(\d+)\s*(minute|hour|minutes|hours)`)

// ParseDuration maps a label such as "15 minutes" or "2 hours" to seconds.
// Anything it does not recognise yields DefaultDurationSeconds.
func ParseDuration(label string) int {
	match := durationPattern.FindStringSubmatch(label)
	if match == nil {
		return DefaultDurationSeconds
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return DefaultDurationSeconds
	}
	unit := 60
	if strings.HasPrefix(strings.ToLower(match[2]), "hour") {
		unit = 3600
	}
	if value > math.MaxInt32/unit {
		return DefaultDurationSeconds
	}
	return value * unit
}

// FormatClock renders remaining seconds as MM:SS; minutes are not wrapped
// into hours.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatSpan renders a session length for history listings.
func FormatSpan(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return "<1m"
	}
}

// Progress is the elapsed fraction of the session in 0..1.
func Progress(s Session) float64 {
	if s.Duration <= 0 {
		return 0
	}
	p := float64(s.Elapsed()) / float64(s.Duration)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
