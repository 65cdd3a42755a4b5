package domain

import (
	"path/filepath"
	"strings"
	"time"
)

const KillGrace = 100 * time.Millisecond

type AppTarget struct {
	Label      string
	Executable string
	Icon       string
}

// ProcessInfo is what the enforcer can learn about a running process.
type ProcessInfo struct {
	PID     int
	Comm    string
	Cmdline string
	Exe     string
}

// MatchesProcess reports whether the process belongs to the executable.
// Comparison is case-insensitive substring on comm, cmdline and exe name.
func MatchesProcess(p ProcessInfo, executable string) bool {
	target := strings.ToLower(strings.TrimSpace(executable))
	if target == "" {
		return false
	}
	if strings.Contains(strings.ToLower(strings.TrimSpace(p.Comm)), target) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Cmdline), target) {
		return true
	}
	if p.Exe != "" && strings.Contains(strings.ToLower(filepath.Base(p.Exe)), target) {
		return true
	}
	return false
}
