package dto

import "time"

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhaseEnding  Phase = "ending"
)

type AppTarget struct {
	Label      string
	Executable string
	Icon       string
}

// StartInput takes the duration in seconds, or as a label such as
// "25 minutes" when DurationSeconds is zero.
type StartInput struct {
	Goal            string
	DurationSeconds int
	DurationLabel   string
	BlockedSites    []string
	BlockedApps     []AppTarget
}

// Snapshot is a read-only view of the controller state.
type Snapshot struct {
	Phase        Phase
	Starting     bool
	Goal         string
	Duration     int
	Remaining    int
	BlockedSites []string
	BlockedApps  []AppTarget
	Clock        string
	Progress     float64
}

type HistoryEntry struct {
	ID           string
	Goal         string
	Duration     int
	Span         string
	BlockedSites []string
	BlockedApps  []AppTarget
	Timestamp    time.Time
}

type InstalledApp struct {
	Name        string
	DisplayName string
	Executable  string
	Icon        string
	Categories  []string
}

type Site struct {
	Category string
	Name     string
	URL      string
}

type DurationOption struct {
	Label   string
	Seconds int
}
