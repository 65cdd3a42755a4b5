package dto

import "time"

type AppTarget struct {
	Label      string
	Executable string
	Icon       string
}

type CreateSessionInput struct {
	Goal            string
	DurationSeconds int
	BlockedSites    []string
	BlockedApps     []AppTarget
}

type SessionRecord struct {
	ID           string
	Goal         string
	Duration     int
	BlockedSites []string
	BlockedApps  []AppTarget
	Timestamp    time.Time
	JournalPath  string
}

type InstalledApp struct {
	Name        string
	DisplayName string
	Executable  string
	Icon        string
	Categories  []string
}

// Ack carries the human readable outcome of a backend command.
type Ack struct {
	Message string
}
