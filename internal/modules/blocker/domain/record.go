package domain

import (
	"fmt"
	"strings"
	"time"
)

const SchemaVersion = 1

// Record is one stored session in the history.
type Record struct {
	ID           string
	Goal         string
	Duration     int
	BlockedSites []string
	BlockedApps  []AppTarget
	Timestamp    time.Time
}

func (r Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record id is required")
	}
	if strings.TrimSpace(r.Goal) == "" {
		return fmt.Errorf("record goal is required")
	}
	if r.Duration <= 0 {
		return fmt.Errorf("record duration must be positive")
	}
	return nil
}

func (r Record) AppLabels() []string {
	labels := make([]string, 0, len(r.BlockedApps))
	for _, app := range r.BlockedApps {
		labels = append(labels, app.Label)
	}
	return labels
}
