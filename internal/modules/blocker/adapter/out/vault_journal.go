package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"focus/internal/modules/blocker/domain"
	"focus/internal/platform/markdown"
	"focus/internal/platform/slug"
)

type journalMeta struct {
	SchemaVersion   int      `yaml:"schema_version"`
	ID              string   `yaml:"id"`
	Goal            string   `yaml:"goal"`
	StartedAt       string   `yaml:"started_at"`
	DurationSeconds int      `yaml:"duration_seconds"`
	BlockedSites    []string `yaml:"blocked_sites"`
	BlockedApps     []string `yaml:"blocked_apps"`
}

// VaultJournal writes one markdown note per session under
// dir/YYYY/MM/DD/HHMMSS-<goal>.md.
type VaultJournal struct {
	dir string
}

func NewVaultJournal(dir string) *VaultJournal {
	return &VaultJournal{dir: dir}
}

func (j *VaultJournal) Write(_ context.Context, record domain.Record) (string, error) {
	date := record.Timestamp
	dir := filepath.Join(j.dir, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(record.Goal))
	path := filepath.Join(dir, name)

	meta := journalMeta{
		SchemaVersion:   domain.SchemaVersion,
		ID:              record.ID,
		Goal:            record.Goal,
		StartedAt:       date.Format(time.RFC3339),
		DurationSeconds: record.Duration,
		BlockedSites:    nonNil(record.BlockedSites),
		BlockedApps:     nonNil(record.AppLabels()),
	}
	rendered, err := markdown.RenderFrontmatter(meta, journalBody(record))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}

func journalBody(record domain.Record) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "# %s\n\n", record.Goal)
	fmt.Fprintf(&b, "- Duration: %d minutes\n", record.Duration/60)
	if len(record.BlockedSites) > 0 {
		fmt.Fprintf(&b, "- Sites: %s\n", strings.Join(record.BlockedSites, ", "))
	}
	if len(record.BlockedApps) > 0 {
		fmt.Fprintf(&b, "- Apps: %s\n", strings.Join(record.AppLabels(), ", "))
	}
	b.WriteString("\n## Notes\n\n")
	return b.String()
}
