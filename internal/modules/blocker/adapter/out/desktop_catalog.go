package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"focus/internal/modules/blocker/domain"
)

// DesktopCatalog lists applications from .desktop entries in dirs.
type DesktopCatalog struct {
	dirs []string
}

func NewDesktopCatalog(dirs []string) *DesktopCatalog {
	return &DesktopCatalog{dirs: dirs}
}

func (c *DesktopCatalog) Scan(ctx context.Context) ([]domain.InstalledApp, error) {
	out := []domain.InstalledApp{}
	for _, dir := range c.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".desktop") {
				continue
			}
			payload, err := os.ReadFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				continue
			}
			if app, ok := domain.ParseDesktopEntry(string(payload)); ok {
				out = append(out, app)
			}
		}
	}
	return out, nil
}
