package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"focus/internal/modules/blocker/domain"
)

// ProcLister reads process identity from a procfs mount.
type ProcLister struct {
	root string
}

func NewProcLister(root string) *ProcLister {
	return &ProcLister{root: root}
}

func (l *ProcLister) List(ctx context.Context) ([]domain.ProcessInfo, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.root, err)
	}
	out := make([]domain.ProcessInfo, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || !entry.IsDir() {
			continue
		}
		dir := filepath.Join(l.root, entry.Name())
		info := domain.ProcessInfo{PID: pid}
		if comm, err := os.ReadFile(filepath.Join(dir, "comm")); err == nil {
			info.Comm = strings.TrimSpace(string(comm))
		}
		if cmdline, err := os.ReadFile(filepath.Join(dir, "cmdline")); err == nil {
			info.Cmdline = strings.TrimSpace(strings.ReplaceAll(string(cmdline), "\x00", " "))
		}
		if exe, err := os.Readlink(filepath.Join(dir, "exe")); err == nil {
			info.Exe = exe
		}
		out = append(out, info)
	}
	return out, nil
}
