package out

import (
	"context"
	"errors"
	"fmt"

	blockerout "focus/internal/modules/blocker/port/out"
)

var flushCommands = [][]string{
	{"resolvectl", "flush-caches"},
	{"systemd-resolve", "--flush-caches"},
}

// SudoDNSFlusher tries each known resolver cache flush until one succeeds.
type SudoDNSFlusher struct {
	runner     blockerout.CommandRunner
	privileged bool
}

func NewSudoDNSFlusher(runner blockerout.CommandRunner, privileged bool) *SudoDNSFlusher {
	return &SudoDNSFlusher{runner: runner, privileged: privileged}
}

func (f *SudoDNSFlusher) Flush(ctx context.Context) error {
	var errs []error
	for _, argv := range f.resolved() {
		name, args := argv[0], argv[1:]
		if f.privileged {
			name, args = "sudo", append([]string{"-n"}, argv...)
		}
		if _, err := f.runner.Run(ctx, name, args...); err != nil {
			errs = append(errs, err)
			continue
		}
		return nil
	}
	if len(errs) == 0 {
		return fmt.Errorf("no dns cache flush tool found")
	}
	return errors.Join(errs...)
}

// Commands lists the absolute command lines Flush may run.
func (f *SudoDNSFlusher) Commands() []string {
	out := []string{}
	for _, argv := range f.resolved() {
		out = append(out, joinArgs(argv))
	}
	return out
}

func (f *SudoDNSFlusher) resolved() [][]string {
	out := [][]string{}
	for _, argv := range flushCommands {
		bin, err := f.runner.LookPath(argv[0])
		if err != nil {
			continue
		}
		out = append(out, append([]string{bin}, argv[1:]...))
	}
	return out
}
