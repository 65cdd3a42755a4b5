package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	hclog "github.com/hashicorp/go-hclog"
)

// CommandCue plays the completion cue with an external player. Without a
// configured command, or when the player cannot start, it rings the
// terminal bell on w.
type CommandCue struct {
	argv   []string
	w      io.Writer
	logger hclog.Logger
}

func NewCommandCue(argv []string, w io.Writer, logger hclog.Logger) *CommandCue {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &CommandCue{argv: argv, w: w, logger: logger}
}

func (c *CommandCue) Play(_ context.Context) error {
	if len(c.argv) == 0 {
		return c.bell()
	}
	cmd := exec.Command(c.argv[0], c.argv[1:]...)
	if err := cmd.Start(); err != nil {
		_ = c.bell()
		return fmt.Errorf("start cue player: %w", err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			c.logger.Debug("cue player exited", "error", err)
		}
	}()
	return nil
}

func (c *CommandCue) bell() error {
	if c.w == nil {
		return nil
	}
	_, err := io.WriteString(c.w, "\a")
	return err
}
