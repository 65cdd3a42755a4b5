package out

import (
	"context"
	"fmt"
	"os"
	"os/user"

	hclog "github.com/hashicorp/go-hclog"

	blockerout "focus/internal/modules/blocker/port/out"
)

// SudoAuthorizer manages cached sudo credentials and the sudoers drop-in.
type SudoAuthorizer struct {
	runner      blockerout.CommandRunner
	sudoersFile string
	logger      hclog.Logger
}

func NewSudoAuthorizer(runner blockerout.CommandRunner, sudoersFile string, logger hclog.Logger) *SudoAuthorizer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SudoAuthorizer{runner: runner, sudoersFile: sudoersFile, logger: logger}
}

func (a *SudoAuthorizer) Check(ctx context.Context) bool {
	_, err := a.runner.Run(ctx, "sudo", "-n", "true")
	return err == nil
}

// Authenticate prefers a graphical pkexec prompt when a display is
// available and falls back to sudo prompting on the terminal.
func (a *SudoAuthorizer) Authenticate(ctx context.Context) error {
	if hasDisplay() {
		if _, err := a.runner.LookPath("pkexec"); err == nil {
			if _, err := a.runner.Run(ctx, "pkexec", "sudo", "-v"); err != nil {
				return fmt.Errorf("pkexec authentication failed: %w", err)
			}
			return nil
		}
	}
	if err := a.runner.RunInteractive(ctx, "sudo", "-v"); err != nil {
		return fmt.Errorf("sudo authentication failed: %w", err)
	}
	return nil
}

// InstallRule validates rule with visudo before installing it as the
// sudoers drop-in, root-owned with mode 0440.
func (a *SudoAuthorizer) InstallRule(ctx context.Context, rule string) error {
	tmp, err := os.CreateTemp("", "focus-sudoers-*")
	if err != nil {
		return fmt.Errorf("create sudoers temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if _, err := tmp.WriteString(rule); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write sudoers temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close sudoers temp: %w", err)
	}
	if _, err := a.runner.Run(ctx, "sudo", "-n", "visudo", "-cf", tmpName); err != nil {
		return fmt.Errorf("sudoers rule rejected: %w", err)
	}
	if _, err := a.runner.Run(ctx, "sudo", "-n", "install", "-m", "0440", "-o", "root", "-g", "root", tmpName, a.sudoersFile); err != nil {
		return fmt.Errorf("install %s: %w", a.sudoersFile, err)
	}
	a.logger.Info("sudoers drop-in installed", "path", a.sudoersFile)
	return nil
}

func (a *SudoAuthorizer) User() (string, error) {
	if name := os.Getenv("SUDO_USER"); name != "" {
		return name, nil
	}
	current, err := user.Current()
	if err != nil {
		return "", err
	}
	return current.Username, nil
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}
