package out

import (
	"context"
	"time"

	blockerout "focus/internal/modules/blocker/port/out"
)

const notifyTimeout = 2 * time.Second

type NotifySend struct {
	runner blockerout.CommandRunner
}

func NewNotifySend(runner blockerout.CommandRunner) *NotifySend {
	return &NotifySend{runner: runner}
}

func (n *NotifySend) Notify(ctx context.Context, title, body string) error {
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	_, err := n.runner.Run(ctx, "notify-send", "-u", "critical", "-t", "3000", "-i", "dialog-error", title, body)
	return err
}
