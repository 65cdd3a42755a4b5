package out

import (
	"context"

	"focus/internal/modules/blocker/domain"
)

type HostsStore interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, content string) error
}

type HistoryStore interface {
	Append(ctx context.Context, record domain.Record) error
	List(ctx context.Context) ([]domain.Record, error)
}

// Journal writes a human readable note per stored session.
type Journal interface {
	Write(ctx context.Context, record domain.Record) (string, error)
}

type AppEnforcer interface {
	Start(ctx context.Context, apps []domain.AppTarget) error
	Stop(ctx context.Context) (map[string]int, error)
}

type DNSFlusher interface {
	Flush(ctx context.Context) error
}

type Authorizer interface {
	Check(ctx context.Context) bool
	Authenticate(ctx context.Context) error
	InstallRule(ctx context.Context, rule string) error
	User() (string, error)
}

type AppCatalog interface {
	Scan(ctx context.Context) ([]domain.InstalledApp, error)
}

type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	// RunInteractive attaches the terminal so the command can prompt.
	RunInteractive(ctx context.Context, name string, args ...string) error
	LookPath(name string) (string, error)
}

type ProcessLister interface {
	List(ctx context.Context) ([]domain.ProcessInfo, error)
}

type ProcessSignaler interface {
	Terminate(pid int) error
	Kill(pid int) error
	Alive(pid int) bool
}

type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}
