package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	blockeroutadapter "focus/internal/modules/blocker/adapter/out"
	blockerin "focus/internal/modules/blocker/port/in"
	blockerservice "focus/internal/modules/blocker/service"
	blockerusecase "focus/internal/modules/blocker/usecase"
	onboardinginadapter "focus/internal/modules/onboarding/adapter/in"
	onboardingoutadapter "focus/internal/modules/onboarding/adapter/out"
	onboardingout "focus/internal/modules/onboarding/port/out"
	onboardingusecase "focus/internal/modules/onboarding/usecase"
	sessioninadapter "focus/internal/modules/session/adapter/in"
	sessionoutadapter "focus/internal/modules/session/adapter/out"
	sessionout "focus/internal/modules/session/port/out"
	sessionusecase "focus/internal/modules/session/usecase"
	"focus/internal/platform/clock"
	"focus/internal/platform/config"
	"focus/internal/platform/id"
	"focus/internal/platform/logging"
	uiapp "focus/internal/ui/app"
)

// shutdownTimeout leaves room for a session end already releasing blocks.
const shutdownTimeout = 45 * time.Second

// Surface is where the controller renders and resizes: the console for
// the CLI, the Bubble Tea program for the TUI.
type Surface interface {
	sessionout.Display
	sessionout.Window
}

type backend interface {
	sessionout.Backend
	onboardingout.Authorizer
	Close() error
}

type App struct {
	SessionCLI    sessioninadapter.CLIHandler
	OnboardingCLI onboardinginadapter.CLIHandler

	backend backend
}

// Blocker is the wired blocking backend together with the resources it
// holds open.
type Blocker struct {
	Usecase blockerin.Usecase
	history io.Closer
}

func (b *Blocker) Close() error {
	return b.history.Close()
}

// NewBlocker wires the hosts, history, journal, catalog and enforcer
// adapters. It backs both the in-process mode and focus-backend.
func NewBlocker(cfg config.Config, logger hclog.Logger) (*Blocker, error) {
	runner := blockeroutadapter.NewExecRunner()
	authorizer := blockeroutadapter.NewSudoAuthorizer(runner, cfg.Blocking.SudoersFile, logger.Named("auth"))

	hosts := blockeroutadapter.NewFileHostsStore(blockeroutadapter.HostsStoreOptions{
		Path:       cfg.Blocking.HostsFile,
		StagePath:  filepath.Join(cfg.DataDir, "hosts.stage"),
		Privileged: cfg.Blocking.Privileged,
		Runner:     runner,
		Auth:       authorizer,
		Logger:     logger.Named("hosts"),
	})
	flusher := blockeroutadapter.NewSudoDNSFlusher(runner, cfg.Blocking.Privileged)

	commands, err := hosts.Commands()
	if err != nil {
		return nil, fmt.Errorf("resolve privileged commands: %w", err)
	}
	if cfg.Blocking.Privileged {
		commands = append(commands, flusher.Commands()...)
	}

	history, err := blockeroutadapter.NewSQLiteHistoryStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new history store: %w", err)
	}

	enforcerOpts := blockeroutadapter.EnforcerOptions{
		Lister:   blockeroutadapter.NewProcLister(cfg.Blocking.ProcRoot),
		Signaler: blockeroutadapter.NewProcessSignaler(),
		Interval: cfg.Blocking.PollInterval,
		Logger:   logger.Named("enforcer"),
	}
	if cfg.Blocking.Notify {
		enforcerOpts.Notifier = blockeroutadapter.NewNotifySend(runner)
	}

	usecase := blockerusecase.NewInteractor(
		blockerservice.NewHostsService(hosts, flusher, logger.Named("hosts")),
		blockerservice.NewRecordService(clock.SystemClock{}, id.UUID{}, history, blockeroutadapter.NewVaultJournal(cfg.JournalDir), logger.Named("records")),
		blockerservice.NewSearchService(blockeroutadapter.NewDesktopCatalog(cfg.Blocking.ApplicationDirs)),
		blockerservice.NewAuthService(authorizer, commands, logger.Named("auth")),
		blockeroutadapter.NewProcEnforcer(enforcerOpts),
		logger,
	)
	return &Blocker{Usecase: usecase, history: history}, nil
}

// New wires the session controller and onboarding against the configured
// backend. cueOut receives the terminal bell when no cue command is set.
func New(cfg config.Config, surface Surface, cueOut io.Writer, logger hclog.Logger) (*App, error) {
	be, err := newBackend(cfg, logger)
	if err != nil {
		return nil, err
	}

	controller := sessionusecase.NewController(sessionusecase.Deps{
		Backend: be,
		Ticks:   clock.NewTicker(),
		Display: surface,
		Window:  surface,
		Cue:     sessionoutadapter.NewCommandCue(cfg.CueCommand, cueOut, logger.Named("cue")),
		Logger:  logger.Named("session"),
	})
	onboardingUC := onboardingusecase.NewInteractor(
		onboardingoutadapter.NewYAMLStateStore(cfg.StatePath),
		be,
		logger.Named("onboarding"),
	)

	return &App{
		SessionCLI:    sessioninadapter.NewCLIHandler(controller),
		OnboardingCLI: onboardinginadapter.NewCLIHandler(onboardingUC),
		backend:       be,
	}, nil
}

// Close aborts a running session, lifting its block, and releases the
// backend.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.SessionCLI.Shutdown(ctx)
	return a.backend.Close()
}

func newBackend(cfg config.Config, logger hclog.Logger) (backend, error) {
	if cfg.Backend.Mode == config.BackendPlugin {
		be, err := sessionoutadapter.NewPluginBackend(sessionoutadapter.PluginOptions{
			Binary: cfg.Backend.Binary,
			SHA256: cfg.Backend.SHA256,
			Env:    []string{"FOCUS_DATA_DIR=" + cfg.DataDir},
			Logger: logger,
		})
		if err != nil {
			return nil, fmt.Errorf("start backend plugin: %w", err)
		}
		return be, nil
	}
	blocker, err := NewBlocker(cfg, logger.Named("blocker"))
	if err != nil {
		return nil, err
	}
	return &localBackend{LocalBackend: sessionoutadapter.NewLocalBackend(blocker.Usecase), blocker: blocker}, nil
}

type localBackend struct {
	*sessionoutadapter.LocalBackend
	blocker *Blocker
}

func (b *localBackend) Close() error {
	return errors.Join(b.LocalBackend.Close(), b.blocker.Close())
}

// RunTUI runs the Bubble Tea program. Logs go to cfg.LogPath since the
// terminal belongs to the program.
func RunTUI(cfg config.Config) error {
	logger, logFile, err := logging.NewFile("focus", cfg.LogLevel, cfg.LogPath)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	surface := uiapp.NewSurface()
	app, err := New(cfg, surface, os.Stderr, logger)
	if err != nil {
		return err
	}

	status, err := app.OnboardingCLI.Status(context.Background())
	if err != nil {
		_ = app.Close()
		return err
	}

	program := tea.NewProgram(uiapp.NewModel(app.SessionCLI, app.OnboardingCLI, status), tea.WithAltScreen())
	surface.Attach(program)
	_, runErr := program.Run()
	surface.Attach(nil)

	return errors.Join(runErr, app.Close())
}
