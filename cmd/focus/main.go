package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"focus/internal/bootstrap"
	onboardingdto "focus/internal/modules/onboarding/dto"
	sessioninadapter "focus/internal/modules/session/adapter/in"
	sessionoutadapter "focus/internal/modules/session/adapter/out"
	sessiondto "focus/internal/modules/session/dto"
	"focus/internal/platform/config"
	apperrors "focus/internal/platform/errors"
	"focus/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "focus",
		Short:         "Timed focus sessions that block distracting sites and apps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default: user config dir/focus)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newAppsCmd(&dataDir))
	root.AddCommand(newSitesCmd(&dataDir))
	root.AddCommand(newAuthCmd(&dataDir))
	root.AddCommand(newOnboardingCmd(&dataDir))
	return root
}

// loadApp wires the application for a one-shot command; the console
// surface prints controller output to out.
func loadApp(dataDir string, out io.Writer) (*bootstrap.App, func(), error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New("focus", cfg.LogLevel, os.Stderr)
	app, err := bootstrap.New(cfg, sessionoutadapter.NewConsoleSurface(out), out, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := app.Close(); err != nil {
			logger.Warn("close app", "error", err)
		}
	}
	return app, cleanup, nil
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the focus terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.New(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(cfg)
		},
	}
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Focus session lifecycle"}

	var goal, duration string
	var sites, apps []string
	start := &cobra.Command{
		Use:   "start --goal <text>",
		Short: "Run a focus session in the foreground until it completes",
		Long:  "Blocks the given sites and apps for the session. Interrupting the command stops the session early and lifts the block.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(goal) == "" {
				return fmt.Errorf("--goal is required")
			}
			targets, err := sessioninadapter.ParseAppTargets(apps)
			if err != nil {
				return err
			}
			app, cleanup, err := loadApp(*dataDir, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := app.SessionCLI.Start(context.Background(), sessiondto.StartInput{
				Goal:          goal,
				DurationLabel: duration,
				BlockedSites:  sites,
				BlockedApps:   targets,
			}); err != nil {
				return err
			}
			return waitForSession(cmd.OutOrStdout(), app.SessionCLI)
		},
	}
	start.Flags().StringVar(&goal, "goal", "", "what the session is for")
	start.Flags().StringVar(&duration, "duration", "", `session length, e.g. "25 minutes" or "2 hours" (default from config)`)
	start.Flags().StringSliceVar(&sites, "site", nil, "website to block (repeatable)")
	start.Flags().StringSliceVar(&apps, "app", nil, "app to block as Label=executable or executable (repeatable)")
	start.PreRunE = func(cmd *cobra.Command, _ []string) error {
		if cmd.Flags().Changed("duration") {
			return nil
		}
		cfg, err := config.New(*dataDir)
		if err != nil {
			return err
		}
		duration = cfg.DefaultDuration
		return nil
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "List recorded sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(*dataDir, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()
			entries, err := app.SessionCLI.History(context.Background())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			now := time.Now()
			for _, e := range entries {
				labels := make([]string, 0, len(e.BlockedApps))
				for _, a := range e.BlockedApps {
					labels = append(labels, a.Label)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\tsites=%s\tapps=%s\n",
					humanize.RelTime(e.Timestamp, now, "ago", "from now"), e.Span, e.Goal,
					strings.Join(e.BlockedSites, ","), strings.Join(labels, ","))
			}
			return nil
		},
	}

	unblock := &cobra.Command{
		Use:   "unblock",
		Short: "Remove any leftover block from the hosts file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(*dataDir, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()
			if err := app.SessionCLI.Unblock(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "sites unblocked")
			return nil
		},
	}

	durations := &cobra.Command{
		Use:   "durations",
		Short: "List the preset session durations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(*dataDir, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()
			for _, opt := range app.SessionCLI.DurationOptions() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%ds\n", opt.Label, opt.Seconds)
			}
			return nil
		},
	}

	session.AddCommand(start, history, unblock, durations)
	return session
}

// waitForSession blocks until the session ends. SIGINT or SIGTERM stops it
// early.
func waitForSession(out io.Writer, session sessioninadapter.CLIHandler) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err := session.Wait(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, context.Canceled) {
		return err
	}
	_, _ = fmt.Fprintln(out, "interrupted, stopping session")
	if err := session.Stop(context.Background()); err != nil && !errors.Is(err, apperrors.ErrNoActiveSession) {
		return err
	}
	_, err = session.Wait(context.Background())
	return err
}

func newAppsCmd(dataDir *string) *cobra.Command {
	apps := &cobra.Command{Use: "apps", Short: "Installed application catalog"}
	apps.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search installed desktop applications",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			app, cleanup, err := loadApp(*dataDir, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()
			found, err := app.SessionCLI.SearchApps(context.Background(), query)
			if err != nil {
				return err
			}
			if len(found) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no apps")
				return nil
			}
			for _, a := range found {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", a.DisplayName, a.Executable, strings.Join(a.Categories, ";"))
			}
			return nil
		},
	})
	return apps
}

func newSitesCmd(dataDir *string) *cobra.Command {
	sites := &cobra.Command{Use: "sites", Short: "Well-known distracting sites"}
	sites.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Suggest sites by name or URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(*dataDir, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()
			for _, s := range app.SessionCLI.SuggestSites(args[0]) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", s.Category, s.Name, s.URL)
			}
			return nil
		},
	})
	return sites
}

func newAuthCmd(dataDir *string) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Administrator rights for blocking"}

	auth.AddCommand(&cobra.Command{
		Use:   "admin",
		Short: "Authenticate once for the blocking commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(*dataDir, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()
			result, err := app.OnboardingCLI.RequestPermission(context.Background())
			if err != nil {
				return err
			}
			if result.Warning != "" {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "warning:", result.Warning)
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	})

	auth.AddCommand(&cobra.Command{
		Use:   "setup",
		Short: "Install a sudoers rule so blocking needs no password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(*dataDir, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()
			if _, err := app.OnboardingCLI.CompleteAuthorization(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "persistent authorization installed")
			return nil
		},
	})
	return auth
}

func newOnboardingCmd(dataDir *string) *cobra.Command {
	onboarding := &cobra.Command{Use: "onboarding", Short: "First-run walkthrough state"}

	step := func(use, short string, call func(app *bootstrap.App) (onboardingdto.Status, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, cleanup, err := loadApp(*dataDir, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				defer cleanup()
				status, err := call(app)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), status)
				return nil
			},
		}
	}

	ctx := context.Background()
	onboarding.AddCommand(
		step("status", "Show onboarding progress", func(app *bootstrap.App) (onboardingdto.Status, error) {
			return app.OnboardingCLI.Status(ctx)
		}),
		step("next", "Advance to the next step", func(app *bootstrap.App) (onboardingdto.Status, error) {
			return app.OnboardingCLI.Next(ctx)
		}),
		step("prev", "Go back one step", func(app *bootstrap.App) (onboardingdto.Status, error) {
			return app.OnboardingCLI.Prev(ctx)
		}),
		step("skip", "Mark onboarding as done", func(app *bootstrap.App) (onboardingdto.Status, error) {
			return app.OnboardingCLI.Skip(ctx)
		}),
		step("reset", "Start onboarding over", func(app *bootstrap.App) (onboardingdto.Status, error) {
			return app.OnboardingCLI.Reset(ctx)
		}),
	)
	return onboarding
}

func printStatus(w io.Writer, s onboardingdto.Status) {
	_, _ = fmt.Fprintf(w, "onboarded: %t\nstep: %d/%d %s\nauthorization: %t\npermission asked: %t\nhas permission: %t\n",
		s.Onboarded, s.Step+1, s.TotalSteps, s.StepTitle, s.AuthorizationCompleted, s.PermissionAsked, s.HasPermission)
}
