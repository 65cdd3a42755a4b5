package in

import (
	"context"
	"fmt"
	"strings"

	"focus/internal/modules/session/dto"
	sessionin "focus/internal/modules/session/port/in"
	apperrors "focus/internal/platform/errors"
)

// CLIHandler is shared by the cobra commands and the TUI.
type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, input dto.StartInput) (dto.Snapshot, error) {
	return h.usecase.Start(ctx, input)
}

func (h CLIHandler) Wait(ctx context.Context) (dto.Snapshot, error) {
	return h.usecase.Wait(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) error {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) Unblock(ctx context.Context) error {
	return h.usecase.Unblock(ctx)
}

func (h CLIHandler) Shutdown(ctx context.Context) {
	h.usecase.Shutdown(ctx)
}

func (h CLIHandler) Snapshot() dto.Snapshot {
	return h.usecase.Snapshot()
}

func (h CLIHandler) History(ctx context.Context) ([]dto.HistoryEntry, error) {
	return h.usecase.History(ctx)
}

func (h CLIHandler) SearchApps(ctx context.Context, query string) ([]dto.InstalledApp, error) {
	return h.usecase.SearchApps(ctx, query)
}

func (h CLIHandler) SuggestSites(query string) []dto.Site {
	return h.usecase.SuggestSites(query)
}

func (h CLIHandler) DurationOptions() []dto.DurationOption {
	return h.usecase.DurationOptions()
}

// ParseAppTargets reads --app values of the form "Label=executable" or a
// bare executable, which is then also the label.
func ParseAppTargets(values []string) ([]dto.AppTarget, error) {
	out := make([]dto.AppTarget, 0, len(values))
	for _, value := range values {
		label, executable, found := strings.Cut(value, "=")
		label = strings.TrimSpace(label)
		executable = strings.TrimSpace(executable)
		if !found {
			executable = label
		}
		if label == "" || executable == "" {
			return nil, fmt.Errorf("%w: app %q must be Label=executable", apperrors.ErrInvalidInput, value)
		}
		out = append(out, dto.AppTarget{Label: label, Executable: executable})
	}
	return out, nil
}
