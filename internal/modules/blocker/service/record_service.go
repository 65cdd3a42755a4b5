package service

import (
	"context"
	"fmt"
	"sort"

	hclog "github.com/hashicorp/go-hclog"

	"focus/internal/modules/blocker/domain"
	blockerout "focus/internal/modules/blocker/port/out"
	"focus/internal/platform/clock"
	"focus/internal/platform/id"
)

type RecordService struct {
	clock   clock.Clock
	idGen   id.Generator
	history blockerout.HistoryStore
	journal blockerout.Journal
	logger  hclog.Logger
}

func NewRecordService(clock clock.Clock, idGen id.Generator, history blockerout.HistoryStore, journal blockerout.Journal, logger hclog.Logger) *RecordService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &RecordService{clock: clock, idGen: idGen, history: history, journal: journal, logger: logger}
}

// Store appends the session to the history. A journal failure is logged and
// does not fail the store.
func (s *RecordService) Store(ctx context.Context, goal string, duration int, sites []string, apps []domain.AppTarget) (domain.Record, string, error) {
	record := domain.Record{
		ID:           s.idGen.New(),
		Goal:         goal,
		Duration:     duration,
		BlockedSites: append([]string{}, sites...),
		BlockedApps:  append([]domain.AppTarget{}, apps...),
		Timestamp:    s.clock.Now(),
	}
	if err := record.Validate(); err != nil {
		return domain.Record{}, "", err
	}
	if err := s.history.Append(ctx, record); err != nil {
		return domain.Record{}, "", fmt.Errorf("append history: %w", err)
	}
	path := ""
	if s.journal != nil {
		p, err := s.journal.Write(ctx, record)
		if err != nil {
			s.logger.Warn("journal note failed", "id", record.ID, "error", err)
		} else {
			path = p
		}
	}
	return record, path, nil
}

func (s *RecordService) List(ctx context.Context) ([]domain.Record, error) {
	records, err := s.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}
