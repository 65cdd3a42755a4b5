package service

import (
	"context"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"focus/internal/modules/blocker/domain"
	blockerout "focus/internal/modules/blocker/port/out"
	apperrors "focus/internal/platform/errors"
)

type HostsService struct {
	store   blockerout.HostsStore
	flusher blockerout.DNSFlusher
	logger  hclog.Logger
}

func NewHostsService(store blockerout.HostsStore, flusher blockerout.DNSFlusher, logger hclog.Logger) *HostsService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &HostsService{store: store, flusher: flusher, logger: logger}
}

// Block replaces any previous focus block with one for sites.
func (s *HostsService) Block(ctx context.Context, sites []string) ([]string, error) {
	domains, rejected := domain.Domains(sites)
	for _, label := range rejected {
		s.logger.Warn("could not extract domain", "site", label)
	}
	if len(domains) == 0 {
		return nil, fmt.Errorf("%w: no blockable domain in %v", apperrors.ErrInvalidInput, sites)
	}
	current, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(ctx, domain.ApplyBlock(current, domains)); err != nil {
		return nil, err
	}
	s.logger.Info("hosts block written", "domains", len(domains))
	s.flush(ctx)
	return domains, nil
}

// Unblock strips the focus block. The file is only rewritten when it
// actually carries one.
func (s *HostsService) Unblock(ctx context.Context) (bool, error) {
	current, err := s.store.Read(ctx)
	if err != nil {
		return false, err
	}
	stripped := domain.StripBlock(current)
	if stripped == current {
		return false, nil
	}
	if err := s.store.Write(ctx, stripped); err != nil {
		return false, err
	}
	s.logger.Info("hosts block removed")
	s.flush(ctx)
	return true, nil
}

func (s *HostsService) flush(ctx context.Context) {
	if s.flusher == nil {
		return
	}
	if err := s.flusher.Flush(ctx); err != nil {
		s.logger.Warn("dns flush failed", "error", err)
	}
}
