package service

import (
	"context"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"focus/internal/modules/blocker/domain"
	blockerout "focus/internal/modules/blocker/port/out"
)

type AuthService struct {
	authorizer blockerout.Authorizer
	commands   []string
	logger     hclog.Logger
}

// NewAuthService takes the exact privileged command lines the backend runs;
// they are what a persistent authorization grants.
func NewAuthService(authorizer blockerout.Authorizer, commands []string, logger hclog.Logger) *AuthService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &AuthService{authorizer: authorizer, commands: commands, logger: logger}
}

// Authorize returns true when credentials were already cached.
func (s *AuthService) Authorize(ctx context.Context) (bool, error) {
	if s.authorizer.Check(ctx) {
		return true, nil
	}
	if err := s.authorizer.Authenticate(ctx); err != nil {
		return false, fmt.Errorf("authentication failed: %w", err)
	}
	return false, nil
}

func (s *AuthService) InstallPersistent(ctx context.Context) error {
	if _, err := s.Authorize(ctx); err != nil {
		return err
	}
	user, err := s.authorizer.User()
	if err != nil {
		return fmt.Errorf("resolve user: %w", err)
	}
	rule, err := domain.SudoersRule(user, s.commands)
	if err != nil {
		return err
	}
	if err := s.authorizer.InstallRule(ctx, rule); err != nil {
		return fmt.Errorf("install sudoers rule: %w", err)
	}
	s.logger.Info("persistent authorization installed", "user", user, "commands", len(s.commands))
	return nil
}
