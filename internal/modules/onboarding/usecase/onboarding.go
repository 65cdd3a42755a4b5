package usecase

import (
	"context"
	"fmt"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"focus/internal/modules/onboarding/domain"
	"focus/internal/modules/onboarding/dto"
	onboardingin "focus/internal/modules/onboarding/port/in"
	onboardingout "focus/internal/modules/onboarding/port/out"
	"focus/internal/modules/onboarding/service"
)

// Interactor loads, mutates and saves the onboarding state. Every mutation
// is persisted before it is reported.
type Interactor struct {
	mu         sync.Mutex
	store      onboardingout.StateStore
	authorizer onboardingout.Authorizer
	logger     hclog.Logger
}

func NewInteractor(store onboardingout.StateStore, authorizer onboardingout.Authorizer, logger hclog.Logger) onboardingin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{store: store, authorizer: authorizer, logger: logger}
}

func (i *Interactor) Status(ctx context.Context) (dto.Status, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	state, err := i.store.Load(ctx)
	if err != nil {
		return dto.Status{}, err
	}
	return service.ToStatus(state), nil
}

func (i *Interactor) NextStep(ctx context.Context) (dto.Status, error) {
	return i.update(ctx, domain.State.Next)
}

func (i *Interactor) PrevStep(ctx context.Context) (dto.Status, error) {
	return i.update(ctx, domain.State.Prev)
}

func (i *Interactor) Skip(ctx context.Context) (dto.Status, error) {
	return i.update(ctx, func(s domain.State) domain.State {
		s.Onboarded = true
		return s
	})
}

func (i *Interactor) Reset(ctx context.Context) (dto.Status, error) {
	return i.update(ctx, func(domain.State) domain.State {
		return domain.State{}
	})
}

// CompleteAuthorization installs persistent authorization. On failure the
// state is left untouched.
func (i *Interactor) CompleteAuthorization(ctx context.Context) (dto.Status, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	state, err := i.store.Load(ctx)
	if err != nil {
		return dto.Status{}, err
	}
	msg, err := i.authorizer.SetupPersistentAuthorization(ctx)
	if err != nil {
		i.logger.Warn("persistent authorization failed", "error", err)
		return service.ToStatus(state), fmt.Errorf("setup authorization: %w", err)
	}
	i.logger.Info("persistent authorization completed", "message", msg)
	state.AuthorizationCompleted = true
	state.HasPermission = true
	state.Onboarded = true
	return i.saveLocked(ctx, state)
}

// RequestPermission asks for administrator rights once. A refusal is
// recorded and reported as a warning, not an error.
func (i *Interactor) RequestPermission(ctx context.Context) (dto.PermissionResult, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	state, err := i.store.Load(ctx)
	if err != nil {
		return dto.PermissionResult{}, err
	}
	state.PermissionAsked = true
	msg, authErr := i.authorizer.AuthorizeAdmin(ctx)
	state.HasPermission = authErr == nil
	status, err := i.saveLocked(ctx, state)
	if err != nil {
		return dto.PermissionResult{}, err
	}
	if authErr != nil {
		i.logger.Warn("admin permission not granted", "error", authErr)
		return dto.PermissionResult{
			Status:  status,
			Warning: fmt.Sprintf("Website blocking needs administrator rights: %v", authErr),
		}, nil
	}
	return dto.PermissionResult{Status: status, Message: msg}, nil
}

func (i *Interactor) update(ctx context.Context, fn func(domain.State) domain.State) (dto.Status, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	state, err := i.store.Load(ctx)
	if err != nil {
		return dto.Status{}, err
	}
	return i.saveLocked(ctx, fn(state))
}

func (i *Interactor) saveLocked(ctx context.Context, state domain.State) (dto.Status, error) {
	state = state.Normalize()
	if err := i.store.Save(ctx, state); err != nil {
		return dto.Status{}, fmt.Errorf("save onboarding state: %w", err)
	}
	return service.ToStatus(state), nil
}
