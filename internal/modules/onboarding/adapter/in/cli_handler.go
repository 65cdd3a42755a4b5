package in

import (
	"context"

	"focus/internal/modules/onboarding/dto"
	onboardingin "focus/internal/modules/onboarding/port/in"
)

type CLIHandler struct {
	usecase onboardingin.Usecase
}

func NewCLIHandler(usecase onboardingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) (dto.Status, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Next(ctx context.Context) (dto.Status, error) {
	return h.usecase.NextStep(ctx)
}

func (h CLIHandler) Prev(ctx context.Context) (dto.Status, error) {
	return h.usecase.PrevStep(ctx)
}

func (h CLIHandler) CompleteAuthorization(ctx context.Context) (dto.Status, error) {
	return h.usecase.CompleteAuthorization(ctx)
}

func (h CLIHandler) RequestPermission(ctx context.Context) (dto.PermissionResult, error) {
	return h.usecase.RequestPermission(ctx)
}

func (h CLIHandler) Skip(ctx context.Context) (dto.Status, error) {
	return h.usecase.Skip(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) (dto.Status, error) {
	return h.usecase.Reset(ctx)
}
