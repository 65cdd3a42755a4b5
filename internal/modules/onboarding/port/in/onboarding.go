package in

import (
	"context"

	"focus/internal/modules/onboarding/dto"
)

type Usecase interface {
	Status(ctx context.Context) (dto.Status, error)
	NextStep(ctx context.Context) (dto.Status, error)
	PrevStep(ctx context.Context) (dto.Status, error)
	CompleteAuthorization(ctx context.Context) (dto.Status, error)
	RequestPermission(ctx context.Context) (dto.PermissionResult, error)
	Skip(ctx context.Context) (dto.Status, error)
	Reset(ctx context.Context) (dto.Status, error)
}
