package service

import (
	"focus/internal/modules/onboarding/domain"
	"focus/internal/modules/onboarding/dto"
)

func ToStatus(state domain.State) dto.Status {
	state = state.Normalize()
	return dto.Status{
		Onboarded:              state.Onboarded,
		Step:                   state.Step,
		TotalSteps:             domain.TotalSteps,
		StepTitle:              domain.StepTitles[state.Step],
		AuthorizationCompleted: state.AuthorizationCompleted,
		PermissionAsked:        state.PermissionAsked,
		HasPermission:          state.HasPermission,
	}
}
