package dto

type Status struct {
	Onboarded              bool
	Step                   int
	TotalSteps             int
	StepTitle              string
	AuthorizationCompleted bool
	PermissionAsked        bool
	HasPermission          bool
}

// PermissionResult reports a permission request. Warning is set when the
// request failed; the app keeps working without blocking rights.
type PermissionResult struct {
	Status  Status
	Message string
	Warning string
}
