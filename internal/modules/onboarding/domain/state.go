package domain

const TotalSteps = 4

var StepTitles = [TotalSteps]string{
	"Welcome",
	"How it works",
	"Features",
	"Authorization",
}

// State is the persisted onboarding and permission progress.
type State struct {
	Onboarded              bool `yaml:"onboarded"`
	Step                   int  `yaml:"step"`
	AuthorizationCompleted bool `yaml:"authorization_completed"`
	PermissionAsked        bool `yaml:"permission_asked"`
	HasPermission          bool `yaml:"has_permission"`
}

// Normalize clamps Step into 0..TotalSteps-1.
func (s State) Normalize() State {
	if s.Step < 0 {
		s.Step = 0
	}
	if s.Step > TotalSteps-1 {
		s.Step = TotalSteps - 1
	}
	return s
}

func (s State) Next() State {
	s.Step++
	return s.Normalize()
}

func (s State) Prev() State {
	s.Step--
	return s.Normalize()
}

func (s State) IsLastStep() bool {
	return s.Step == TotalSteps-1
}
