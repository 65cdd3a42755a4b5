package out

import (
	"context"

	"focus/internal/modules/onboarding/domain"
)

type StateStore interface {
	Load(ctx context.Context) (domain.State, error)
	Save(ctx context.Context, state domain.State) error
}

// Authorizer is the privileged part of the backend.
type Authorizer interface {
	AuthorizeAdmin(ctx context.Context) (string, error)
	SetupPersistentAuthorization(ctx context.Context) (string, error)
}
