package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"focus/internal/modules/onboarding/adapter/out"
	"focus/internal/modules/onboarding/domain"
)

func TestYAMLStateStoreRoundTripAndClamp(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")
	store := out.NewYAMLStateStore(path)
	ctx := context.Background()

	state, err := store.Load(ctx)
	if err != nil || state != (domain.State{}) {
		t.Fatalf("missing file must load zero state: %+v %v", state, err)
	}
	if err := store.Save(ctx, domain.State{Onboarded: true, Step: 2, PermissionAsked: true}); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(payload), "permission_asked: true") {
		t.Fatalf("unexpected yaml %q", payload)
	}

	if err := os.WriteFile(path, []byte("step: 9\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	state, err = store.Load(ctx)
	if err != nil || state.Step != domain.TotalSteps-1 {
		t.Fatalf("out of range step must clamp: %+v %v", state, err)
	}
}
