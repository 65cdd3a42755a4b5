package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"focus/internal/modules/onboarding/domain"
)

// YAMLStateStore keeps the onboarding state in a single YAML file. A
// missing file is the zero state.
type YAMLStateStore struct {
	path string
}

func NewYAMLStateStore(path string) *YAMLStateStore {
	return &YAMLStateStore{path: path}
}

func (s *YAMLStateStore) Load(_ context.Context) (domain.State, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.State{}, nil
		}
		return domain.State{}, fmt.Errorf("read state: %w", err)
	}
	var state domain.State
	if err := yaml.Unmarshal(payload, &state); err != nil {
		return domain.State{}, fmt.Errorf("decode state: %w", err)
	}
	return state.Normalize(), nil
}

func (s *YAMLStateStore) Save(_ context.Context, state domain.State) error {
	payload, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}
