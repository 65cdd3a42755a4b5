package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"

	blockerout "focus/internal/modules/blocker/port/out"
)

// FileHostsStore reads and writes the hosts file. In privileged mode the new
// content is staged in a user-owned file and copied over the hosts file
// with `sudo -n cp`; one failed copy triggers authentication and a retry.
type FileHostsStore struct {
	path       string
	stagePath  string
	privileged bool
	runner     blockerout.CommandRunner
	auth       blockerout.Authorizer
	logger     hclog.Logger
}

type HostsStoreOptions struct {
	Path       string
	StagePath  string
	Privileged bool
	Runner     blockerout.CommandRunner
	Auth       blockerout.Authorizer
	Logger     hclog.Logger
}

func NewFileHostsStore(opts HostsStoreOptions) *FileHostsStore {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &FileHostsStore{
		path:       opts.Path,
		stagePath:  opts.StagePath,
		privileged: opts.Privileged,
		runner:     opts.Runner,
		auth:       opts.Auth,
		logger:     logger,
	}
}

func (s *FileHostsStore) Read(_ context.Context) (string, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read hosts file: %w", err)
	}
	return string(payload), nil
}

func (s *FileHostsStore) Write(ctx context.Context, content string) error {
	if !s.privileged {
		return writeFileAtomic(s.path, []byte(content), 0o644)
	}
	if err := os.MkdirAll(filepath.Dir(s.stagePath), 0o755); err != nil {
		return fmt.Errorf("create stage dir: %w", err)
	}
	if err := os.WriteFile(s.stagePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write staged hosts: %w", err)
	}
	defer os.Remove(s.stagePath)

	cp, err := s.copyCommand()
	if err != nil {
		return err
	}
	if _, err = s.runner.Run(ctx, "sudo", append([]string{"-n"}, cp...)...); err == nil {
		return nil
	}
	s.logger.Info("privileged copy refused, authenticating", "error", err)
	if s.auth == nil {
		return fmt.Errorf("failed to write hosts file: no cached sudo credentials")
	}
	if err := s.auth.Authenticate(ctx); err != nil {
		return fmt.Errorf("failed to write hosts file: %w", err)
	}
	if _, err := s.runner.Run(ctx, "sudo", append([]string{"-n"}, cp...)...); err != nil {
		return fmt.Errorf("failed to write hosts file: %w", err)
	}
	return nil
}

// Commands lists the privileged command line the store runs, for
// persistent authorization.
func (s *FileHostsStore) Commands() ([]string, error) {
	if !s.privileged {
		return nil, nil
	}
	cp, err := s.copyCommand()
	if err != nil {
		return nil, err
	}
	return []string{joinArgs(cp)}, nil
}

func (s *FileHostsStore) copyCommand() ([]string, error) {
	bin, err := s.runner.LookPath("cp")
	if err != nil {
		return nil, fmt.Errorf("locate cp: %w", err)
	}
	return []string{bin, s.stagePath, s.path}, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".focus-hosts-*")
	if err != nil {
		return fmt.Errorf("create temp hosts: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp hosts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp hosts: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod temp hosts: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace hosts file: %w", err)
	}
	return nil
}
