package out_test

import (
	"context"
	"errors"
	"strings"
	"sync"
)

type call struct {
	name string
	args []string
}

func (c call) String() string {
	return strings.TrimSpace(c.name + " " + strings.Join(c.args, " "))
}

// scriptedRunner records commands and fails those listed in fail until the
// failure budget for that command line runs out.
type scriptedRunner struct {
	mu          sync.Mutex
	calls       []call
	interactive []call
	fail        map[string]int
	missing     map[string]bool
	onRun       func(call)
}

func newScriptedRunner() *scriptedRunner {
	return &scriptedRunner{fail: map[string]int{}, missing: map[string]bool{}}
}

func (r *scriptedRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	c := call{name: name, args: append([]string(nil), args...)}
	r.calls = append(r.calls, c)
	hook := r.onRun
	failing := r.fail[c.String()] > 0
	if failing {
		r.fail[c.String()]--
	}
	r.mu.Unlock()
	if failing {
		return nil, errors.New(name + ": exit status 1: a password is required")
	}
	if hook != nil {
		hook(c)
	}
	return nil, nil
}

func (r *scriptedRunner) RunInteractive(_ context.Context, name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interactive = append(r.interactive, call{name: name, args: args})
	return nil
}

func (r *scriptedRunner) LookPath(name string) (string, error) {
	if r.missing[name] {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/bin/" + name, nil
}

func (r *scriptedRunner) commandLines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.String())
	}
	return out
}

type countingAuth struct {
	calls int
	err   error
}

func (a *countingAuth) Check(context.Context) bool { return false }
func (a *countingAuth) Authenticate(context.Context) error {
	a.calls++
	return a.err
}
func (a *countingAuth) InstallRule(context.Context, string) error { return nil }
func (a *countingAuth) User() (string, error)                    { return "alice", nil }
