//go:build unix

package out

import (
	"errors"

	"golang.org/x/sys/unix"
)

type UnixSignaler struct{}

func NewProcessSignaler() UnixSignaler {
	return UnixSignaler{}
}

func (UnixSignaler) Terminate(pid int) error {
	return unix.Kill(pid, unix.SIGTERM)
}

func (UnixSignaler) Kill(pid int) error {
	return unix.Kill(pid, unix.SIGKILL)
}

// Alive probes pid with signal 0; EPERM still means the process exists.
func (UnixSignaler) Alive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
