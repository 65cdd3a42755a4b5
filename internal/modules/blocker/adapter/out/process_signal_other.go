//go:build !unix

package out

import "os"

type OSSignaler struct{}

func NewProcessSignaler() OSSignaler {
	return OSSignaler{}
}

func (OSSignaler) Terminate(pid int) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return p.Kill()
}

func (s OSSignaler) Kill(pid int) error {
	return s.Terminate(pid)
}

func (OSSignaler) Alive(int) bool {
	return false
}
