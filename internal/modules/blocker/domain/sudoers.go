package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var userPattern = regexp.MustCompile(`^[a-z_][a-z0-9_-]*[$]?$`)

// SudoersRule renders a drop-in that lets user run commands without a
// password. Commands must be absolute paths with their arguments.
func SudoersRule(user string, commands []string) (string, error) {
	if !userPattern.MatchString(user) {
		return "", fmt.Errorf("invalid user name %q", user)
	}
	if len(commands) == 0 {
		return "", fmt.Errorf("no commands to authorize")
	}
	for _, cmd := range commands {
		if !strings.HasPrefix(cmd, "/") || strings.ContainsAny(cmd, ",\n\\") {
			return "", fmt.Errorf("invalid sudoers command %q", cmd)
		}
	}
	return fmt.Sprintf("# Managed by focus. Remove this file to revoke.\n%s ALL=(root) NOPASSWD: %s\n", user, strings.Join(commands, ", ")), nil
}
