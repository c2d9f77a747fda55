//go:build !windows

package elevation

import "golang.org/x/sys/unix"

// IsElevated reports whether the process is running as root, required
// before Tunnel Bringup can install routes/addresses.
func IsElevated() bool {
	return unix.Geteuid() == 0
}

func Hint() string {
	return "run this command with sudo"
}
