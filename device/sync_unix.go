//go:build linux || freebsd

package device

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync performs file descriptor sync.
//
// On Linux/FreeBSD, fdatasync() provides sufficient guarantees.
func fdatasync(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
