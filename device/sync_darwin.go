//go:build darwin

package device

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync performs file descriptor sync.
//
// On macOS, F_FULLFSYNC pushes data past the drive cache. Some filesystems
// reject it, in which case plain fsync is used.
func fdatasync(f *os.File) error {
	fd := f.Fd()
	if _, err := unix.FcntlInt(fd, unix.F_FULLFSYNC, 0); err == nil {
		return nil
	}
	return unix.Fsync(int(fd))
}
