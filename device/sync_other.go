//go:build !linux && !freebsd && !darwin && !windows

package device

import "os"

func fdatasync(f *os.File) error {
	return f.Sync()
}
