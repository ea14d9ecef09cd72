//go:build windows

package device

import (
	"os"

	"golang.org/x/sys/windows"
)

// fdatasync performs file descriptor sync using FlushFileBuffers.
func fdatasync(f *os.File) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}
