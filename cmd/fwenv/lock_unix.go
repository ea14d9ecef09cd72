//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package main

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/bootenv/pkg/types"
)

// acquireLock takes an exclusive advisory lock on path, creating the file
// if needed. It blocks until the lock is free.
func acquireLock(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, types.Wrap(types.ErrKindIO, "open lock file "+path, err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, types.Wrap(types.ErrKindIO, "lock "+path, err)
	}
	return func() {
		_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
		f.Close()
	}, nil
}
