package device

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrReadOnly is returned by Write on an accessor opened read-only.
var ErrReadOnly = errors.New("device: opened read-only")

// File accesses a regular file or a block device node.
type File struct {
	f        *os.File
	path     string
	regular  bool
	readOnly bool
}

// OpenFile opens an existing file or device node. The file is never created:
// a missing device is a configuration problem, not virgin media.
func OpenFile(path string, readOnly bool) (*File, error) {
	flag := os.O_RDWR
	if readOnly {
		flag = os.O_RDONLY
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("open device: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat device: %w", err)
	}
	return &File{
		f:        f,
		path:     path,
		regular:  st.Mode().IsRegular(),
		readOnly: readOnly,
	}, nil
}

// Path returns the path the accessor was opened with.
func (d *File) Path() string { return d.path }

// Read returns n bytes at off. Bytes past the end of a regular file read as
// zero, so a region on a short image file decodes as an invalid copy instead
// of failing the open.
func (d *File) Read(off int64, n int) ([]byte, error) {
	if off < 0 || n < 0 {
		return nil, fmt.Errorf("read %s: negative range off=%d n=%d", d.path, off, n)
	}
	b := make([]byte, n)
	_, err := d.f.ReadAt(b, off)
	if errors.Is(err, io.EOF) && d.regular {
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s at %d: %w", d.path, off, err)
	}
	return b, nil
}

// Write stores b at off.
func (d *File) Write(off int64, b []byte) error {
	if d.readOnly {
		return fmt.Errorf("write %s: %w", d.path, ErrReadOnly)
	}
	n, err := d.f.WriteAt(b, off)
	if err != nil {
		return fmt.Errorf("write %s at %d: %w", d.path, off, err)
	}
	if n != len(b) {
		return fmt.Errorf("write %s at %d: %w", d.path, off, io.ErrShortWrite)
	}
	return nil
}

// Sync flushes written data to stable storage using the strongest primitive
// the platform offers.
func (d *File) Sync() error {
	if d.readOnly {
		return nil
	}
	if err := fdatasync(d.f); err != nil {
		return fmt.Errorf("sync %s: %w", d.path, err)
	}
	return nil
}

// Close closes the underlying file.
func (d *File) Close() error {
	return d.f.Close()
}
