// Package device provides the raw storage accessors that stored environment
// copies are read from and written to.
//
// An Accessor moves fixed-size byte ranges at absolute offsets. It knows
// nothing about the environment layout; the engine in package env owns that.
// Writes are all-or-nothing from the caller's point of view: a Write that
// cannot store every byte reports an error, never a short count.
package device

// Accessor reads and writes byte ranges of one backing device or file.
type Accessor interface {
	// Read returns exactly n bytes starting at off.
	Read(off int64, n int) ([]byte, error)
	// Write stores all of b at off or returns an error.
	Write(off int64, b []byte) error
	// Sync makes previous writes durable.
	Sync() error
	// Close releases the device.
	Close() error
}

// Opener opens the accessor for a configured device path.
type Opener func(path string, readOnly bool) (Accessor, error)

// FileOpener opens path with OpenFile.
func FileOpener(path string, readOnly bool) (Accessor, error) {
	f, err := OpenFile(path, readOnly)
	if err != nil {
		return nil, err
	}
	return f, nil
}
