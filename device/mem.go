package device

import (
	"fmt"
	"io"
)

// Mem is an in-memory accessor. It records how it was used and can inject
// faults, which makes it the accessor of choice for exercising the engine.
type Mem struct {
	Buf []byte

	Reads  int // successful Read calls
	Writes int // successful Write calls
	Syncs  int
	Closes int

	ReadErr  error // returned by every Read when set
	WriteErr error // returned by every Write when set
	SyncErr  error // returned by every Sync when set

	// TornWrite, when positive, makes the next Write store only its first
	// TornWrite bytes before failing, like power lost mid-write.
	TornWrite int
}

// NewMem returns a zero-filled device of size bytes.
func NewMem(size int) *Mem {
	return &Mem{Buf: make([]byte, size)}
}

// Read returns a copy of n bytes at off.
func (m *Mem) Read(off int64, n int) ([]byte, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	if off < 0 || n < 0 || off+int64(n) > int64(len(m.Buf)) {
		return nil, fmt.Errorf("mem read off=%d n=%d size=%d: %w", off, n, len(m.Buf), io.ErrUnexpectedEOF)
	}
	m.Reads++
	out := make([]byte, n)
	copy(out, m.Buf[off:])
	return out, nil
}

// Write stores b at off, growing the buffer when needed.
func (m *Mem) Write(off int64, b []byte) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if off < 0 {
		return fmt.Errorf("mem write: negative offset %d", off)
	}
	if end := int(off) + len(b); end > len(m.Buf) {
		m.Buf = append(m.Buf, make([]byte, end-len(m.Buf))...)
	}
	if m.TornWrite > 0 && m.TornWrite < len(b) {
		copy(m.Buf[off:], b[:m.TornWrite])
		m.TornWrite = 0
		return fmt.Errorf("mem write: torn after partial store: %w", io.ErrShortWrite)
	}
	copy(m.Buf[off:], b)
	m.Writes++
	return nil
}

// Sync counts the call.
func (m *Mem) Sync() error {
	if m.SyncErr != nil {
		return m.SyncErr
	}
	m.Syncs++
	return nil
}

// Close counts the call. The contents survive so the same Mem can be
// reopened.
func (m *Mem) Close() error {
	m.Closes++
	return nil
}

// MemSet maps device paths to in-memory devices.
type MemSet map[string]*Mem

// Open is an Opener over the set. Unknown paths fail like a missing file.
func (s MemSet) Open(path string, _ bool) (Accessor, error) {
	m, ok := s[path]
	if !ok {
		return nil, fmt.Errorf("open device %s: no such in-memory device", path)
	}
	return m, nil
}
