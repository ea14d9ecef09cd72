package format

import (
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/joshuapare/bootenv/internal/buf"
	"github.com/joshuapare/bootenv/pkg/types"
)

// Var is one name/value pair in table order.
type Var struct {
	Name  string
	Value string
}

// Layout describes the shape of a stored copy.
type Layout struct {
	Size      int  // total region size in bytes
	Redundant bool // whether the copy carries a sequence byte
}

// HeaderSize returns the number of bytes preceding the payload.
func (l Layout) HeaderSize() int {
	if l.Redundant {
		return RedundantHeaderSize
	}
	return SingleHeaderSize
}

// Capacity returns the payload bytes available, terminator included.
func (l Layout) Capacity() int {
	return l.Size - l.HeaderSize()
}

// Validate reports whether the layout can hold at least an empty table.
func (l Layout) Validate() error {
	if l.Capacity() < TerminatorSize {
		return fmt.Errorf("region size %d too small for a %d-byte header: %w",
			l.Size, l.HeaderSize(), ErrTruncated)
	}
	return nil
}

// Copy is the decoded content of one stored copy.
type Copy struct {
	Seq  uint8 // zero for non-redundant layouts
	Vars []Var
}

// ValidName reports whether name can be stored.
func ValidName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "=\x00")
}

// ValidValue reports whether value can be stored.
func ValidValue(value string) bool {
	return strings.IndexByte(value, 0) < 0
}

// Checksum returns the CRC-32 (IEEE) of b.
func Checksum(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}

// PutChecksum stores the checksum of b[CRCSize:] in the header of b.
func PutChecksum(b []byte) {
	if len(b) < CRCSize {
		return
	}
	buf.PutU32LE(b[CRCOffset:], Checksum(b[CRCSize:]))
}

// Newer reports whether sequence a was written after b. Sequences use serial
// number arithmetic, so 0 is newer than 255.
func Newer(a, b uint8) bool {
	return int8(a-b) > 0
}

// EncodedLen returns the bytes vars occupy in a copy with layout l, header
// and terminator included.
func EncodedLen(vars []Var, l Layout) int {
	n := l.HeaderSize() + TerminatorSize
	for _, v := range vars {
		n += len(v.Name) + 1 + len(v.Value) + 1
	}
	return n
}

// Decode validates and parses a stored copy.
//
// A checksum mismatch yields an error of kind types.ErrKindCorrupt; any
// structural problem in a checksum-valid copy yields types.ErrKindMalformed.
func Decode(b []byte, l Layout) (*Copy, error) {
	if err := l.Validate(); err != nil {
		return nil, malformed(err)
	}
	if len(b) != l.Size {
		return nil, malformed(fmt.Errorf("have %d bytes, layout wants %d: %w", len(b), l.Size, ErrTruncated))
	}

	stored := buf.U32LE(b[CRCOffset:])
	if sum := Checksum(b[CRCSize:]); sum != stored {
		return nil, &types.Error{
			Kind: types.ErrKindCorrupt,
			Msg:  fmt.Sprintf("stored crc 0x%08x, computed 0x%08x", stored, sum),
			Err:  ErrChecksum,
		}
	}

	c := &Copy{}
	if l.Redundant {
		c.Seq = b[SeqOffset]
	}

	data, ok := buf.Slice(b, l.HeaderSize(), l.Capacity())
	if !ok {
		return nil, malformed(ErrTruncated)
	}
	seen := make(map[string]struct{})
	off := 0
	for off < len(data) {
		name, next, ok := buf.CString(data, off)
		if !ok {
			return nil, malformed(fmt.Errorf("name at payload offset %d: %w", off, ErrUnterminated))
		}
		if name == "" {
			break
		}
		if !ValidName(name) {
			return nil, malformed(fmt.Errorf("%q: %w", name, ErrBadName))
		}
		value, after, ok := buf.CString(data, next)
		if !ok {
			return nil, malformed(fmt.Errorf("value of %q: %w", name, ErrUnterminated))
		}
		if _, dup := seen[name]; dup {
			return nil, malformed(fmt.Errorf("%q: %w", name, ErrDuplicate))
		}
		seen[name] = struct{}{}
		c.Vars = append(c.Vars, Var{Name: name, Value: value})
		off = after
	}
	return c, nil
}

// Encode serializes vars into a region-sized buffer with layout l. seq is
// written only for redundant layouts.
//
// The size check happens before anything is produced, so an oversized table
// never yields a partial buffer.
func Encode(vars []Var, seq uint8, l Layout) ([]byte, error) {
	if err := l.Validate(); err != nil {
		return nil, malformed(err)
	}
	for _, v := range vars {
		if !ValidName(v.Name) {
			return nil, &types.Error{Kind: types.ErrKindInvalid, Msg: fmt.Sprintf("encode %q", v.Name), Err: ErrBadName}
		}
		if !ValidValue(v.Value) {
			return nil, &types.Error{Kind: types.ErrKindInvalid, Msg: fmt.Sprintf("encode %q", v.Name), Err: ErrBadValue}
		}
	}
	if need := EncodedLen(vars, l); need > l.Size {
		return nil, &types.Error{
			Kind: types.ErrKindOverflow,
			Msg:  fmt.Sprintf("environment needs %d bytes, region holds %d", need, l.Size),
			Err:  ErrTooLarge,
		}
	}

	out := make([]byte, l.Size)
	off := l.HeaderSize()
	for _, v := range vars {
		off += copy(out[off:], v.Name)
		off++ // NUL
		off += copy(out[off:], v.Value)
		off++ // NUL
	}
	// The terminator and padding are already zero.

	if l.Redundant {
		out[SeqOffset] = seq
	}
	PutChecksum(out)
	return out, nil
}

func malformed(err error) error {
	return &types.Error{Kind: types.ErrKindMalformed, Msg: "decode copy", Err: err}
}
