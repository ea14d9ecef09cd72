package buf

import "bytes"

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) || n > len(b)-off {
		return nil, false
	}
	return b[off : off+n], true
}

// CString returns the NUL-terminated string starting at off and the offset
// just past its terminator. ok is false when no NUL occurs before len(b).
func CString(b []byte, off int) (s string, next int, ok bool) {
	if off < 0 || off >= len(b) {
		return "", off, false
	}
	i := bytes.IndexByte(b[off:], 0)
	if i < 0 {
		return "", off, false
	}
	return string(b[off : off+i]), off + i + 1, true
}
