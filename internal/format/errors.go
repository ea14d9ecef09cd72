package format

import "errors"

var (
	// ErrChecksum indicates the stored checksum does not match the payload.
	ErrChecksum = errors.New("format: checksum mismatch")
	// ErrTruncated indicates the buffer length disagrees with the layout.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrUnterminated indicates a name or value ran to the end of the region.
	ErrUnterminated = errors.New("format: unterminated string")
	// ErrBadName indicates a name containing '=' or NUL, or an empty name.
	ErrBadName = errors.New("format: invalid variable name")
	// ErrBadValue indicates a value containing NUL.
	ErrBadValue = errors.New("format: invalid variable value")
	// ErrDuplicate indicates a name stored more than once in one copy.
	ErrDuplicate = errors.New("format: duplicate variable")
	// ErrTooLarge indicates the encoded table does not fit the region.
	ErrTooLarge = errors.New("format: payload exceeds region")
)
