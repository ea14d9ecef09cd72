// Package format houses the encoder and decoder for a stored environment
// copy. A copy is a fixed-size region laid out as:
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x000   4    CRC-32 (IEEE) over every byte after this field
//	 0x004   1    Sequence byte (redundant layouts only)
//	 ...     n    name\0value\0 pairs, ended by an empty name (\0)
//	 ...     -    zero padding up to the region size
//
// Integers are little-endian. The checksum covers the sequence byte, the
// payload and the padding, so a single flipped byte anywhere after the
// checksum invalidates the copy.
package format

const (
	// CRCOffset is the position of the checksum field.
	CRCOffset = 0x00
	// CRCSize is the width of the checksum field.
	CRCSize = 4

	// SeqOffset is the position of the sequence byte in redundant layouts.
	SeqOffset = 0x04
	// SeqSize is the width of the sequence byte.
	SeqSize = 1

	// SingleHeaderSize is the header length of a non-redundant copy.
	SingleHeaderSize = CRCSize
	// RedundantHeaderSize is the header length of a redundant copy.
	RedundantHeaderSize = CRCSize + SeqSize

	// TerminatorSize is the single NUL that stands for the empty name.
	TerminatorSize = 1

	// NameValueSeparator may not appear in a variable name; text files use it
	// between name and value.
	NameValueSeparator = '='
)
