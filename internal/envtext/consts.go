// Package envtext reads the plain-text name=value files used to seed a
// default environment and to script batch changes.
package envtext

const (
	// CommentPrefix starts a comment line in scripts.
	CommentPrefix = "#"
	// Assignment separates a name from its value.
	Assignment = "="

	// ScannerInitialBufferSize is the initial line buffer.
	ScannerInitialBufferSize = 4 * 1024
	// ScannerMaxLineSize bounds a single line; boot scripts can be long.
	ScannerMaxLineSize = 1024 * 1024
)
