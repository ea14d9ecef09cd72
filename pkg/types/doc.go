// Package types holds the error vocabulary shared by the bootenv packages.
//
// Every failure surfaced by the engine is a *Error carrying an ErrKind, so
// callers branch on errors.Is(err, types.ErrCorrupt) and friends rather than
// on message text. Kinds compare by category; the message and wrapped cause
// carry the detail.
//
// This package has no dependencies beyond the standard library.
package types
