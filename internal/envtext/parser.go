package envtext

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/joshuapare/bootenv/internal/format"
)

// Assign is one name=value line.
type Assign struct {
	Name  string
	Value string
	Line  int // 1-based line number
}

// Options selects the dialect.
type Options struct {
	// Comments makes lines starting with CommentPrefix comments. Default
	// files take every line literally; scripts enable this.
	Comments bool
}

// Parse reads name=value lines from r.
//
// Lines without '=' and lines whose name or value cannot be stored are
// skipped, not reported. A UTF-8 or UTF-16 byte order mark selects the
// matching decoding; without one the input is read as UTF-8. Values are
// taken verbatim up to the end of the line, minus a trailing CR.
func Parse(r io.Reader, opts Options) ([]Assign, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(transform.Nop))

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, ScannerInitialBufferSize), ScannerMaxLineSize)

	var out []Assign
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		line = strings.TrimLeft(line, " \t")

		if opts.Comments && strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		name, value, ok := strings.Cut(line, Assignment)
		if !ok {
			continue
		}
		if !format.ValidName(name) || !format.ValidValue(value) {
			continue
		}
		out = append(out, Assign{Name: name, Value: value, Line: lineNo})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning line %d: %w", lineNo+1, err)
	}
	return out, nil
}
