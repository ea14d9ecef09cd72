package env

import (
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/bootenv/internal/envtext"
	"github.com/joshuapare/bootenv/internal/logger"
	"github.com/joshuapare/bootenv/pkg/types"
)

// loadDefaults seeds the table from the default environment file. Lines
// without '=' and lines with an empty value are skipped; a repeated name
// keeps its first position and its last value.
func (s *Store) loadDefaults(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("default environment: %w", err)
	}
	defer f.Close()

	assigns, err := envtext.Parse(f, envtext.Options{})
	if err != nil {
		return fmt.Errorf("default environment %s: %w", path, err)
	}
	t := NewTable()
	for _, a := range assigns {
		if a.Value == "" {
			continue
		}
		t.Set(a.Name, a.Value)
	}

	s.table = t
	s.source = SourceDefault
	s.pendingDefault = true
	logger.L.Debug("environment seeded from defaults", "file", path, "vars", t.Len())
	return nil
}

// ApplyScript applies a script of name=value lines to the table and returns
// how many variables changed. Lines starting with '#' are comments and
// lines without '=' are ignored. "name=" deletes name.
//
// Each line goes through Set or Delete, so unchanged values do not dirty
// the Store.
func (s *Store) ApplyScript(r io.Reader) (int, error) {
	if s.closed {
		return 0, closedErr("apply script")
	}
	assigns, err := envtext.Parse(r, envtext.Options{Comments: true})
	if err != nil {
		return 0, types.Wrap(types.ErrKindIO, "read script", err)
	}
	changed := 0
	for _, a := range assigns {
		before, had := s.table.Get(a.Name)
		if a.Value == "" {
			if err := s.Delete(a.Name); err != nil {
				return changed, err
			}
			if had {
				changed++
			}
			continue
		}
		if err := s.Set(a.Name, a.Value); err != nil {
			return changed, fmt.Errorf("script line %d: %w", a.Line, err)
		}
		if !had || before != a.Value {
			changed++
		}
	}
	return changed, nil
}

// ApplyScriptFile applies the script at path. See ApplyScript.
func (s *Store) ApplyScriptFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, types.Wrap(types.ErrKindIO, "open script", err)
	}
	defer f.Close()
	return s.ApplyScript(f)
}
