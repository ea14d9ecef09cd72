package env

import (
	"errors"
	"fmt"

	"github.com/joshuapare/bootenv/config"
	"github.com/joshuapare/bootenv/device"
	"github.com/joshuapare/bootenv/internal/format"
	"github.com/joshuapare/bootenv/internal/logger"
	"github.com/joshuapare/bootenv/pkg/types"
)

// Source says where the table came from at Open.
type Source int

const (
	// SourceStored means a valid stored copy was loaded.
	SourceStored Source = iota
	// SourceDefault means no stored copy was valid and the default file
	// seeded the table.
	SourceDefault
)

func (s Source) String() string {
	if s == SourceDefault {
		return "default"
	}
	return "stored"
}

// NoActiveCopy is reported by Active when no stored copy was valid.
const NoActiveCopy = -1

// Options tunes Open.
type Options struct {
	// DefaultEnv is the name=value file used when no stored copy is valid.
	// Empty disables the fallback.
	DefaultEnv string

	// Opener opens the accessor for a device path. Nil means
	// device.FileOpener.
	Opener device.Opener

	// ReadOnly opens devices read-only; Persist then fails.
	ReadOnly bool
}

// Store is an open environment. It owns the in-memory table and the device
// accessors for its lifetime.
//
// NOT thread-safe, and at most one Store should have a given region open at
// a time. Processes sharing a device coordinate outside this package (the
// fw_printenv command takes a file lock).
type Store struct {
	cfg    *config.Config
	layout format.Layout
	devs   []device.Accessor // indexed like cfg.Regions; may alias
	owned  []device.Accessor // distinct accessors, closed once each

	table  *Table
	source Source
	active int   // authoritative region, NoActiveCopy if none was valid
	seq    uint8 // sequence byte of the authoritative copy

	dirty          bool // table differs from the authoritative copy
	pendingDefault bool // table came from defaults and was never persisted
	readOnly       bool
	closed         bool
}

// Open loads the environment described by cfg.
//
// Every configured copy is read and decoded. With two copies the valid one
// carrying the newer sequence byte wins; a corrupt or malformed copy is
// logged and skipped. When no copy is valid the table is seeded from
// opts.DefaultEnv, and the Store then needs a Persist to put a valid copy on
// the media. If that file is unset or unreadable Open fails with an error of
// kind types.ErrKindNoValidEnv.
//
// A device that cannot be opened or read fails Open with types.ErrKindIO;
// I/O errors are never treated as a bad copy.
func Open(cfg *config.Config, opts Options) (*Store, error) {
	if cfg == nil {
		return nil, &types.Error{Kind: types.ErrKindConfig, Msg: "open: nil configuration"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opener := opts.Opener
	if opener == nil {
		opener = device.FileOpener
	}

	s := &Store{
		cfg:      cfg,
		layout:   cfg.Layout(),
		active:   NoActiveCopy,
		readOnly: opts.ReadOnly,
	}
	if err := s.openDevices(opener); err != nil {
		_ = s.closeDevices()
		return nil, err
	}

	copies, decodeErrs, err := s.readCopies()
	if err != nil {
		_ = s.closeDevices()
		return nil, err
	}

	if pick := selectCopy(copies); pick != NoActiveCopy {
		c := copies[pick]
		s.table = tableFrom(c.Vars)
		s.active, s.seq = pick, c.Seq
		s.source = SourceStored
		logger.L.Debug("environment loaded",
			"copy", pick, "device", cfg.Regions[pick].Device, "seq", c.Seq, "vars", s.table.Len())
		return s, nil
	}

	logger.L.Debug("no valid stored copy", "errors", errors.Join(decodeErrs...))
	if opts.DefaultEnv == "" {
		_ = s.closeDevices()
		return nil, &types.Error{
			Kind: types.ErrKindNoValidEnv,
			Msg:  "no valid stored copy and no default environment",
			Err:  errors.Join(decodeErrs...),
		}
	}
	if err := s.loadDefaults(opts.DefaultEnv); err != nil {
		_ = s.closeDevices()
		return nil, &types.Error{
			Kind: types.ErrKindNoValidEnv,
			Msg:  "no valid stored copy and default environment unusable",
			Err:  errors.Join(append(decodeErrs, err)...),
		}
	}
	return s, nil
}

func (s *Store) openDevices(open device.Opener) error {
	byPath := make(map[string]device.Accessor, len(s.cfg.Regions))
	s.devs = make([]device.Accessor, len(s.cfg.Regions))
	for i, r := range s.cfg.Regions {
		if d, ok := byPath[r.Device]; ok {
			s.devs[i] = d
			continue
		}
		d, err := open(r.Device, s.readOnly)
		if err != nil {
			return &types.Error{Kind: types.ErrKindIO, Msg: fmt.Sprintf("open copy %d", i), Err: err}
		}
		byPath[r.Device] = d
		s.devs[i] = d
		s.owned = append(s.owned, d)
	}
	return nil
}

// readCopies returns the decoded copies (nil where decoding failed) and the
// decode failures. Only accessor failures are returned as err.
func (s *Store) readCopies() ([]*format.Copy, []error, error) {
	copies := make([]*format.Copy, len(s.cfg.Regions))
	var decodeErrs []error
	for i, r := range s.cfg.Regions {
		raw, err := s.devs[i].Read(r.Offset, r.Size)
		if err != nil {
			return nil, nil, &types.Error{
				Kind: types.ErrKindIO,
				Msg:  fmt.Sprintf("read copy %d from %s at 0x%x", i, r.Device, r.Offset),
				Err:  err,
			}
		}
		c, err := format.Decode(raw, s.layout)
		if err != nil {
			logger.L.Debug("stored copy rejected", "copy", i, "device", r.Device, "error", err)
			decodeErrs = append(decodeErrs, fmt.Errorf("copy %d: %w", i, err))
			continue
		}
		copies[i] = c
	}
	return copies, decodeErrs, nil
}

// selectCopy picks the authoritative copy. Sequence bytes compare with
// serial number arithmetic so the counter may wrap; equal sequences favour
// copy 0.
func selectCopy(copies []*format.Copy) int {
	switch {
	case len(copies) == 1:
		if copies[0] != nil {
			return 0
		}
		return NoActiveCopy
	case copies[0] == nil && copies[1] == nil:
		return NoActiveCopy
	case copies[0] == nil:
		return 1
	case copies[1] == nil:
		return 0
	case format.Newer(copies[1].Seq, copies[0].Seq):
		return 1
	default:
		return 0
	}
}

// Close releases the device accessors. Any later call on the Store fails
// with types.ErrKindClosed.
func (s *Store) Close() error {
	if s.closed {
		return closedErr("close")
	}
	s.closed = true
	return s.closeDevices()
}

func (s *Store) closeDevices() error {
	var errs []error
	for _, d := range s.owned {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.owned = nil
	return types.Wrap(types.ErrKindIO, "close devices", errors.Join(errs...))
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool { return s.closed }

// Config returns the configuration the Store was opened with.
func (s *Store) Config() *config.Config { return s.cfg }

// Source reports whether the table came from a stored copy or the defaults.
func (s *Store) Source() Source { return s.source }

// UsingDefault reports whether the table was seeded from the default file.
func (s *Store) UsingDefault() bool { return s.source == SourceDefault }

// Dirty reports whether the table was changed since it was loaded or last
// persisted.
func (s *Store) Dirty() bool { return s.dirty }

// NeedsPersist reports whether Persist would write: the table is dirty, or
// it came from the defaults and no valid copy exists yet.
func (s *Store) NeedsPersist() bool { return s.dirty || s.pendingDefault }

// Active returns the authoritative region and its sequence byte, or
// NoActiveCopy when nothing valid has been read or written yet.
func (s *Store) Active() (index int, seq uint8) { return s.active, s.seq }

func closedErr(op string) error {
	return &types.Error{Kind: types.ErrKindClosed, Msg: op + ": environment store is closed"}
}
