package env

import (
	"context"
	"fmt"

	"github.com/joshuapare/bootenv/internal/format"
	"github.com/joshuapare/bootenv/internal/logger"
	"github.com/joshuapare/bootenv/pkg/types"
)

// Persist writes the table back to storage.
//
// Nothing is written when the Store is clean and was not seeded from the
// defaults. Otherwise the table is encoded first; a table that does not fit
// fails with types.ErrKindOverflow before any byte reaches the device.
//
// Redundant protocol:
//  1. Encode with sequence = authoritative sequence + 1 (1 on virgin media)
//  2. Write the encoded copy over the inactive region
//  3. Sync the device
//  4. Only then treat the written region as authoritative
//
// The sequence byte sits under the checksum, so a write torn by power loss
// leaves a copy that fails validation and the previous copy stays in charge.
// With a single copy the region is overwritten in place and a torn write
// loses the environment; that configuration cannot be made atomic.
//
// On failure the table, the dirty state and the authoritative copy are left
// as they were so the caller can retry. ctx is checked before the write
// starts; a write in progress is not interrupted.
func (s *Store) Persist(ctx context.Context) error {
	if s.closed {
		return closedErr("persist")
	}
	if !s.NeedsPersist() {
		return nil
	}
	if s.readOnly {
		return types.ErrReadonly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	target, seq := s.nextTarget()
	data, err := format.Encode(s.table.Vars(), seq, s.layout)
	if err != nil {
		return fmt.Errorf("persist: %w", err)
	}

	r := s.cfg.Regions[target]
	dev := s.devs[target]
	if err := dev.Write(r.Offset, data); err != nil {
		return &types.Error{
			Kind: types.ErrKindIO,
			Msg:  fmt.Sprintf("write copy %d to %s at 0x%x", target, r.Device, r.Offset),
			Err:  err,
		}
	}
	if err := dev.Sync(); err != nil {
		return &types.Error{Kind: types.ErrKindIO, Msg: fmt.Sprintf("sync copy %d on %s", target, r.Device), Err: err}
	}

	s.active, s.seq = target, seq
	s.dirty = false
	s.pendingDefault = false
	logger.L.Debug("environment persisted",
		"copy", target, "device", r.Device, "seq", seq, "bytes", format.EncodedLen(s.table.Vars(), s.layout))
	return nil
}

// nextTarget picks the region and sequence byte for the next write.
func (s *Store) nextTarget() (int, uint8) {
	if !s.layout.Redundant {
		return 0, 0
	}
	if s.active == NoActiveCopy {
		return 0, 1
	}
	return 1 - s.active, s.seq + 1
}
