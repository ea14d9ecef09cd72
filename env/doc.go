// Package env is the bootloader environment store engine.
//
// # Overview
//
// A bootloader keeps its variables (bootargs, ethaddr, bootcmd, ...) in a
// flat name/value table stored in one or two fixed-size regions of a raw
// block device, flash partition or image file. This package loads that
// table, lets callers read and change it in memory, and writes it back.
//
//	cfg, _ := config.Load("/etc/fw_env.config")
//	s, err := env.Open(cfg, env.Options{DefaultEnv: "/etc/u-boot-initial-env"})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	_ = s.Set("bootdelay", "3")
//	_ = s.Delete("preboot")
//	for name, value := range s.All() {
//	    fmt.Printf("%s=%s\n", name, value)
//	}
//	return s.Persist(ctx)
//
// # Lifecycle
//
//	Open ──► opened (stored copy) ──┐
//	     └─► opened (defaults) ─────┼─► Get/Set/Delete/All ─► Persist ─► Close
//	                                └─────────────────────────────────────┘
//
// Get, Set, Delete and All never touch storage. Only Persist writes, and it
// writes only when the table changed or was seeded from the defaults.
//
// After Close every error-returning method fails with types.ErrKindClosed.
// Lookup, Len and All have no error to return: they report an empty table
// instead, and Closed tells the two cases apart.
//
// # Redundant copies
//
// With two regions each copy carries a sequence byte under its checksum.
// Open picks the valid copy with the newer sequence, comparing with serial
// number arithmetic so the counter may wrap from 255 to 0. Persist always
// writes the other region with the next sequence, so a torn write never
// damages the copy currently in charge.
//
// # Errors
//
// Failures are *types.Error values. A bad copy is recovered from the other
// copy; when every copy is bad the default file is used; only when that also
// fails does Open return an error of kind types.ErrKindNoValidEnv. Device
// errors (types.ErrKindIO) are never recovered silently.
//
// # Thread Safety
//
// Store instances are not thread-safe. Callers must synchronize access
// externally.
package env
