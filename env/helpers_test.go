package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bootenv/config"
	"github.com/joshuapare/bootenv/device"
	"github.com/joshuapare/bootenv/internal/format"
)

const (
	devA     = "/dev/envA"
	devB     = "/dev/envB"
	copySize = 1024
)

// singleSetup returns a one-copy configuration backed by a zeroed device.
func singleSetup(t *testing.T, size int) (*config.Config, device.MemSet) {
	t.Helper()
	cfg := &config.Config{Regions: []config.Region{{Device: devA, Offset: 0, Size: size}}}
	require.NoError(t, cfg.Validate())
	return cfg, device.MemSet{devA: device.NewMem(size)}
}

// redundantSetup returns a two-copy configuration, one copy per device.
func redundantSetup(t *testing.T, size int) (*config.Config, device.MemSet) {
	t.Helper()
	cfg := &config.Config{Regions: []config.Region{
		{Device: devA, Offset: 0, Size: size},
		{Device: devB, Offset: 0, Size: size},
	}}
	require.NoError(t, cfg.Validate())
	return cfg, device.MemSet{devA: device.NewMem(size), devB: device.NewMem(size)}
}

// putCopy encodes vars straight onto a device region.
func putCopy(t *testing.T, m *device.Mem, off int64, l format.Layout, seq uint8, vars ...format.Var) {
	t.Helper()
	b, err := format.Encode(vars, seq, l)
	require.NoError(t, err)
	copy(m.Buf[off:], b)
}

// readCopy decodes a device region.
func readCopy(t *testing.T, m *device.Mem, off int64, l format.Layout) (*format.Copy, error) {
	t.Helper()
	return format.Decode(append([]byte(nil), m.Buf[off:off+int64(l.Size)]...), l)
}

// collect drains a store into a slice in iteration order.
func collect(s *Store) []format.Var {
	var out []format.Var
	for name, value := range s.All() {
		out = append(out, format.Var{Name: name, Value: value})
	}
	return out
}

func writeDefaults(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "u-boot-initial-env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func kv(name, value string) format.Var {
	return format.Var{Name: name, Value: value}
}
