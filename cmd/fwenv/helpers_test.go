package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bootenv/config"
	"github.com/joshuapare/bootenv/env"
)

const regionSize = 512

const sampleDefaults = `bootcmd=run distro_bootcmd
bootdelay=2
baudrate=115200
`

// fixture is a redundant environment kept in one image file, with its
// configuration and default file in a temp dir.
type fixture struct {
	dir      string
	config   string
	image    string
	defaults string
}

func newFixture(t *testing.T, defaults string) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:      dir,
		config:   filepath.Join(dir, "fw_env.yaml"),
		image:    filepath.Join(dir, "env.img"),
		defaults: filepath.Join(dir, "u-boot-initial-env"),
	}
	cfg := fmt.Sprintf(`lockfile: %s
copies:
  - device: %s
    offset: 0x0
    size: 0x%x
  - device: %s
    offset: 0x%x
    size: 0x%x
`, filepath.Join(dir, "fw_printenv.lock"), f.image, regionSize, f.image, regionSize, regionSize)
	require.NoError(t, os.WriteFile(f.config, []byte(cfg), 0o644))
	require.NoError(t, os.WriteFile(f.image, nil, 0o644))
	require.NoError(t, os.WriteFile(f.defaults, []byte(defaults), 0o644))
	return f
}

// run executes the command in mode against the fixture and returns what it
// wrote to stdout and stderr along with the exit status.
func (f *fixture) run(t *testing.T, mode Mode, args ...string) (string, string, int) {
	t.Helper()
	return f.runWithInput(t, mode, "", args...)
}

func (f *fixture) runWithInput(t *testing.T, mode Mode, stdin string, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(mode)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"-c", f.config, "-f", f.defaults}, args...))
	code := run(cmd)
	return stdout.String(), stderr.String(), code
}

// open loads the fixture's environment read-only, without defaults.
func (f *fixture) open(t *testing.T) *env.Store {
	t.Helper()
	cfg, err := config.Load(f.config)
	require.NoError(t, err)
	s, err := env.Open(cfg, env.Options{ReadOnly: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func (f *fixture) imageBytes(t *testing.T) []byte {
	t.Helper()
	b, err := os.ReadFile(f.image)
	require.NoError(t, err)
	return b
}

func assertGolden(t *testing.T, name, got string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(got))
}
