package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintenv_DefaultEnvironment(t *testing.T) {
	f := newFixture(t, sampleDefaults)

	stdout, stderr, code := f.run(t, ModePrint)
	require.Equal(t, 0, code, stderr)
	assertGolden(t, "printenv_defaults", stdout)
	assert.Equal(t, "Warning: Bad CRC, using default environment\n", stderr)
	assert.Empty(t, f.imageBytes(t), "read mode must not write the media")
}

func TestPrintenv_Names(t *testing.T) {
	f := newFixture(t, sampleDefaults)

	stdout, _, code := f.run(t, ModePrint, "bootdelay", "missing", "baudrate")
	require.Equal(t, 0, code)
	assertGolden(t, "printenv_names", stdout)
}

func TestPrintenv_NoHeader(t *testing.T) {
	f := newFixture(t, sampleDefaults)

	stdout, _, code := f.run(t, ModePrint, "-n", "baudrate")
	require.Equal(t, 0, code)
	assert.Equal(t, "115200\n", stdout)

	stdout, _, code = f.run(t, ModePrint, "-n", "baudrate", "missing", "bootdelay")
	require.Equal(t, 0, code)
	assert.Equal(t, "115200\n\n2\n", stdout)

	// Without names -n has nothing to strip.
	stdout, _, code = f.run(t, ModePrint, "-n")
	require.Equal(t, 0, code)
	assertGolden(t, "printenv_defaults", stdout)
}

func TestPrintenv_StoredEnvironment(t *testing.T) {
	f := newFixture(t, sampleDefaults)
	_, stderr, code := f.run(t, ModeSet, "bootdelay", "0")
	require.Equal(t, 0, code, stderr)

	stdout, stderr, code := f.run(t, ModePrint)
	require.Equal(t, 0, code)
	assert.Empty(t, stderr, "no warning once a valid copy exists")
	assert.Equal(t, "bootcmd=run distro_bootcmd\nbootdelay=0\nbaudrate=115200\n", stdout)
}

func TestPrintenv_Errors(t *testing.T) {
	t.Run("missing configuration", func(t *testing.T) {
		f := newFixture(t, sampleDefaults)
		f.config = f.config + ".missing"
		_, stderr, code := f.run(t, ModePrint)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "Error: config: read")
	})

	t.Run("no valid copy and no defaults", func(t *testing.T) {
		f := newFixture(t, sampleDefaults)
		f.defaults = f.defaults + ".missing"
		stdout, stderr, code := f.run(t, ModePrint)
		assert.Equal(t, 1, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "Error: ")
		assert.Contains(t, stderr, "no valid stored copy")
	})

	t.Run("script flag only in write mode", func(t *testing.T) {
		f := newFixture(t, sampleDefaults)
		_, stderr, code := f.run(t, ModePrint, "-s", "script.txt")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "unknown shorthand flag: 's'")
	})
}
