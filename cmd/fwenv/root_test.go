package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestModeFor(t *testing.T) {
	tests := []struct {
		argv0 string
		want  Mode
	}{
		{"fw_setenv", ModeSet},
		{"/usr/sbin/fw_setenv", ModeSet},
		{"fw_printenv", ModePrint},
		{"/usr/bin/fwenv", ModePrint},
		{"fw_setenv.sh", ModePrint},
	}
	for _, tt := range tests {
		t.Run(tt.argv0, func(t *testing.T) {
			assert.Equal(t, tt.want, modeFor(tt.argv0))
		})
	}
}

func TestVersionFlag(t *testing.T) {
	for _, mode := range []Mode{ModePrint, ModeSet} {
		var out bytes.Buffer
		cmd := newRootCmd(mode)
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"-V"})
		assert.Equal(t, 0, run(cmd))
		assert.Equal(t, version+"\n", out.String())
	}
}

func TestFlagsPerMode(t *testing.T) {
	printCmd := newRootCmd(ModePrint)
	assert.NotNil(t, printCmd.Flags().Lookup("no-header"))
	assert.Nil(t, printCmd.Flags().Lookup("script"))

	setCmd := newRootCmd(ModeSet)
	assert.NotNil(t, setCmd.Flags().Lookup("script"))
	assert.Nil(t, setCmd.Flags().Lookup("no-header"))

	for _, cmd := range []*cobra.Command{printCmd, setCmd} {
		f := cmd.Flags().Lookup("config")
		if assert.NotNil(t, f) {
			assert.Equal(t, "/etc/fw_env.config", f.DefValue)
		}
		assert.Equal(t, defaultEnvPath, cmd.Flags().Lookup("defenv").DefValue)
	}
}
