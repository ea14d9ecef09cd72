package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bootenv/config"
	"github.com/joshuapare/bootenv/internal/logger"
)

// Mode selects read or write behaviour. It is decided once, from the
// program name.
type Mode int

const (
	ModePrint Mode = iota
	ModeSet
)

const (
	printProgram = "fw_printenv"
	setProgram   = "fw_setenv"

	defaultEnvPath = "/etc/u-boot-initial-env"
)

// modeFor maps the invoked program name to a Mode. Anything other than
// fw_setenv prints.
func modeFor(argv0 string) Mode {
	if filepath.Base(argv0) == setProgram {
		return ModeSet
	}
	return ModePrint
}

func (m Mode) program() string {
	if m == ModeSet {
		return setProgram
	}
	return printProgram
}

// options holds the flags shared by both modes.
type options struct {
	mode        Mode
	configPath  string
	defEnv      string
	script      string
	noHeader    bool
	verbose     bool
	showVersion bool
}

func newRootCmd(mode Mode) *cobra.Command {
	opts := &options{mode: mode}

	cmd := &cobra.Command{
		Use:           mode.program() + " [name ...]",
		Short:         "Print bootloader environment variables",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			}
			logger.Init(logger.Options{Verbose: opts.verbose, Writer: cmd.ErrOrStderr()})
			if opts.mode == ModeSet {
				return runSetenv(cmd, opts, args)
			}
			return runPrintenv(cmd, opts, args)
		},
	}
	if mode == ModeSet {
		cmd.Use = mode.program() + " [name value ...] [name]"
		cmd.Short = "Set or delete bootloader environment variables"
		cmd.Long = `Set or delete bootloader environment variables.

Arguments are consumed as name/value pairs; a trailing name without a
value deletes that variable.

Script Syntax:
  key=value
  lines starting with '#' are treated as comment
  lines without '=' are ignored
  key= deletes key

Script Example:
  netdev=eth0
  kernel_addr=400000
  foo=empty empty empty    empty empty empty
  bar`
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "configuration file (fw_env.config or .yaml)")
	flags.StringVarP(&opts.defEnv, "defenv", "f", defaultEnvPath, "default environment if no valid one is found")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "add debugging information")
	flags.BoolVarP(&opts.showVersion, "version", "V", false, "print version and exit")
	if mode == ModeSet {
		flags.StringVarP(&opts.script, "script", "s", "", "read variables to be set from a script")
	} else {
		flags.BoolVarP(&opts.noHeader, "no-header", "n", false, "do not print variable name")
	}
	return cmd
}

// execute runs the command for mode and returns the process exit status.
func execute(mode Mode, args []string) int {
	cmd := newRootCmd(mode)
	cmd.SetArgs(args)
	return run(cmd)
}

func run(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		printError(cmd, "%v\n", err)
		return 1
	}
	return 0
}

// printError prints an error message
func printError(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: "+format, args...)
}

// printVerbose prints a diagnostic message if verbose mode is enabled
func printVerbose(opts *options, cmd *cobra.Command, format string, args ...interface{}) {
	if opts.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
	}
}

// printWarning prints a non-fatal message
func printWarning(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: "+format, args...)
}
