package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bootenv/env"
	"github.com/joshuapare/bootenv/pkg/types"
)

// stdinScript makes -s read the script from standard input.
const stdinScript = "-"

func runSetenv(cmd *cobra.Command, opts *options, args []string) error {
	if opts.script != "" && len(args) > 0 {
		return errors.New("variables cannot be given together with -s")
	}

	// Read the script before taking the lock so a slow stdin producer
	// does not hold the environment.
	var script []byte
	if opts.script != "" {
		var err error
		if script, err = readScript(cmd, opts.script); err != nil {
			return err
		}
	}

	s, release, err := openStore(cmd, opts, false)
	if err != nil {
		return err
	}
	defer release()
	defer s.Close()

	if opts.script != "" {
		n, err := s.ApplyScript(bytes.NewReader(script))
		if err != nil {
			return err
		}
		printVerbose(opts, cmd, "script changed %d variable(s)\n", n)
	} else if err := applyArgs(s, args); err != nil {
		return err
	}

	if !s.NeedsPersist() {
		printVerbose(opts, cmd, "environment unchanged\n")
		return nil
	}
	if err := s.Persist(cmd.Context()); err != nil {
		return err
	}
	idx, seq := s.Active()
	printVerbose(opts, cmd, "environment written to copy %d (sequence %d)\n", idx, seq)
	return nil
}

// applyArgs consumes name/value pairs. A trailing name without a value
// deletes that variable.
func applyArgs(s *env.Store, args []string) error {
	for i := 0; i < len(args); i += 2 {
		name := args[i]
		if i+1 == len(args) {
			return s.Delete(name)
		}
		if err := s.Set(name, args[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func readScript(cmd *cobra.Command, path string) ([]byte, error) {
	if path == stdinScript {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, types.Wrap(types.ErrKindIO, "read script from stdin", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, types.Wrap(types.ErrKindIO, fmt.Sprintf("read script %s", path), err)
	}
	return b, nil
}
