package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func runPrintenv(cmd *cobra.Command, opts *options, args []string) error {
	s, release, err := openStore(cmd, opts, true)
	if err != nil {
		return err
	}
	defer release()
	defer s.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for name, value := range s.All() {
			fmt.Fprintf(out, "%s=%s\n", name, value)
		}
		return nil
	}

	for _, name := range args {
		value, ok := s.Lookup(name)
		if !ok {
			printVerbose(opts, cmd, "%s is not defined\n", name)
		}
		if opts.noHeader {
			fmt.Fprintln(out, value)
			continue
		}
		fmt.Fprintf(out, "%s=%s\n", name, value)
	}
	return nil
}
