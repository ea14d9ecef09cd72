package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/bootenv/config"
	"github.com/joshuapare/bootenv/env"
)

// openStore loads the configuration, takes the lock file and opens the
// environment. The returned release func drops the lock and must run after
// the Store is closed.
func openStore(cmd *cobra.Command, opts *options, readOnly bool) (*env.Store, func(), error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	printVerbose(opts, cmd, "using configuration %s (%d copies)\n", opts.configPath, len(cfg.Regions))

	release, err := acquireLock(cfg.LockFile)
	if err != nil {
		return nil, nil, err
	}

	s, err := env.Open(cfg, env.Options{DefaultEnv: opts.defEnv, ReadOnly: readOnly})
	if err != nil {
		release()
		return nil, nil, err
	}
	if s.UsingDefault() {
		printWarning(cmd, "Bad CRC, using default environment\n")
	}
	return s, release, nil
}
