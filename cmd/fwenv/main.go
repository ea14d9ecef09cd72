// Command fwenv reads and writes the bootloader environment from Linux.
//
// The binary is installed under two names. Invoked as fw_printenv it prints
// variables; invoked as fw_setenv it changes them:
//
//	fw_printenv [-n] [name ...]
//	fw_setenv name value [name value ...] [name]
//	fw_setenv -s script
package main

import (
	"os"
)

func main() {
	os.Exit(execute(modeFor(os.Args[0]), os.Args[1:]))
}
