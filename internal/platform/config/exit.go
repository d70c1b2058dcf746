package config

import (
	"fmt"
	"os"
)

// UsageExitCode is the status for bad configuration or usage. It matches
// what flag.ExitOnError uses for bad flags.
const UsageExitCode = 2

// Exitf reports a configuration problem on stderr and exits with
// UsageExitCode.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(UsageExitCode)
}
