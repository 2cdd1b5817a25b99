package cmd

import "os"

// Execute runs the compiler and exits the process with its exit code.  This
// should be called directly from main.
func Execute() {
	os.Exit(Main())
}
