// Command hrctl refreshes and inspects the HR console sheet cache from the
// command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
