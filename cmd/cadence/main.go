// main is the entry point for the cadence CLI.
package main

import (
	"os"

	"github.com/cadencehq/cadence/cmd"
	"github.com/cadencehq/cadence/internal/meetstore"
)

func main() {
	err := cmd.Execute()

	// Close the store before exiting; os.Exit skips deferred calls.
	meetstore.CloseStore()

	if err != nil {
		_, _ = os.Stderr.WriteString("❌ " + err.Error() + "\n")
		os.Exit(1)
	}
}
