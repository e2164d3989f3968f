package main

import (
	"os"

	"github.com/corex-mon/check-pve/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Configuration and usage errors exit 2, before any API request.
		os.Exit(2)
	}
}
