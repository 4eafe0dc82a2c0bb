package main

import (
	"fmt"
	"os"

	"fogreport/internal/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		fmt.Fprintln(os.Stderr, "fogreport:", err)
		os.Exit(1)
	}
}
