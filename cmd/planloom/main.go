package main

import (
	"os"

	"github.com/planloom/planloom/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
