package main

import (
	"os"

	"github.com/cyp0633/librrule/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
