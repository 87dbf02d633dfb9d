package main

import (
	"os"

	"github.com/finpulse-dev/finpulse/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
