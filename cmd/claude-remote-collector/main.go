package main

import (
	"os"

	"github.com/bnema/claude-remote-collector/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
