package main

import (
	"fmt"
	"os"

	"github.com/andrei-cloud/go_dukpt/internal/commands/cli"
	"github.com/andrei-cloud/go_dukpt/internal/logging"
)

func main() {
	// replaced by the configured level and format once the config is loaded
	logging.InitLogger(false, true)

	root, err := cli.NewRootCommand()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
