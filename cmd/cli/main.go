// Package main is entrypoint to cfndep cli application
package main

import (
	"os"

	"go.interactor.dev/cfndep/cmd/cli/commands"
)

func main() {
	command := commands.NewCommand()
	if err := command.Execute(); err != nil {
		commands.Report(os.Stderr, err)
		os.Exit(commands.ExitCode(err))
	}
}
