package main

import (
	"os"

	"github.com/spf13/cobra"

	"floe/internal/interfaces/cli/imports"
	"floe/internal/interfaces/cli/migrate"
	"floe/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "floe",
		Short: "Floe - Arctic research catalogue",
		Long:  `Floe serves a catalogue of Arctic research projects and imports grant data from the Gateway to Research registry.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		imports.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
