package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// versionCmd implements the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of barcut",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("barcut version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
