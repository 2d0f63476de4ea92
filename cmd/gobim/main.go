package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gobim/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gobim",
	Short: "A CLI tool for inspecting building models and their section views",
	Long: `gobim is a command-line tool for working with building models.
It reads STL geometry (ASCII and binary, including multi-solid files),
reports model statistics and manages the named section views stored in
the model's sidecar file.`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
