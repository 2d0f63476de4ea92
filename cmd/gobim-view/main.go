package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gobim/internal/app"
	"github.com/philipparndt/gobim/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gobim-view <file>",
	Short: "Interactive BIM model viewer with section cutting",
	Long: `gobim-view opens an STL model in an interactive 3D window.
Section views can be created by picking two points on the model,
moved along their normal, and saved next to the model file.`,
	Args:    cobra.ExactArgs(1),
	Version: version.GetFullVersion(),
	Run: func(cmd *cobra.Command, args []string) {
		app.Run(args[0])
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
