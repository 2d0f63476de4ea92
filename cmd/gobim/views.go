package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gobim/internal/section"
	"github.com/philipparndt/gobim/pkg/analysis"
	"github.com/philipparndt/gobim/pkg/stl"
	"github.com/spf13/cobra"
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "Manage the section views stored next to a model",
	Long:  "List, create and delete the named section views in the model's sidecar file.",
}

var viewsListCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List the saved section views",
	Args:  cobra.ExactArgs(1),
	Run:   runViewsList,
}

var viewsAddStoreysCmd = &cobra.Command{
	Use:   "add-storeys [file]",
	Short: "Create a storey view for every estimated storey",
	Long:  "Analyze the model height and create one horizontal section view per estimated storey.",
	Args:  cobra.ExactArgs(1),
	Run:   runViewsAddStoreys,
}

var viewsDeleteCmd = &cobra.Command{
	Use:   "delete [file] [name]",
	Short: "Delete a saved section view by name",
	Args:  cobra.ExactArgs(2),
	Run:   runViewsDelete,
}

func init() {
	viewsCmd.AddCommand(viewsListCmd)
	viewsCmd.AddCommand(viewsAddStoreysCmd)
	viewsCmd.AddCommand(viewsDeleteCmd)
	rootCmd.AddCommand(viewsCmd)
}

func runViewsList(cmd *cobra.Command, args []string) {
	views, err := section.LoadViews(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading views: %v\n", err)
		os.Exit(1)
	}

	if len(views) == 0 {
		fmt.Println("No saved views")
		return
	}

	fmt.Printf("%d saved view(s):\n", len(views))
	for _, v := range views {
		detail := ""
		if v.Point != nil {
			detail = fmt.Sprintf(" through (%.2f, %.2f, %.2f)", v.Point.X, v.Point.Y, v.Point.Z)
		}
		fmt.Printf("  %-24s %s%s\n", v.Name, v.Type, detail)
	}
}

func runViewsAddStoreys(cmd *cobra.Command, args []string) {
	modelPath := args[0]

	model, err := stl.Parse(modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing model file: %v\n", err)
		os.Exit(1)
	}

	views, err := section.LoadViews(modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading views: %v\n", err)
		os.Exit(1)
	}

	manager := section.NewViewsManager(nil, nil)
	manager.SetViews(views)

	result := analysis.AnalyzeModel(model)
	for i, elevation := range result.StoreyElevations() {
		name := fmt.Sprintf("Storey %d", i+1)
		manager.CreateStoreyView(name, elevation)
		fmt.Printf("Created %q at elevation %.2f\n", name, elevation)
	}

	if err := section.SaveViews(modelPath, manager.Views()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving views: %v\n", err)
		os.Exit(1)
	}
}

func runViewsDelete(cmd *cobra.Command, args []string) {
	modelPath, name := args[0], args[1]

	views, err := section.LoadViews(modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading views: %v\n", err)
		os.Exit(1)
	}

	manager := section.NewViewsManager(nil, nil)
	manager.SetViews(views)

	deleted := false
	for _, v := range manager.Views() {
		if v.Name == name {
			manager.DeleteView(v.ID)
			deleted = true
			break
		}
	}
	if !deleted {
		fmt.Fprintf(os.Stderr, "No view named %q\n", name)
		os.Exit(1)
	}

	if err := section.SaveViews(modelPath, manager.Views()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving views: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted %q\n", name)
}
