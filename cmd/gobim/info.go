package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gobim/pkg/analysis"
	"github.com/philipparndt/gobim/pkg/stl"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a model file",
	Long:  "Show model statistics including dimensions, element count, surface area and the estimated storeys.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	model, err := stl.Parse(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing model file: %v\n", err)
		os.Exit(1)
	}

	result := analysis.AnalyzeModel(model)

	fmt.Println("Model Information")
	fmt.Println("=================")
	if model.Name != "" {
		fmt.Printf("Name: %s\n", model.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Statistics:")
	fmt.Printf("  Elements: %d\n", result.SolidCount)
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Surface Area: %.3f square units\n\n", result.SurfaceArea)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.3f units\n", result.Dimensions.X)
	fmt.Printf("  Height (Y): %.3f units\n", result.Dimensions.Y)
	fmt.Printf("  Depth (Z): %.3f units\n", result.Dimensions.Z)
	fmt.Printf("  Footprint: %.3f square units\n", result.FootprintArea)
	fmt.Printf("  Estimated storeys: %d\n\n", result.EstimatedStoreys)

	if len(result.Solids) > 1 {
		fmt.Println("Elements:")
		for _, solid := range result.Solids {
			name := solid.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Printf("  %-24s %6d triangles, %.3f square units\n", name, solid.TriangleCount, solid.SurfaceArea)
		}
	}
}
