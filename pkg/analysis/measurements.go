// Package analysis derives summary statistics from parsed building
// models for the info command and the viewer HUD.
package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/gobim/pkg/geometry"
	"github.com/philipparndt/gobim/pkg/stl"
)

// assumedStoreyHeight is used to estimate the storey count from the
// model height.
const assumedStoreyHeight = 3.0

// SolidInfo summarizes one solid of the model
type SolidInfo struct {
	Name          string
	TriangleCount int
	BoundingBox   geometry.BoundingBox
	SurfaceArea   float64
}

// Result contains the measurements of a building model
type Result struct {
	BoundingBox      geometry.BoundingBox
	Dimensions       geometry.Vector3
	SurfaceArea      float64
	FootprintArea    float64
	Height           float64
	EstimatedStoreys int
	TriangleCount    int
	SolidCount       int
	Solids           []SolidInfo
}

// AnalyzeModel measures a parsed model
func AnalyzeModel(model *stl.Model) *Result {
	result := &Result{
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
		SolidCount:    len(model.Solids),
	}

	result.Dimensions = result.BoundingBox.Size()
	result.FootprintArea = result.Dimensions.X * result.Dimensions.Z
	result.Height = result.Dimensions.Y
	if result.Height > 0 {
		result.EstimatedStoreys = int(math.Max(1, math.Floor(result.Height/assumedStoreyHeight)))
	}

	for _, solid := range model.Solids {
		info := SolidInfo{
			Name:          solid.Name,
			TriangleCount: len(solid.Triangles),
			BoundingBox:   geometry.NewBoundingBox(),
		}
		for _, triangle := range solid.Triangles {
			info.BoundingBox.Extend(triangle.V1)
			info.BoundingBox.Extend(triangle.V2)
			info.BoundingBox.Extend(triangle.V3)
			info.SurfaceArea += triangle.Area()
		}
		result.Solids = append(result.Solids, info)
	}

	return result
}

// StoreyElevations returns the elevation of each estimated storey,
// bottom first. They seed storey views when a model carries no explicit
// level information.
func (r *Result) StoreyElevations() []float64 {
	if r.EstimatedStoreys == 0 {
		return nil
	}
	elevations := make([]float64, 0, r.EstimatedStoreys)
	base := r.BoundingBox.Min.Y
	for i := 0; i < r.EstimatedStoreys; i++ {
		elevations = append(elevations, base+float64(i)*assumedStoreyHeight)
	}
	return elevations
}

// FindNearestVertex finds the vertex in the model nearest to a given point
func FindNearestVertex(model *stl.Model, point geometry.Vector3) (geometry.Vector3, float64) {
	var nearestVertex geometry.Vector3
	minDistance := math.MaxFloat64

	for _, solid := range model.Solids {
		for _, triangle := range solid.Triangles {
			for _, vertex := range []geometry.Vector3{triangle.V1, triangle.V2, triangle.V3} {
				distance := point.Distance(vertex)
				if distance < minDistance {
					minDistance = distance
					nearestVertex = vertex
				}
			}
		}
	}

	return nearestVertex, minDistance
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
