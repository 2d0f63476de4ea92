package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/gobim/pkg/geometry"
	"github.com/philipparndt/gobim/pkg/stl"
)

// buildingModel is a two-element model: a 10x6x5 wall shell footprint
// approximated by two quads at different heights.
func buildingModel() *stl.Model {
	model := stl.NewModel("house")

	wall := &stl.Solid{Name: "Wall-1"}
	wall.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(10, 0, 0),
		geometry.NewVector3(10, 6, 0),
	))
	wall.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(10, 6, 0),
		geometry.NewVector3(0, 6, 0),
	))
	model.AddSolid(wall)

	slab := &stl.Solid{Name: "Slab-1"}
	slab.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 1, 0),
		geometry.NewVector3(0, 3, 0),
		geometry.NewVector3(10, 3, 0),
		geometry.NewVector3(10, 3, 5),
	))
	model.AddSolid(slab)

	return model
}

func TestAnalyzeModel(t *testing.T) {
	result := AnalyzeModel(buildingModel())

	if result.TriangleCount != 3 {
		t.Errorf("expected 3 triangles, got %d", result.TriangleCount)
	}
	if result.SolidCount != 2 {
		t.Errorf("expected 2 solids, got %d", result.SolidCount)
	}
	if math.Abs(result.Dimensions.X-10) > 1e-10 {
		t.Errorf("expected width 10, got %f", result.Dimensions.X)
	}
	if math.Abs(result.Height-6) > 1e-10 {
		t.Errorf("expected height 6, got %f", result.Height)
	}
	if math.Abs(result.FootprintArea-50) > 1e-10 {
		t.Errorf("expected footprint 50, got %f", result.FootprintArea)
	}
	// 6m tall at 3m per storey
	if result.EstimatedStoreys != 2 {
		t.Errorf("expected 2 storeys, got %d", result.EstimatedStoreys)
	}

	if len(result.Solids) != 2 {
		t.Fatalf("expected 2 solid summaries, got %d", len(result.Solids))
	}
	if result.Solids[0].Name != "Wall-1" || result.Solids[0].TriangleCount != 2 {
		t.Errorf("unexpected first solid summary: %+v", result.Solids[0])
	}
	if math.Abs(result.Solids[1].SurfaceArea-25) > 1e-10 {
		t.Errorf("expected slab area 25, got %f", result.Solids[1].SurfaceArea)
	}
}

func TestStoreyElevations(t *testing.T) {
	result := AnalyzeModel(buildingModel())

	elevations := result.StoreyElevations()
	if len(elevations) != 2 {
		t.Fatalf("expected 2 elevations, got %d", len(elevations))
	}
	if math.Abs(elevations[0]-0) > 1e-10 {
		t.Errorf("expected first elevation 0, got %f", elevations[0])
	}
	if math.Abs(elevations[1]-3) > 1e-10 {
		t.Errorf("expected second elevation 3, got %f", elevations[1])
	}
}

func TestStoreyElevationsFlatModel(t *testing.T) {
	model := stl.NewModel("flat")
	solid := &stl.Solid{Name: "ground"}
	solid.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 1, 0),
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(1, 0, 1),
	))
	model.AddSolid(solid)

	result := AnalyzeModel(model)
	if result.EstimatedStoreys != 0 {
		t.Errorf("expected 0 storeys for flat model, got %d", result.EstimatedStoreys)
	}
	if result.StoreyElevations() != nil {
		t.Error("expected no elevations for flat model")
	}
}

func TestFindNearestVertex(t *testing.T) {
	model := buildingModel()

	vertex, distance := FindNearestVertex(model, geometry.NewVector3(9.9, 5.9, 0.1))
	if math.Abs(vertex.X-10) > 1e-10 || math.Abs(vertex.Y-6) > 1e-10 || math.Abs(vertex.Z) > 1e-10 {
		t.Errorf("unexpected nearest vertex: %v", vertex)
	}
	if distance > 0.2 {
		t.Errorf("unexpected distance: %f", distance)
	}
}
