package stl

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const asciiBuilding = `solid Wall-1
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 10 0 0
      vertex 10 3 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 10 3 0
      vertex 0 3 0
    endloop
  endfacet
endsolid Wall-1
solid Slab-1
  facet normal 0 1 0
    outer loop
      vertex 0 3 0
      vertex 10 3 0
      vertex 10 3 5
    endloop
  endfacet
endsolid Slab-1
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestParseASCIIMultiSolid(t *testing.T) {
	path := writeTempFile(t, "building.stl", asciiBuilding)

	model, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(model.Solids) != 2 {
		t.Fatalf("expected 2 solids, got %d", len(model.Solids))
	}
	if model.Solids[0].Name != "Wall-1" {
		t.Errorf("expected first solid 'Wall-1', got %q", model.Solids[0].Name)
	}
	if model.Solids[1].Name != "Slab-1" {
		t.Errorf("expected second solid 'Slab-1', got %q", model.Solids[1].Name)
	}
	if len(model.Solids[0].Triangles) != 2 {
		t.Errorf("expected 2 triangles in first solid, got %d", len(model.Solids[0].Triangles))
	}
	if len(model.Solids[1].Triangles) != 1 {
		t.Errorf("expected 1 triangle in second solid, got %d", len(model.Solids[1].Triangles))
	}
	if model.TriangleCount() != 3 {
		t.Errorf("expected 3 triangles total, got %d", model.TriangleCount())
	}

	// Model takes its name from the first solid
	if model.Name != "Wall-1" {
		t.Errorf("expected model name 'Wall-1', got %q", model.Name)
	}
	if model.Path != path {
		t.Errorf("expected path %q, got %q", path, model.Path)
	}
}

func TestParseASCIIUnnamedSolid(t *testing.T) {
	content := `solid
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid
`
	path := writeTempFile(t, "unnamed.stl", content)

	model, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Name falls back to the file name
	if model.Name != "unnamed" {
		t.Errorf("expected model name 'unnamed', got %q", model.Name)
	}
}

func TestParseBinary(t *testing.T) {
	var buf bytes.Buffer

	header := make([]byte, 80)
	copy(header, "test model")
	buf.Write(header)

	binary.Write(&buf, binary.LittleEndian, uint32(1))
	// normal
	binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 1})
	// vertices
	binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 0})
	binary.Write(&buf, binary.LittleEndian, [3]float32{4, 0, 0})
	binary.Write(&buf, binary.LittleEndian, [3]float32{0, 3, 0})
	// attribute byte count
	binary.Write(&buf, binary.LittleEndian, uint16(0))

	path := filepath.Join(t.TempDir(), "binary.stl")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing binary file: %v", err)
	}

	model, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(model.Solids) != 1 {
		t.Fatalf("expected 1 solid, got %d", len(model.Solids))
	}
	if model.Name != "test model" {
		t.Errorf("expected model name 'test model', got %q", model.Name)
	}
	if model.TriangleCount() != 1 {
		t.Fatalf("expected 1 triangle, got %d", model.TriangleCount())
	}

	triangle := model.Solids[0].Triangles[0]
	if math.Abs(triangle.Area()-6.0) > 1e-10 {
		t.Errorf("expected area 6.0, got %f", triangle.Area())
	}
}

func TestBoundingBoxAndSurfaceArea(t *testing.T) {
	path := writeTempFile(t, "building.stl", asciiBuilding)

	model, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	bbox := model.BoundingBox()
	if bbox.Min.X != 0 || bbox.Min.Y != 0 || bbox.Min.Z != 0 {
		t.Errorf("unexpected bbox min: %v", bbox.Min)
	}
	if bbox.Max.X != 10 || bbox.Max.Y != 3 || bbox.Max.Z != 5 {
		t.Errorf("unexpected bbox max: %v", bbox.Max)
	}

	// Two wall triangles (10x3 quad) plus half the 10x5 slab quad
	if math.Abs(model.SurfaceArea()-55.0) > 1e-10 {
		t.Errorf("expected surface area 55.0, got %f", model.SurfaceArea())
	}
}

func TestSceneModelConversion(t *testing.T) {
	path := writeTempFile(t, "building.stl", asciiBuilding)

	model, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	sm := model.SceneModel()
	if len(sm.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(sm.Items))
	}

	wall := sm.Items[0]
	if wall.Name != "Wall-1" {
		t.Errorf("expected item name 'Wall-1', got %q", wall.Name)
	}
	if wall.ID != "Wall-1#1" {
		t.Errorf("expected item ID 'Wall-1#1', got %q", wall.ID)
	}
	if wall.Mesh == nil || wall.Mesh.Geometry == nil {
		t.Fatal("expected item mesh with geometry")
	}
	if len(wall.Mesh.Geometry.Triangles) != 2 {
		t.Errorf("expected 2 triangles, got %d", len(wall.Mesh.Geometry.Triangles))
	}
	if len(wall.Mesh.Materials) != 1 {
		t.Fatalf("expected 1 material, got %d", len(wall.Mesh.Materials))
	}

	// Each item gets its own material so cuts can differ per element
	if wall.Mesh.Materials[0] == sm.Items[1].Mesh.Materials[0] {
		t.Error("expected distinct materials per item")
	}
}
