package stl

import (
	"fmt"

	"github.com/philipparndt/gobim/pkg/geometry"
	"github.com/philipparndt/gobim/pkg/scene"
)

// Solid is a single named body from an STL file. ASCII files can carry
// several solids; each one becomes an item of the scene model.
type Solid struct {
	Name      string
	Triangles []geometry.Triangle
}

// AddTriangle adds a triangle to the solid
func (s *Solid) AddTriangle(triangle geometry.Triangle) {
	s.Triangles = append(s.Triangles, triangle)
}

// Model represents a parsed STL file
type Model struct {
	Name   string
	Path   string
	Solids []*Solid
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// AddSolid adds a solid to the model
func (m *Model) AddSolid(solid *Solid) {
	m.Solids = append(m.Solids, solid)
}

// TriangleCount returns the number of triangles across all solids
func (m *Model) TriangleCount() int {
	count := 0
	for _, s := range m.Solids {
		count += len(s.Triangles)
	}
	return count
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, s := range m.Solids {
		for _, triangle := range s.Triangles {
			bbox.Extend(triangle.V1)
			bbox.Extend(triangle.V2)
			bbox.Extend(triangle.V3)
		}
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, s := range m.Solids {
		for _, triangle := range s.Triangles {
			totalArea += triangle.Area()
		}
	}
	return totalArea
}

// SceneModel converts the parsed file into a scene model with one item
// and one material per solid, so clipping planes can be applied per
// building element.
func (m *Model) SceneModel() *scene.Model {
	sm := scene.NewModel(m.Name)
	for i, s := range m.Solids {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("solid-%d", i+1)
		}
		mesh := scene.NewMesh(scene.NewGeometry(s.Triangles), scene.NewMaterial(name))
		sm.AddItem(&scene.Item{
			ID:   fmt.Sprintf("%s#%d", m.Name, i+1),
			Name: name,
			Mesh: mesh,
		})
	}
	return sm
}
