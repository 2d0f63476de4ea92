package scene

import "github.com/philipparndt/gobim/pkg/geometry"

// Item is one loaded element of a model. Mesh is nil for elements that
// carry no renderable geometry (spatial containers, openings).
type Item struct {
	ID   string
	Name string
	Mesh *Mesh
}

// Model is a loaded building model: a named list of items.
type Model struct {
	Name  string
	Items []*Item
}

// NewModel creates an empty model.
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// AddItem appends an item to the model.
func (m *Model) AddItem(item *Item) {
	m.Items = append(m.Items, item)
}

// BoundingBox returns the bounds of all item geometry.
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, item := range m.Items {
		if item.Mesh == nil || item.Mesh.Geometry == nil {
			continue
		}
		for _, tri := range item.Mesh.Geometry.Triangles {
			bbox.Extend(tri.V1)
			bbox.Extend(tri.V2)
			bbox.Extend(tri.V3)
		}
	}
	return bbox
}
