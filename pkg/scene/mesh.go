package scene

import "github.com/philipparndt/gobim/pkg/geometry"

// Geometry holds the triangle data of a mesh. Dispose releases the
// backing buffers; the dispose count is tracked so leaked or
// double-released geometry can be detected.
type Geometry struct {
	Triangles []geometry.Triangle

	disposeCount int
}

// NewGeometry creates geometry from triangles.
func NewGeometry(triangles []geometry.Triangle) *Geometry {
	return &Geometry{Triangles: triangles}
}

// NewPlaneGeometry creates a square quad of the given side length,
// centered at the origin, lying in the XY plane with its face normal
// along +Z.
func NewPlaneGeometry(size float64) *Geometry {
	h := size / 2
	bl := geometry.NewVector3(-h, -h, 0)
	br := geometry.NewVector3(h, -h, 0)
	tr := geometry.NewVector3(h, h, 0)
	tl := geometry.NewVector3(-h, h, 0)
	normal := geometry.NewVector3(0, 0, 1)

	return NewGeometry([]geometry.Triangle{
		geometry.NewTriangle(normal, bl, br, tr),
		geometry.NewTriangle(normal, bl, tr, tl),
	})
}

// Dispose releases the geometry.
func (g *Geometry) Dispose() {
	g.Triangles = nil
	g.disposeCount++
}

// Disposed reports whether Dispose has been called.
func (g *Geometry) Disposed() bool {
	return g.disposeCount > 0
}

// DisposeCount returns how many times Dispose has been called.
func (g *Geometry) DisposeCount() int {
	return g.disposeCount
}

// Material holds the render state shared by one or more meshes,
// including the clipping planes the renderer applies to fragments.
type Material struct {
	Name string

	// ClippingPlanes are the active cut planes for this material.
	// With ClipIntersection false, planes union-clip: a fragment is
	// discarded when any plane clips it.
	ClippingPlanes   []*geometry.Plane
	ClipIntersection bool

	// NeedsUpdate marks the material dirty so the renderer re-uploads
	// its state on the next frame.
	NeedsUpdate bool

	disposeCount int
}

// NewMaterial creates a named material with no clipping planes.
func NewMaterial(name string) *Material {
	return &Material{Name: name}
}

// Dispose releases the material.
func (m *Material) Dispose() {
	m.ClippingPlanes = nil
	m.disposeCount++
}

// Disposed reports whether Dispose has been called.
func (m *Material) Disposed() bool {
	return m.disposeCount > 0
}

// DisposeCount returns how many times Dispose has been called.
func (m *Material) DisposeCount() int {
	return m.disposeCount
}

// Mesh couples geometry with the materials it is drawn with.
type Mesh struct {
	Geometry  *Geometry
	Materials []*Material
}

// NewMesh creates a mesh from geometry and materials.
func NewMesh(geom *Geometry, materials ...*Material) *Mesh {
	return &Mesh{Geometry: geom, Materials: materials}
}
