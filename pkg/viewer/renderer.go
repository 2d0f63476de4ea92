package viewer

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gobim/pkg/geometry"
	"github.com/philipparndt/gobim/pkg/scene"
)

var helperColor = color.RGBA{255, 165, 0, 255}

// ModelRenderer renders a building model as a wireframe. Triangles cut
// away by the materials' clipping planes are not drawn, and section
// helper quads from the scene graph are drawn as outlines.
type ModelRenderer struct {
	widget.BaseWidget
	model          *scene.Model
	scene          *scene.Scene
	camera         *Camera
	lines          []*canvas.Line
	selectedPoints []geometry.Vector3
	pointMarkers   []*canvas.Circle
	dragStart      *fyne.Position
	isDragging     bool
	width          float64
	height         float64
	onSectionLine  func(p1, p2, cameraDir geometry.Vector3)
}

// NewModelRenderer creates a renderer over the model and the scene
// graph holding the section helpers.
func NewModelRenderer(model *scene.Model, sceneGraph *scene.Scene) *ModelRenderer {
	r := &ModelRenderer{
		model:  model,
		scene:  sceneGraph,
		camera: NewCamera(model.BoundingBox()),
	}
	r.ExtendBaseWidget(r)
	return r
}

// Camera returns the renderer's camera.
func (r *ModelRenderer) Camera() *Camera {
	return r.camera
}

// Rerender redraws the view at the last known size. Call after the
// clipping state or the scene graph changed outside the widget.
func (r *ModelRenderer) Rerender() {
	r.Render(r.width, r.height)
}

// SetModel swaps the rendered model, keeping the camera where it is.
func (r *ModelRenderer) SetModel(model *scene.Model) {
	r.model = model
	r.ClearSelection()
	r.Render(r.width, r.height)
}

// SetOnSectionLine sets the callback invoked once two points have been
// picked. The callback receives both points and the camera direction.
func (r *ModelRenderer) SetOnSectionLine(callback func(p1, p2, cameraDir geometry.Vector3)) {
	r.onSectionLine = callback
}

// CreateRenderer creates the renderer for the widget
func (r *ModelRenderer) CreateRenderer() fyne.WidgetRenderer {
	return &modelWidgetRenderer{
		renderer: r,
		objects:  []fyne.CanvasObject{},
	}
}

// Render updates the 3D view
func (r *ModelRenderer) Render(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width = width
	r.height = height

	r.lines = r.lines[:0]

	for _, item := range r.model.Items {
		if item.Mesh == nil || item.Mesh.Geometry == nil {
			continue
		}
		planes := clippingPlanes(item.Mesh)
		for _, triangle := range item.Mesh.Geometry.Triangles {
			if clipped(triangle, planes) {
				continue
			}
			r.appendTriangleEdges(triangle, width, height)
		}
	}

	r.appendHelperOutlines(width, height)
	r.updatePointMarkers()
	r.Refresh()
}

func (r *ModelRenderer) appendTriangleEdges(triangle geometry.Triangle, width, height float64) {
	vertices := []geometry.Vector3{triangle.V1, triangle.V2, triangle.V3}

	for i := 0; i < 3; i++ {
		v1 := vertices[i]
		v2 := vertices[(i+1)%3]

		x1, y1, z1 := r.camera.Project(v1, width, height)
		x2, y2, z2 := r.camera.Project(v2, width, height)

		// Simple depth-based color
		avgZ := (z1 + z2) / 2
		brightness := uint8(math.Max(50, math.Min(255, 100+avgZ*5)))

		line := canvas.NewLine(color.RGBA{brightness, brightness, brightness, 255})
		line.StrokeWidth = 1
		line.Position1 = fyne.NewPos(float32(x1), float32(y1))
		line.Position2 = fyne.NewPos(float32(x2), float32(y2))

		r.lines = append(r.lines, line)
	}
}

// appendHelperOutlines draws every visible mesh node of the scene graph
// as an outline, in world coordinates.
func (r *ModelRenderer) appendHelperOutlines(width, height float64) {
	if r.scene == nil {
		return
	}
	r.scene.Root.UpdateWorldMatrix()
	r.scene.Traverse(func(node *scene.Node) {
		if !node.Visible || node.Mesh == nil || node.Mesh.Geometry == nil {
			return
		}
		for _, triangle := range node.Mesh.Geometry.Triangles {
			world := geometry.NewTriangle(
				triangle.Normal,
				nodeToWorld(node, triangle.V1),
				nodeToWorld(node, triangle.V2),
				nodeToWorld(node, triangle.V3),
			)
			r.appendOutlineEdges(world, width, height)
		}
	})
}

func (r *ModelRenderer) appendOutlineEdges(triangle geometry.Triangle, width, height float64) {
	vertices := []geometry.Vector3{triangle.V1, triangle.V2, triangle.V3}
	for i := 0; i < 3; i++ {
		x1, y1, _ := r.camera.Project(vertices[i], width, height)
		x2, y2, _ := r.camera.Project(vertices[(i+1)%3], width, height)

		line := canvas.NewLine(helperColor)
		line.StrokeWidth = 2
		line.Position1 = fyne.NewPos(float32(x1), float32(y1))
		line.Position2 = fyne.NewPos(float32(x2), float32(y2))
		r.lines = append(r.lines, line)
	}
}

// nodeToWorld applies the node's scale, rotation and world position to
// a local vertex.
func nodeToWorld(node *scene.Node, v geometry.Vector3) geometry.Vector3 {
	scaled := geometry.NewVector3(v.X*node.Scale.X, v.Y*node.Scale.Y, v.Z*node.Scale.Z)
	return node.WorldPosition().Add(node.Rotation.Rotate(scaled))
}

// clippingPlanes collects the planes from all materials of a mesh.
func clippingPlanes(mesh *scene.Mesh) []*geometry.Plane {
	var planes []*geometry.Plane
	for _, mat := range mesh.Materials {
		if mat == nil {
			continue
		}
		planes = append(planes, mat.ClippingPlanes...)
	}
	return planes
}

// clipped reports whether any active plane cuts the triangle away.
func clipped(triangle geometry.Triangle, planes []*geometry.Plane) bool {
	for _, p := range planes {
		if p != nil && triangle.ClippedBy(*p) {
			return true
		}
	}
	return false
}

// updatePointMarkers updates the visual markers for selected points
func (r *ModelRenderer) updatePointMarkers() {
	r.pointMarkers = r.pointMarkers[:0]

	colors := []color.Color{
		color.RGBA{255, 0, 0, 255}, // Red for first point
		color.RGBA{0, 255, 0, 255}, // Green for second point
	}

	for i, point := range r.selectedPoints {
		x, y, _ := r.camera.Project(point, r.width, r.height)

		marker := canvas.NewCircle(colors[i%len(colors)])
		marker.StrokeColor = color.White
		marker.StrokeWidth = 2
		size := float32(10)
		marker.Resize(fyne.NewSize(size, size))
		marker.Move(fyne.NewPos(float32(x)-size/2, float32(y)-size/2))

		r.pointMarkers = append(r.pointMarkers, marker)
	}
}

// Dragged handles mouse drag events for rotation
func (r *ModelRenderer) Dragged(event *fyne.DragEvent) {
	if r.dragStart != nil {
		deltaX := event.Position.X - r.dragStart.X
		deltaY := event.Position.Y - r.dragStart.Y

		r.camera.Rotate(float64(-deltaY)*0.01, float64(deltaX)*0.01)
		r.Render(r.width, r.height)
	}
	r.dragStart = &event.Position
	r.isDragging = true
}

// DragEnd handles the end of a drag event
func (r *ModelRenderer) DragEnd() {
	r.dragStart = nil
	r.isDragging = false
}

// Tapped handles tap events for section line picking
func (r *ModelRenderer) Tapped(event *fyne.PointEvent) {
	if r.isDragging {
		return
	}

	nearestVertex, minDist := r.findNearestVertex(float64(event.Position.X), float64(event.Position.Y))

	// Only select if reasonably close (within 20 pixels)
	if minDist < 20 {
		r.addSelectedPoint(nearestVertex)
	}
}

// findNearestVertex finds the vertex closest to screen coordinates
func (r *ModelRenderer) findNearestVertex(screenX, screenY float64) (geometry.Vector3, float64) {
	var nearestVertex geometry.Vector3
	minDist := math.MaxFloat64

	seen := make(map[geometry.Vector3]bool)
	for _, item := range r.model.Items {
		if item.Mesh == nil || item.Mesh.Geometry == nil {
			continue
		}
		planes := clippingPlanes(item.Mesh)
		for _, triangle := range item.Mesh.Geometry.Triangles {
			if clipped(triangle, planes) {
				continue
			}
			for _, vertex := range []geometry.Vector3{triangle.V1, triangle.V2, triangle.V3} {
				if seen[vertex] {
					continue
				}
				seen[vertex] = true

				x, y, z := r.camera.Project(vertex, r.width, r.height)
				if z > 0 { // Only consider vertices in front of camera
					dist := math.Sqrt(math.Pow(x-screenX, 2) + math.Pow(y-screenY, 2))
					if dist < minDist {
						minDist = dist
						nearestVertex = vertex
					}
				}
			}
		}
	}

	return nearestVertex, minDist
}

// addSelectedPoint adds a point to the selection. Once two points are
// picked, the section line callback fires and the selection clears.
func (r *ModelRenderer) addSelectedPoint(point geometry.Vector3) {
	r.selectedPoints = append(r.selectedPoints, point)

	if len(r.selectedPoints) > 2 {
		r.selectedPoints = r.selectedPoints[len(r.selectedPoints)-2:]
	}

	r.updatePointMarkers()
	r.Refresh()

	if len(r.selectedPoints) == 2 && r.onSectionLine != nil {
		p1, p2 := r.selectedPoints[0], r.selectedPoints[1]
		r.selectedPoints = r.selectedPoints[:0]
		r.onSectionLine(p1, p2, r.camera.Direction())
	}
}

// SelectedPoints returns the currently picked points
func (r *ModelRenderer) SelectedPoints() []geometry.Vector3 {
	return r.selectedPoints
}

// ClearSelection clears all picked points
func (r *ModelRenderer) ClearSelection() {
	r.selectedPoints = r.selectedPoints[:0]
	r.pointMarkers = r.pointMarkers[:0]
	r.Refresh()
}

// Scrolled handles scroll events for zooming
func (r *ModelRenderer) Scrolled(event *fyne.ScrollEvent) {
	delta := -float64(event.Scrolled.DY) * 0.001
	r.camera.Zoom(delta)
	r.Render(r.width, r.height)
}

// modelWidgetRenderer implements fyne.WidgetRenderer
type modelWidgetRenderer struct {
	renderer *ModelRenderer
	objects  []fyne.CanvasObject
}

func (m *modelWidgetRenderer) Layout(size fyne.Size) {
	m.renderer.Render(float64(size.Width), float64(size.Height))
}

func (m *modelWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (m *modelWidgetRenderer) Refresh() {
	m.objects = m.objects[:0]

	for _, line := range m.renderer.lines {
		m.objects = append(m.objects, line)
	}
	for _, marker := range m.renderer.pointMarkers {
		m.objects = append(m.objects, marker)
	}

	canvas.Refresh(m.renderer)
}

func (m *modelWidgetRenderer) Objects() []fyne.CanvasObject {
	return m.objects
}

func (m *modelWidgetRenderer) Destroy() {}
