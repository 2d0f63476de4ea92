package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gobim/internal/section"
	"github.com/philipparndt/gobim/pkg/geometry"
)

// getSelectionThreshold calculates the adaptive selection threshold
func (app *App) getSelectionThreshold() float64 {
	// Use larger threshold for low-density meshes
	baseThreshold := float64(app.Model.size) * 0.05
	spacingFactor := float64(app.Model.avgVertexSpacing) * 3.0
	return math.Max(baseThreshold, spacingFactor)
}

// findNearestVertex searches for the visible mesh vertex nearest to the
// ray. Vertices of triangles removed by the active section cut are not
// pickable.
func (app *App) findNearestVertex(ray rl.Ray) (geometry.Vector3, bool) {
	var nearestVertex geometry.Vector3
	minDist := float64(math.MaxFloat32)
	found := false

	selectionThreshold := app.getSelectionThreshold()

	seen := make(map[geometry.Vector3]bool)
	for _, item := range app.Model.model.Items {
		if item.Mesh == nil || item.Mesh.Geometry == nil {
			continue
		}
		planes := itemPlanes(item.Mesh)
		for _, triangle := range item.Mesh.Geometry.Triangles {
			if triangleClipped(triangle, planes) {
				continue
			}
			for _, vertex := range []geometry.Vector3{triangle.V1, triangle.V2, triangle.V3} {
				if seen[vertex] {
					continue
				}
				seen[vertex] = true

				dist := rayToPointDistance(ray, toRaylib(vertex))
				if dist < minDist && dist < selectionThreshold {
					minDist = dist
					nearestVertex = vertex
					found = true
				}
			}
		}
	}

	return nearestVertex, found
}

// updateHoverVertex updates the hovered vertex during section picking
func (app *App) updateHoverVertex() {
	if !app.Section.picking {
		app.Interaction.hasHoveredVertex = false
		return
	}

	ray := rl.GetMouseRay(rl.GetMousePosition(), app.Camera.camera)
	vertex, found := app.findNearestVertex(ray)
	app.Interaction.hoveredVertex = vertex
	app.Interaction.hasHoveredVertex = found
}

// pickSectionPoint handles a click during section line picking. The
// second point completes the line and creates and applies the view.
func (app *App) pickSectionPoint() {
	if !app.Interaction.hasHoveredVertex {
		fmt.Printf("Click: No vertex found within threshold %.2f\n", app.getSelectionThreshold())
		return
	}

	point := app.Interaction.hoveredVertex
	app.Section.pickedPoints = append(app.Section.pickedPoints, point)

	if len(app.Section.pickedPoints) < 2 {
		fmt.Println("First point set, pick the second point of the section line")
		return
	}

	p1 := app.Section.pickedPoints[0]
	p2 := app.Section.pickedPoints[1]
	app.Section.pickedPoints = nil
	app.Section.picking = false

	dir := app.cameraDirection()
	cameraDir := geometry.NewVector3(float64(dir.X), float64(dir.Y), float64(dir.Z))

	view := app.Section.manager.CreateSectionViewFromPoints(p1, p2, cameraDir, section.SectionViewOptions{})
	if view == nil {
		fmt.Println("Section line is degenerate, no cut created")
		return
	}

	app.Section.manager.ApplyView(view.ID)
	app.saveViews()
	fmt.Printf("Created section view %q\n", view.Name)
}

// rayToPointDistance returns the distance from a ray to a point
func rayToPointDistance(ray rl.Ray, point rl.Vector3) float64 {
	toPoint := rl.Vector3Subtract(point, ray.Position)

	// Project onto ray direction
	t := rl.Vector3DotProduct(toPoint, ray.Direction)
	if t < 0 {
		t = 0
	}

	closest := rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, t))
	diff := rl.Vector3Subtract(point, closest)
	return float64(rl.Vector3Length(diff))
}
