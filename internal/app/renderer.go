package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gobim/pkg/geometry"
	"github.com/philipparndt/gobim/pkg/scene"
	"github.com/philipparndt/gobim/pkg/stl"
)

var (
	helperFillColor = rl.NewColor(255, 165, 0, 40)
	helperEdgeColor = rl.NewColor(255, 165, 0, 255)
	pickLineColor   = rl.NewColor(255, 80, 80, 255)
)

// lightDir is the fixed light direction for flat shading
var lightDir = geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

// calculateAvgVertexSpacing calculates the average distance between vertices
func calculateAvgVertexSpacing(model *stl.Model) float32 {
	totalLength := 0.0
	edgeCount := 0

	for _, solid := range model.Solids {
		// Sample edge lengths to estimate vertex spacing
		sampleSize := min(len(solid.Triangles), 1000)
		for i := 0; i < sampleSize; i++ {
			triangle := solid.Triangles[i]
			totalLength += triangle.V1.Distance(triangle.V2)
			totalLength += triangle.V2.Distance(triangle.V3)
			totalLength += triangle.V3.Distance(triangle.V1)
			edgeCount += 3
		}
	}

	if edgeCount == 0 {
		return 1.0
	}
	return float32(totalLength / float64(edgeCount))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// drawModel draws every item of the model, skipping triangles that the
// item's clipping planes cut away.
func (app *App) drawModel() {
	for _, item := range app.Model.model.Items {
		if item.Mesh == nil || item.Mesh.Geometry == nil {
			continue
		}
		planes := itemPlanes(item.Mesh)

		for _, triangle := range item.Mesh.Geometry.Triangles {
			if triangleClipped(triangle, planes) {
				continue
			}

			v1 := toRaylib(triangle.V1)
			v2 := toRaylib(triangle.V2)
			v3 := toRaylib(triangle.V3)

			if app.View.showFilled {
				col := shadeColor(triangle)
				rl.DrawTriangle3D(v1, v2, v3, col)
				rl.DrawTriangle3D(v3, v2, v1, col)
			}
			if app.View.showWireframe {
				wire := rl.NewColor(100, 100, 100, 200)
				rl.DrawLine3D(v1, v2, wire)
				rl.DrawLine3D(v2, v3, wire)
				rl.DrawLine3D(v3, v1, wire)
			}
		}
	}
}

// drawHelpers draws the section helper quads from the scene graph as
// translucent fills with outlines.
func (app *App) drawHelpers() {
	app.Section.scene.Root.UpdateWorldMatrix()
	app.Section.scene.Traverse(func(node *scene.Node) {
		if !node.Visible || node.Mesh == nil || node.Mesh.Geometry == nil {
			return
		}
		for _, triangle := range node.Mesh.Geometry.Triangles {
			v1 := toRaylib(nodeVertexToWorld(node, triangle.V1))
			v2 := toRaylib(nodeVertexToWorld(node, triangle.V2))
			v3 := toRaylib(nodeVertexToWorld(node, triangle.V3))

			rl.DrawTriangle3D(v1, v2, v3, helperFillColor)
			rl.DrawTriangle3D(v3, v2, v1, helperFillColor)
			rl.DrawLine3D(v1, v2, helperEdgeColor)
			rl.DrawLine3D(v2, v3, helperEdgeColor)
			rl.DrawLine3D(v3, v1, helperEdgeColor)
		}
	})
}

// drawPickedLine draws the section line being picked: markers on the
// points and the connecting line once two exist.
func (app *App) drawPickedLine() {
	markerSize := app.Model.size * 0.01
	if markerSize == 0 {
		markerSize = 0.1
	}

	for _, p := range app.Section.pickedPoints {
		rl.DrawSphere(toRaylib(p), markerSize, pickLineColor)
	}
	if app.Interaction.hasHoveredVertex && app.Section.picking {
		rl.DrawSphere(toRaylib(app.Interaction.hoveredVertex), markerSize*0.8, rl.Yellow)
	}
	if len(app.Section.pickedPoints) == 2 {
		rl.DrawLine3D(toRaylib(app.Section.pickedPoints[0]), toRaylib(app.Section.pickedPoints[1]), pickLineColor)
	}
	if len(app.Section.pickedPoints) == 1 && app.Interaction.hasHoveredVertex {
		rl.DrawLine3D(toRaylib(app.Section.pickedPoints[0]), toRaylib(app.Interaction.hoveredVertex), rl.Yellow)
	}
}

// nodeVertexToWorld applies the node's scale, rotation and world
// position to a local vertex.
func nodeVertexToWorld(node *scene.Node, v geometry.Vector3) geometry.Vector3 {
	scaled := geometry.NewVector3(v.X*node.Scale.X, v.Y*node.Scale.Y, v.Z*node.Scale.Z)
	return node.WorldPosition().Add(node.Rotation.Rotate(scaled))
}

func itemPlanes(mesh *scene.Mesh) []*geometry.Plane {
	var planes []*geometry.Plane
	for _, mat := range mesh.Materials {
		if mat == nil {
			continue
		}
		planes = append(planes, mat.ClippingPlanes...)
	}
	return planes
}

func triangleClipped(triangle geometry.Triangle, planes []*geometry.Plane) bool {
	for _, p := range planes {
		if p != nil && triangle.ClippedBy(*p) {
			return true
		}
	}
	return false
}

func shadeColor(triangle geometry.Triangle) rl.Color {
	normal := triangle.Normal
	if normal.Length() == 0 {
		normal = triangle.CalculateNormal()
	}

	// Diffuse with 30% ambient floor
	lightIntensity := math.Max(0.3, -normal.Normalize().Dot(lightDir))
	baseColor := 200.0
	r := uint8(baseColor * lightIntensity * 0.5)
	g := uint8(baseColor * lightIntensity * 0.6)
	b := uint8(baseColor * lightIntensity)
	return rl.NewColor(r, g, b, 255)
}

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
