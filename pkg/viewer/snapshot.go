package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/philipparndt/gobim/pkg/geometry"
	"github.com/philipparndt/gobim/pkg/scene"
)

var snapshotBackground = color.RGBA{30, 30, 34, 255}

// Snapshot renders the model into an image using a depth buffer.
// Triangles removed by the materials' clipping planes are skipped, so
// the image shows the current section cut. Helper quads from the scene
// graph are drawn as outlines on top.
func Snapshot(model *scene.Model, sceneGraph *scene.Scene, camera *Camera, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, snapshotBackground)
		}
	}

	zbuffer := make([]float64, width*height)
	for i := range zbuffer {
		zbuffer[i] = math.MaxFloat64
	}

	w, h := float64(width), float64(height)
	light := geometry.NewVector3(0.4, 0.8, 0.45).Normalize()

	for _, item := range model.Items {
		if item.Mesh == nil || item.Mesh.Geometry == nil {
			continue
		}
		planes := clippingPlanes(item.Mesh)
		for _, triangle := range item.Mesh.Geometry.Triangles {
			if clipped(triangle, planes) {
				continue
			}

			x1, y1, z1 := camera.Project(triangle.V1, w, h)
			x2, y2, z2 := camera.Project(triangle.V2, w, h)
			x3, y3, z3 := camera.Project(triangle.V3, w, h)
			if z1 <= 0.01 && z2 <= 0.01 && z3 <= 0.01 {
				continue
			}

			shade := flatShade(triangle, light)
			fillTriangleWithDepth(img, zbuffer,
				x1, y1, z1, x2, y2, z2, x3, y3, z3,
				color.RGBA{shade, shade, shade, 255})
		}
	}

	if sceneGraph != nil {
		sceneGraph.Root.UpdateWorldMatrix()
		sceneGraph.Traverse(func(node *scene.Node) {
			if !node.Visible || node.Mesh == nil || node.Mesh.Geometry == nil {
				return
			}
			for _, triangle := range node.Mesh.Geometry.Triangles {
				drawWorldEdges(img, camera, node, triangle, w, h)
			}
		})
	}

	return img
}

// WriteSnapshot renders the model and writes it as a PNG file.
func WriteSnapshot(path string, model *scene.Model, sceneGraph *scene.Scene, camera *Camera, width, height int) error {
	img := Snapshot(model, sceneGraph, camera, width, height)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

func flatShade(triangle geometry.Triangle, light geometry.Vector3) uint8 {
	normal := triangle.Normal
	if normal.Length() == 0 {
		normal = triangle.CalculateNormal()
	}
	intensity := math.Abs(normal.Normalize().Dot(light))
	return uint8(60 + intensity*170)
}

func drawWorldEdges(img *image.RGBA, camera *Camera, node *scene.Node, triangle geometry.Triangle, w, h float64) {
	vertices := []geometry.Vector3{
		nodeToWorld(node, triangle.V1),
		nodeToWorld(node, triangle.V2),
		nodeToWorld(node, triangle.V3),
	}
	for i := 0; i < 3; i++ {
		x1, y1, _ := camera.Project(vertices[i], w, h)
		x2, y2, _ := camera.Project(vertices[(i+1)%3], w, h)
		drawLine(img, int(x1), int(y1), int(x2), int(y2), helperColor)
	}
}
