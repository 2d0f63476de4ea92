package section

import (
	"log"
	"math"

	"github.com/philipparndt/gobim/pkg/geometry"
	"github.com/philipparndt/gobim/pkg/scene"
)

const (
	// helperMinSize keeps degenerate scissors lines from producing an
	// invisible quad.
	helperMinSize = 0.1

	// Non-scissors helper quads are sized from the view range and
	// clamped to stay useful at both extremes.
	helperSizeMin = 20.0
	helperSizeMax = 200.0

	// rotationSkipDot is the threshold above which the cut normal is
	// treated as already aligned with the quad's face normal. Rotating
	// through a near-zero angle is numerically unstable.
	rotationSkipDot = 0.99
)

// quad face normal and edge direction of scene.NewPlaneGeometry
var (
	quadNormalAxis = geometry.NewVector3(0, 0, 1)
	quadEdgeAxis   = geometry.NewVector3(1, 0, 0)
)

// SectionHelperService manages the visible quads marking where cut
// planes lie. Helpers are visual feedback only and are independent of
// the actual clip effect.
type SectionHelperService struct {
	scene   *scene.Scene
	helpers map[string]*scene.Node
}

// NewSectionHelperService creates a helper service inserting into the
// given scene.
func NewSectionHelperService(sc *scene.Scene) *SectionHelperService {
	return &SectionHelperService{
		scene:   sc,
		helpers: make(map[string]*scene.Node),
	}
}

// CreateHelper builds, orients and inserts the helper quad for a cut
// plane and registers it under viewID, replacing any previous entry
// without disposing it (remove the old helper first when re-creating).
//
// Scissors-sourced views size the quad so its side equals the drawn
// line length: the diagonal is then line·√2 and the drawn line is fully
// inscribed as the square's diagonal. The quad sits at the midpoint of
// the picked points, and an extra spin about the cut normal aligns the
// diagonal with the drawn line. Other views use the stored point and a
// range-derived size.
func (s *SectionHelperService) CreateHelper(viewID string, view *View, normal, point geometry.Vector3, viewRange float64) *scene.Node {
	if s.scene == nil {
		log.Printf("section: no scene to create helper for view %s", viewID)
		return nil
	}

	visible := view == nil || view.HelpersVisible == nil || *view.HelpersVisible
	n := normal.Normalize()
	scissors := view != nil && view.Scissors != nil

	var size float64
	var position geometry.Vector3
	if scissors {
		size = math.Max(view.Scissors.P1.Distance(view.Scissors.P2), helperMinSize)
		// The stored point may be offset by the storage convention; the
		// quad belongs at the midpoint of what the user drew.
		position = view.Scissors.P1.MidPoint(view.Scissors.P2)
	} else {
		size = math.Min(math.Max(viewRange*2, helperSizeMin), helperSizeMax)
		position = point
	}

	node := scene.NewNode("section-helper-" + viewID)
	node.Visible = visible
	node.Mesh = scene.NewMesh(scene.NewPlaneGeometry(size), scene.NewMaterial("section-helper"))

	rotation := geometry.IdentityQuaternion()
	if n.Dot(quadNormalAxis) < rotationSkipDot {
		rotation = geometry.NewQuaternionFromUnitVectors(quadNormalAxis, n)
	}

	if scissors {
		if spin, ok := diagonalSpin(rotation, n, view.Scissors); ok {
			rotation = spin.Mul(rotation)
		}
	}

	node.Rotation = rotation
	node.Position = position

	s.scene.Add(node)
	s.scene.Root.UpdateWorldMatrix()
	// Insertion may run parent transforms over the node; pin the
	// transform down afterwards.
	node.Position = position
	node.Scale = geometry.NewVector3(1, 1, 1)
	s.scene.Root.UpdateWorldMatrix()

	s.helpers[viewID] = node
	return node
}

// diagonalSpin computes the rotation about the cut normal that brings
// the quad's diagonal onto the drawn line. Both the line direction and
// the rotated edge axis are projected onto the cut plane; the signed
// angle between them, shifted by 45° from edge to diagonal, is the spin.
func diagonalSpin(base geometry.Quaternion, n geometry.Vector3, line *ScissorsLine) (geometry.Quaternion, bool) {
	lineDir := line.P2.Sub(line.P1)
	if lineDir.Length() == 0 {
		return geometry.Quaternion{}, false
	}

	edge := base.Rotate(quadEdgeAxis)
	edgeProj := edge.ProjectOnPlane(n)
	lineProj := lineDir.ProjectOnPlane(n)
	if edgeProj.Length() == 0 || lineProj.Length() == 0 {
		return geometry.Quaternion{}, false
	}
	edgeProj = edgeProj.Normalize()
	lineProj = lineProj.Normalize()

	angle := math.Atan2(edgeProj.Cross(lineProj).Dot(n), edgeProj.Dot(lineProj))
	return geometry.NewQuaternionAxisAngle(n, angle-math.Pi/4), true
}

// ToggleVisibility flips the helper's visibility and returns the new
// state. It returns false when no helper is registered for the id.
func (s *SectionHelperService) ToggleVisibility(viewID string) bool {
	node, ok := s.helpers[viewID]
	if !ok {
		return false
	}
	node.Visible = !node.Visible
	return node.Visible
}

// IsVisible reports whether the helper for viewID exists and is visible.
func (s *SectionHelperService) IsVisible(viewID string) bool {
	node, ok := s.helpers[viewID]
	return ok && node.Visible
}

// RemoveHelper detaches the helper from the scene, disposes its
// geometry and materials and drops the registry entry. Removing an
// unknown id is a no-op.
func (s *SectionHelperService) RemoveHelper(viewID string) {
	node, ok := s.helpers[viewID]
	if !ok {
		return
	}
	delete(s.helpers, viewID)

	if parent := node.Parent(); parent != nil {
		parent.Remove(node)
	}
	if node.Mesh != nil {
		if node.Mesh.Geometry != nil {
			node.Mesh.Geometry.Dispose()
		}
		for _, mat := range node.Mesh.Materials {
			if mat != nil {
				mat.Dispose()
			}
		}
	}
}

// Helper returns the registered helper node for viewID, or nil.
func (s *SectionHelperService) Helper(viewID string) *scene.Node {
	return s.helpers[viewID]
}
