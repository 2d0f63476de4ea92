// Package section implements section cutting for loaded building
// models: clipping planes applied to every mesh material and the
// renderer, visible helper quads marking the cut, and named section
// views constructed from picked points or stored orientations.
package section

import (
	"log"

	"github.com/philipparndt/gobim/pkg/geometry"
	"github.com/philipparndt/gobim/pkg/scene"
)

// ModelSource exposes the currently loaded models. Item meshes are the
// primary target of clipping-plane application.
type ModelSource interface {
	LoadedModels() []*scene.Model
}

// RendererProvider hands out the renderer clipping state. The concrete
// viewer adapter implements this once; services never probe for shape.
type RendererProvider interface {
	UnderlyingRenderer() *scene.Renderer
}

// removeConstantTolerance bounds how far apart two plane constants may
// be and still be treated as the same cut on removal. Removal matches
// tighter than application so co-planar cuts at other offsets survive.
const removeConstantTolerance = 0.1

// ClippingPlaneService owns which clipping planes are active on the
// renderer and on every mesh material in the scene. Planes are keyed by
// view id; the last-applied plane is tracked separately and is not an
// exclusivity constraint.
type ClippingPlaneService struct {
	scene    *scene.Scene
	models   ModelSource
	renderer RendererProvider

	planes map[string]*geometry.Plane
	active *geometry.Plane
}

// NewClippingPlaneService creates a service operating on the given
// scene, model source and renderer. Any of the three may be nil; calls
// then skip the corresponding side effects.
func NewClippingPlaneService(sc *scene.Scene, models ModelSource, renderer RendererProvider) *ClippingPlaneService {
	return &ClippingPlaneService{
		scene:    sc,
		models:   models,
		renderer: renderer,
		planes:   make(map[string]*geometry.Plane),
	}
}

// Apply constructs the cut plane through point with the given normal,
// registers it under viewID and pushes it onto every mesh material and
// the renderer. Re-applying the same view id replaces the previous
// material entries instead of stacking a duplicate cut. Returns false
// when the traversal fails; failures are logged, never propagated.
func (s *ClippingPlaneService) Apply(viewID string, normal, point geometry.Vector3) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("section: apply clipping plane for view %s: %v", viewID, r)
			ok = false
		}
	}()

	p := geometry.NewPlaneFromNormalAndPoint(normal, point)
	plane := &p
	s.planes[viewID] = plane
	s.active = plane

	for _, mesh := range s.collectMeshes() {
		for _, mat := range mesh.Materials {
			if mat == nil {
				continue
			}
			// Drop any existing entry with the same orientation so
			// re-applying never stacks cuts.
			kept := mat.ClippingPlanes[:0]
			for _, existing := range mat.ClippingPlanes {
				if existing == nil || existing.NearParallel(*plane, geometry.NearParallelTolerance) {
					continue
				}
				kept = append(kept, existing)
			}
			// Materials may outlive the registry entry, so they get
			// their own clone rather than the stored plane.
			mat.ClippingPlanes = append(kept, plane.Clone())
			mat.ClipIntersection = false
			mat.NeedsUpdate = true
		}
	}

	if r := s.underlying(); r != nil {
		// Overwrite, do not accumulate: the renderer holds at most the
		// one global plane.
		r.ClippingPlanes = []*geometry.Plane{plane.Clone()}
		// Some renderer configurations disable local clipping by
		// default, which would silently ignore the material planes.
		r.LocalClippingEnabled = true
	}

	return true
}

// Remove deletes the plane registered under viewID and strips every
// matching material entry. Materials hold cloned planes, so matching is
// by near-parallel normal and close constant rather than identity.
// Returns false when no plane is registered for the id.
func (s *ClippingPlaneService) Remove(viewID string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("section: remove clipping plane for view %s: %v", viewID, r)
			ok = false
		}
	}()

	plane, found := s.planes[viewID]
	if !found {
		log.Printf("section: no clipping plane registered for view %s", viewID)
		return false
	}
	delete(s.planes, viewID)
	if s.active == plane {
		s.active = nil
	}

	for _, mesh := range s.collectMeshes() {
		for _, mat := range mesh.Materials {
			if mat == nil {
				continue
			}
			kept := mat.ClippingPlanes[:0]
			removed := false
			for _, existing := range mat.ClippingPlanes {
				if existing != nil && existing.NearEqual(*plane, geometry.NearParallelTolerance, removeConstantTolerance) {
					removed = true
					continue
				}
				kept = append(kept, existing)
			}
			if removed {
				mat.ClippingPlanes = kept
				mat.NeedsUpdate = true
			}
		}
	}

	if r := s.underlying(); r != nil {
		r.ClippingPlanes = nil
	}

	return true
}

// ActivePlane returns the most recently applied plane, or nil when the
// last applied plane has been removed.
func (s *ClippingPlaneService) ActivePlane() *geometry.Plane {
	return s.active
}

// Plane returns the plane registered under viewID, or nil.
func (s *ClippingPlaneService) Plane(viewID string) *geometry.Plane {
	return s.planes[viewID]
}

// collectMeshes gathers every mesh reachable through the loaded model
// item lists and the scene graph. The scene walk catches meshes the
// model lists do not track; duplicates are skipped by identity.
func (s *ClippingPlaneService) collectMeshes() []*scene.Mesh {
	var meshes []*scene.Mesh
	seen := make(map[*scene.Mesh]bool)

	if s.models != nil {
		for _, model := range s.models.LoadedModels() {
			if model == nil {
				continue
			}
			for _, item := range model.Items {
				if item == nil || item.Mesh == nil || seen[item.Mesh] {
					continue
				}
				seen[item.Mesh] = true
				meshes = append(meshes, item.Mesh)
			}
		}
	}

	if s.scene != nil {
		s.scene.Traverse(func(n *scene.Node) {
			if n.Mesh == nil || seen[n.Mesh] {
				return
			}
			seen[n.Mesh] = true
			meshes = append(meshes, n.Mesh)
		})
	}

	return meshes
}

func (s *ClippingPlaneService) underlying() *scene.Renderer {
	if s.renderer == nil {
		return nil
	}
	return s.renderer.UnderlyingRenderer()
}
