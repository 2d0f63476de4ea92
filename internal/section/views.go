package section

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/philipparndt/gobim/pkg/geometry"
)

// ViewType classifies how a view was created.
type ViewType string

const (
	ViewTypeStorey    ViewType = "storey"
	ViewTypeElevation ViewType = "elevation"
	ViewTypeSection   ViewType = "section"
)

// DefaultViewRange is the helper sizing range used when a view is
// created without one.
const DefaultViewRange = 10.0

// ScissorsLine is the pair of picked points a scissors-sourced view was
// drawn from. It is kept on the view so the helper quad can be sized
// and oriented to the original line after a reload.
type ScissorsLine struct {
	P1, P2 geometry.Vector3
}

// CameraPose is an optional saved orbit pose for a view.
type CameraPose struct {
	Position geometry.Vector3
	Target   geometry.Vector3
}

// View is a stored viewing configuration. For section views, Normal and
// Point define the half-space the cut removes; Range bounds the helper
// quad size. HelpersVisible nil means visible.
type View struct {
	ID             string
	Name           string
	Type           ViewType
	Normal         *geometry.Vector3
	Point          *geometry.Vector3
	Range          float64
	HelpersVisible *bool
	Scissors       *ScissorsLine
	Camera         *CameraPose
	Active         bool
}

// SectionViewOptions are the transient construction parameters for a
// section view. FromScissors switches both the polarity of the stored
// normal and the helper positioning policy.
type SectionViewOptions struct {
	Name           string
	Range          float64
	HelpersVisible *bool
	FromScissors   bool
	ScissorsPoint1 *geometry.Vector3
	ScissorsPoint2 *geometry.Vector3
}

// ViewsManager owns the view registry and drives the cutting and helper
// services when views are applied, moved and removed.
type ViewsManager struct {
	cutting *SectionCuttingService
	helpers *SectionHelperService

	views []*View
	byID  map[string]*View
}

// NewViewsManager creates a manager over the given services.
func NewViewsManager(cutting *SectionCuttingService, helpers *SectionHelperService) *ViewsManager {
	return &ViewsManager{
		cutting: cutting,
		helpers: helpers,
		byID:    make(map[string]*View),
	}
}

// CreateSectionView creates a section view from an explicit normal and
// point.
//
// Scissors-sourced views store the normal and point as given. All other
// views store the negated normal and the point offset by the raw,
// unnormalized normal. The asymmetry carries no obvious geometric
// meaning but existing stored views depend on it, so it is preserved
// bit for bit (see DESIGN.md).
func (m *ViewsManager) CreateSectionView(normal, point geometry.Vector3, opts SectionViewOptions) *View {
	v := &View{
		ID:             uuid.NewString(),
		Name:           opts.Name,
		Type:           ViewTypeSection,
		Range:          opts.Range,
		HelpersVisible: opts.HelpersVisible,
	}
	if v.Name == "" {
		v.Name = fmt.Sprintf("Section %d", len(m.views)+1)
	}
	if v.Range <= 0 {
		v.Range = DefaultViewRange
	}

	if opts.FromScissors {
		n, p := normal, point
		v.Normal = &n
		v.Point = &p
		if opts.ScissorsPoint1 != nil && opts.ScissorsPoint2 != nil {
			v.Scissors = &ScissorsLine{P1: *opts.ScissorsPoint1, P2: *opts.ScissorsPoint2}
		}
	} else {
		n := normal.Negate()
		p := point.Add(normal)
		v.Normal = &n
		v.Point = &p
	}

	m.addView(v)
	return v
}

// CreateSectionViewFromPoints creates a section view from two picked
// points and the camera's forward direction. The cut plane contains the
// drawn line and faces consistently with the current look direction, so
// the exposed face matches what the user aimed at. Returns nil for a
// degenerate line.
func (m *ViewsManager) CreateSectionViewFromPoints(p1, p2, cameraDir geometry.Vector3, opts SectionViewOptions) *View {
	normal := p2.Sub(p1).Cross(cameraDir).Normalize()
	if normal.Length() == 0 {
		log.Printf("section: picked points and camera direction are collinear")
		return nil
	}

	point := p1.MidPoint(p2)
	opts.FromScissors = true
	opts.ScissorsPoint1 = &p1
	opts.ScissorsPoint2 = &p2
	return m.CreateSectionView(normal, point, opts)
}

// CreateStoreyView creates a horizontal cut at the given elevation,
// exposing everything below it.
func (m *ViewsManager) CreateStoreyView(name string, elevation float64) *View {
	v := m.CreateSectionView(
		geometry.NewVector3(0, 1, 0),
		geometry.NewVector3(0, elevation, 0),
		SectionViewOptions{Name: name},
	)
	v.Type = ViewTypeStorey
	return v
}

// CreateElevationView creates a vertical cut through point facing the
// given direction.
func (m *ViewsManager) CreateElevationView(name string, direction, point geometry.Vector3) *View {
	v := m.CreateSectionView(direction, point, SectionViewOptions{Name: name})
	v.Type = ViewTypeElevation
	return v
}

// ApplyView applies the view's cut and rebuilds its helper. Any
// previous helper for the id is removed first, since the helper service
// replaces registry entries without disposing them.
func (m *ViewsManager) ApplyView(id string) bool {
	v := m.byID[id]
	if v == nil {
		log.Printf("section: unknown view %s", id)
		return false
	}
	if v.Normal == nil || v.Point == nil {
		log.Printf("section: view %s (%s) has no cut plane", id, v.Name)
		return false
	}

	if m.helpers != nil {
		m.helpers.RemoveHelper(id)
	}
	if m.cutting == nil || !m.cutting.ApplySectionCut(id, v) {
		return false
	}
	if m.helpers != nil {
		m.helpers.CreateHelper(id, v, *v.Normal, *v.Point, v.Range)
	}
	v.Active = true
	return true
}

// RemoveView removes the view's cut and helper but keeps the view
// registered.
func (m *ViewsManager) RemoveView(id string) bool {
	v := m.byID[id]
	if v == nil {
		return false
	}
	ok := m.cutting != nil && m.cutting.RemoveSectionCut(id)
	if m.helpers != nil {
		m.helpers.RemoveHelper(id)
	}
	v.Active = false
	return ok
}

// DeleteView removes the view's cut and helper and forgets the view.
func (m *ViewsManager) DeleteView(id string) bool {
	v := m.byID[id]
	if v == nil {
		return false
	}
	m.RemoveView(id)
	delete(m.byID, id)
	for i, existing := range m.views {
		if existing == v {
			m.views = append(m.views[:i], m.views[i+1:]...)
			break
		}
	}
	return true
}

// MoveView repositions an applied view's cut to a new point with the
// same normal and rebuilds the helper there. A scissors-sourced view
// loses its drawn line: the line no longer matches the moved plane.
func (m *ViewsManager) MoveView(id string, newPoint geometry.Vector3) bool {
	v := m.byID[id]
	if v == nil {
		return false
	}
	if m.cutting == nil || !m.cutting.UpdateSectionCut(id, v, newPoint) {
		return false
	}
	v.Scissors = nil
	if m.helpers != nil {
		m.helpers.RemoveHelper(id)
		m.helpers.CreateHelper(id, v, *v.Normal, *v.Point, v.Range)
	}
	return true
}

// ClearAll removes every applied cut and helper and marks all views
// inactive. The views stay registered.
func (m *ViewsManager) ClearAll() {
	for _, v := range m.views {
		if v.Active {
			m.RemoveView(v.ID)
		}
	}
	if m.cutting != nil {
		m.cutting.ClearAllSectionCuts()
	}
}

// View returns the view registered under id, or nil.
func (m *ViewsManager) View(id string) *View {
	return m.byID[id]
}

// Views returns the registered views in creation order.
func (m *ViewsManager) Views() []*View {
	return m.views
}

// SetViews replaces the registry with loaded views, for example from a
// sidecar file. Applied state is not restored; callers re-apply views
// explicitly.
func (m *ViewsManager) SetViews(views []*View) {
	m.views = nil
	m.byID = make(map[string]*View)
	for _, v := range views {
		if v == nil || v.ID == "" {
			continue
		}
		v.Active = false
		m.addView(v)
	}
}

func (m *ViewsManager) addView(v *View) {
	m.views = append(m.views, v)
	m.byID[v.ID] = v
}
