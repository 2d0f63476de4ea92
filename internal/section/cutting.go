package section

import (
	"log"

	"github.com/philipparndt/gobim/pkg/geometry"
)

// SectionCuttingService orchestrates clipping per view id and tracks
// which view was cut last. The active id is a query convenience, not an
// exclusivity constraint: other cuts stay registered and applied when
// callers drive the clipping service directly.
type SectionCuttingService struct {
	clipping     *ClippingPlaneService
	activeViewID string
}

// NewSectionCuttingService creates a cutting service over the given
// clipping service.
func NewSectionCuttingService(clipping *ClippingPlaneService) *SectionCuttingService {
	return &SectionCuttingService{clipping: clipping}
}

// ApplySectionCut applies the view's cut plane and records the view as
// the active cut. It returns false without applying anything when the
// view has no normal or point, or when the clipping service fails.
func (s *SectionCuttingService) ApplySectionCut(viewID string, view *View) bool {
	if view == nil || view.Normal == nil || view.Point == nil {
		log.Printf("section: view %s has no cut plane to apply", viewID)
		return false
	}
	if s.clipping == nil || !s.clipping.Apply(viewID, *view.Normal, *view.Point) {
		return false
	}
	s.activeViewID = viewID
	return true
}

// RemoveSectionCut removes the view's cut plane. The active id is
// cleared only when it names this view.
func (s *SectionCuttingService) RemoveSectionCut(viewID string) bool {
	ok := s.clipping != nil && s.clipping.Remove(viewID)
	if s.activeViewID == viewID {
		s.activeViewID = ""
	}
	return ok
}

// UpdateSectionCut moves the view's cut to a new point with the same
// normal. Removal completes before the re-application starts, so no
// frame sees both planes.
func (s *SectionCuttingService) UpdateSectionCut(viewID string, view *View, newPoint geometry.Vector3) bool {
	if view == nil || view.Normal == nil {
		log.Printf("section: view %s has no normal to update", viewID)
		return false
	}
	s.RemoveSectionCut(viewID)
	p := newPoint
	view.Point = &p
	return s.ApplySectionCut(viewID, view)
}

// ClearAllSectionCuts removes the currently active cut, if any.
func (s *SectionCuttingService) ClearAllSectionCuts() {
	if s.activeViewID != "" {
		s.RemoveSectionCut(s.activeViewID)
	}
}

// IsSectionCutActive reports whether a cut is currently recorded as
// active.
func (s *SectionCuttingService) IsSectionCutActive() bool {
	return s.activeViewID != ""
}

// ActiveSectionViewID returns the id of the most recently applied cut,
// or the empty string.
func (s *SectionCuttingService) ActiveSectionViewID() string {
	return s.activeViewID
}
