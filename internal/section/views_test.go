package section

import (
	"math"
	"testing"

	"github.com/philipparndt/gobim/pkg/geometry"
)

func TestCreateSectionViewScissorsConvention(t *testing.T) {
	f := newFixture()
	normal := geometry.NewVector3(1, 0, 0)
	point := geometry.NewVector3(10, 20, 30)

	v := f.manager.CreateSectionView(normal, point, SectionViewOptions{FromScissors: true})

	if v.Normal.Distance(normal) > 1e-10 {
		t.Errorf("scissors view stored normal %v, want %v", *v.Normal, normal)
	}
	if v.Point.Distance(point) > 1e-10 {
		t.Errorf("scissors view stored point %v, want %v", *v.Point, point)
	}
}

func TestCreateSectionViewStoredConvention(t *testing.T) {
	f := newFixture()
	normal := geometry.NewVector3(1, 0, 0)
	point := geometry.NewVector3(10, 20, 30)

	v := f.manager.CreateSectionView(normal, point, SectionViewOptions{})

	wantNormal := geometry.NewVector3(-1, 0, 0)
	wantPoint := geometry.NewVector3(11, 20, 30)
	if v.Normal.Distance(wantNormal) > 1e-10 {
		t.Errorf("stored normal %v, want %v", *v.Normal, wantNormal)
	}
	if v.Point.Distance(wantPoint) > 1e-10 {
		t.Errorf("stored point %v, want %v (offset by the raw normal)", *v.Point, wantPoint)
	}
}

func TestCreateSectionViewFromPoints(t *testing.T) {
	f := newFixture()
	p1 := geometry.NewVector3(0, 0, 0)
	p2 := geometry.NewVector3(10, 0, 0)
	cameraDir := geometry.NewVector3(0, 0, 1)

	v := f.manager.CreateSectionViewFromPoints(p1, p2, cameraDir, SectionViewOptions{})
	if v == nil {
		t.Fatal("no view created")
	}

	wantPoint := geometry.NewVector3(5, 0, 0)
	if v.Point.Distance(wantPoint) > 1e-10 {
		t.Errorf("stored point %v, want midpoint %v", *v.Point, wantPoint)
	}

	wantNormal := geometry.NewVector3(0, -1, 0)
	if d := math.Abs(v.Normal.Dot(wantNormal)); math.Abs(d-1) > 1e-10 {
		t.Errorf("stored normal %v not parallel to %v", *v.Normal, wantNormal)
	}
	if math.Abs(v.Normal.Length()-1) > 1e-10 {
		t.Error("stored normal not unit length")
	}

	if v.Scissors == nil {
		t.Fatal("scissors line not recorded")
	}
	if v.Scissors.P1 != p1 || v.Scissors.P2 != p2 {
		t.Errorf("scissors line %+v, want %v..%v", v.Scissors, p1, p2)
	}
}

func TestCreateSectionViewFromCollinearPoints(t *testing.T) {
	f := newFixture()
	p1 := geometry.NewVector3(0, 0, 0)
	p2 := geometry.NewVector3(0, 0, 5)

	// Line parallel to the camera direction spans no plane
	if v := f.manager.CreateSectionViewFromPoints(p1, p2, geometry.NewVector3(0, 0, 1), SectionViewOptions{}); v != nil {
		t.Error("collinear construction must fail")
	}
}

func TestViewDefaults(t *testing.T) {
	f := newFixture()
	v := f.manager.CreateSectionView(geometry.NewVector3(1, 0, 0), geometry.Vector3{}, SectionViewOptions{})

	if v.ID == "" {
		t.Error("view has no id")
	}
	if v.Name == "" {
		t.Error("view has no generated name")
	}
	if v.Range != DefaultViewRange {
		t.Errorf("range = %v, want default %v", v.Range, DefaultViewRange)
	}
	if v.Type != ViewTypeSection {
		t.Errorf("type = %v, want section", v.Type)
	}
}

func TestCreateStoreyView(t *testing.T) {
	f := newFixture()
	v := f.manager.CreateStoreyView("Level 2", 6)

	if v.Type != ViewTypeStorey {
		t.Errorf("type = %v, want storey", v.Type)
	}
	// Non-scissors convention: negated normal, point offset by the raw normal
	if v.Normal.Distance(geometry.NewVector3(0, -1, 0)) > 1e-10 {
		t.Errorf("storey normal %v", *v.Normal)
	}
	if v.Point.Distance(geometry.NewVector3(0, 7, 0)) > 1e-10 {
		t.Errorf("storey point %v", *v.Point)
	}
}

func TestApplyViewLifecycle(t *testing.T) {
	f := newFixture()
	v := f.manager.CreateSectionViewFromPoints(
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(10, 0, 0),
		geometry.NewVector3(0, 0, 1),
		SectionViewOptions{Name: "cut A"},
	)

	if !f.manager.ApplyView(v.ID) {
		t.Fatal("apply failed")
	}
	if !v.Active {
		t.Error("view not marked active")
	}
	if f.cutting.ActiveSectionViewID() != v.ID {
		t.Error("cutting service does not track the view")
	}
	if f.helpers.Helper(v.ID) == nil {
		t.Error("no helper created")
	}

	// Re-applying replaces the helper without leaking the old one
	old := f.helpers.Helper(v.ID)
	if !f.manager.ApplyView(v.ID) {
		t.Fatal("re-apply failed")
	}
	if !old.Mesh.Geometry.Disposed() {
		t.Error("previous helper not disposed on re-apply")
	}

	if !f.manager.RemoveView(v.ID) {
		t.Fatal("remove failed")
	}
	if v.Active {
		t.Error("view still marked active")
	}
	if f.helpers.Helper(v.ID) != nil {
		t.Error("helper survived removal")
	}
	if f.manager.View(v.ID) == nil {
		t.Error("RemoveView must keep the view registered")
	}

	if !f.manager.DeleteView(v.ID) {
		t.Fatal("delete failed")
	}
	if f.manager.View(v.ID) != nil {
		t.Error("view still registered after delete")
	}
}

func TestApplyUnknownView(t *testing.T) {
	f := newFixture()
	if f.manager.ApplyView("ghost") {
		t.Error("applying an unknown view must fail")
	}
}

func TestMoveView(t *testing.T) {
	f := newFixture()
	v := f.manager.CreateSectionViewFromPoints(
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(10, 0, 0),
		geometry.NewVector3(0, 0, 1),
		SectionViewOptions{},
	)
	f.manager.ApplyView(v.ID)

	newPoint := geometry.NewVector3(5, 3, 0)
	if !f.manager.MoveView(v.ID, newPoint) {
		t.Fatal("move failed")
	}

	if v.Point.Distance(newPoint) > 1e-10 {
		t.Errorf("view point %v, want %v", *v.Point, newPoint)
	}
	if v.Scissors != nil {
		t.Error("moved view kept a stale scissors line")
	}

	helper := f.helpers.Helper(v.ID)
	if helper == nil {
		t.Fatal("helper gone after move")
	}
	if helper.Position.Distance(newPoint) > 1e-10 {
		t.Errorf("helper at %v, want %v", helper.Position, newPoint)
	}
}

func TestClearAllViews(t *testing.T) {
	f := newFixture()
	a := f.manager.CreateSectionView(geometry.NewVector3(1, 0, 0), geometry.Vector3{}, SectionViewOptions{FromScissors: true})
	b := f.manager.CreateSectionView(geometry.NewVector3(0, 1, 0), geometry.Vector3{}, SectionViewOptions{FromScissors: true})
	f.manager.ApplyView(a.ID)
	f.manager.ApplyView(b.ID)

	f.manager.ClearAll()

	if f.cutting.IsSectionCutActive() {
		t.Error("a cut is still active")
	}
	for _, v := range []*View{a, b} {
		if v.Active {
			t.Errorf("view %s still active", v.Name)
		}
		if f.helpers.Helper(v.ID) != nil {
			t.Errorf("helper for %s survived", v.Name)
		}
	}
	if len(f.manager.Views()) != 2 {
		t.Error("ClearAll must keep views registered")
	}
}
