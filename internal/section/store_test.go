package section

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gobim/pkg/geometry"
)

func TestSaveAndLoadViews(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "building.stl")

	f := newFixture()
	visible := false
	sv := f.manager.CreateSectionViewFromPoints(
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(10, 0, 0),
		geometry.NewVector3(0, 0, 1),
		SectionViewOptions{Name: "entrance cut", Range: 25, HelpersVisible: &visible},
	)
	sv.Camera = &CameraPose{
		Position: geometry.NewVector3(0, 5, 20),
		Target:   geometry.NewVector3(5, 0, 0),
	}
	f.manager.CreateStoreyView("Level 1", 3)

	if err := SaveViews(modelPath, f.manager.Views()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(ViewsFilePath(modelPath)); err != nil {
		t.Fatalf("views file not written: %v", err)
	}

	loaded, err := LoadViews(modelPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d views, want 2", len(loaded))
	}

	got := loaded[0]
	if got.ID != sv.ID || got.Name != "entrance cut" || got.Type != ViewTypeSection {
		t.Errorf("identity not preserved: %+v", got)
	}
	if got.Range != 25 {
		t.Errorf("range = %v, want 25", got.Range)
	}
	if got.HelpersVisible == nil || *got.HelpersVisible {
		t.Error("helper visibility not preserved")
	}
	if got.Normal == nil || got.Normal.Distance(*sv.Normal) > 1e-10 {
		t.Error("normal not preserved")
	}
	if got.Point == nil || got.Point.Distance(*sv.Point) > 1e-10 {
		t.Error("point not preserved")
	}
	if got.Scissors == nil || got.Scissors.P2.Distance(geometry.NewVector3(10, 0, 0)) > 1e-10 {
		t.Error("scissors line not preserved")
	}
	if got.Camera == nil || got.Camera.Position.Distance(sv.Camera.Position) > 1e-10 {
		t.Error("camera pose not preserved")
	}
	if got.Active {
		t.Error("loaded view must not start active")
	}

	if loaded[1].Type != ViewTypeStorey {
		t.Errorf("second view type = %v, want storey", loaded[1].Type)
	}
}

func TestSaveEmptyViewsRemovesFile(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "building.stl")

	f := newFixture()
	f.manager.CreateStoreyView("Level 1", 3)
	if err := SaveViews(modelPath, f.manager.Views()); err != nil {
		t.Fatal(err)
	}

	if err := SaveViews(modelPath, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(ViewsFilePath(modelPath)); !os.IsNotExist(err) {
		t.Error("views file still present after saving an empty list")
	}
}

func TestLoadViewsMissingFile(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "building.stl")

	views, err := LoadViews(modelPath)
	if err != nil {
		t.Fatal(err)
	}
	if views != nil {
		t.Errorf("loaded %d views from nothing", len(views))
	}
}
