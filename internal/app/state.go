package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gobim/internal/section"
	"github.com/philipparndt/gobim/pkg/geometry"
	"github.com/philipparndt/gobim/pkg/scene"
	"github.com/philipparndt/gobim/pkg/stl"
	"github.com/philipparndt/gobim/pkg/watcher"
)

// CameraState holds all camera-related state
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3 // Current camera target (can be panned)
	defaultDist   float32    // Default camera distance (for reset)
	defaultAngleX float32    // Default camera angle X (for reset)
	defaultAngleY float32    // Default camera angle Y (for reset)
}

// ModelData holds the loaded building model
type ModelData struct {
	source           *stl.Model   // Parsed STL file
	model            *scene.Model // Scene model with per-item materials
	center           rl.Vector3   // Model center
	size             float32      // Model size (max dimension)
	avgVertexSpacing float32      // Average distance between vertices
}

// ViewSettings holds display settings
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
	showPanel     bool // Views panel visibility
}

// SectionState holds the section services and the picking workflow
type SectionState struct {
	scene    *scene.Scene
	renderer *scene.Renderer
	clipping *section.ClippingPlaneService
	helpers  *section.SectionHelperService
	cutting  *section.SectionCuttingService
	manager  *section.ViewsManager

	picking      bool               // Whether section line picking is active
	pickedPoints []geometry.Vector3 // Up to two picked points
}

// InteractionState holds mouse and interaction state
type InteractionState struct {
	hoveredVertex    geometry.Vector3
	hasHoveredVertex bool
	mouseDownPos     rl.Vector2
	mouseMoved       bool
	isPanning        bool
	lastMousePos     rl.Vector2
	hoveredViewRow   int // -1=none, index into views list
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	modelPath        string                // Model file path (.stl)
	modelWatcher     *watcher.ModelWatcher // Watcher for model and views sidecar
	needsReload      bool                  // Geometry file changed
	needsViewsReload bool                  // Views sidecar changed
	isLoading        bool                  // Reload in progress
	loadingStartTime time.Time             // When loading started
	loadedSource     *stl.Model            // Model loaded in background
}

// UIState holds UI-related state
type UIState struct {
	font         rl.Font
	panelBounds  rl.Rectangle
	viewRowBound []rl.Rectangle // Per-row bounds for the views panel
}
