package app

import (
	"fmt"
	"log"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gobim/internal/section"
	"github.com/philipparndt/gobim/pkg/scene"
	"github.com/philipparndt/gobim/pkg/stl"
)

type App struct {
	Camera      CameraState
	Model       ModelData
	View        ViewSettings
	Section     SectionState
	Interaction InteractionState
	FileWatch   FileWatchState
	UI          UIState
}

// modelSource exposes the currently loaded model to the clipping
// service.
type modelSource struct {
	app *App
}

func (s *modelSource) LoadedModels() []*scene.Model {
	if s.app.Model.model == nil {
		return nil
	}
	return []*scene.Model{s.app.Model.model}
}

// rendererSource exposes the renderer state to the clipping service.
type rendererSource struct {
	renderer *scene.Renderer
}

func (s *rendererSource) UnderlyingRenderer() *scene.Renderer {
	return s.renderer
}

// Run starts the application
func Run(modelPath string) {
	source, err := loadModel(modelPath)
	if err != nil {
		fmt.Printf("Error loading file: %v\n", err)
		os.Exit(1)
	}

	// Initialize window
	screenWidth := int32(1400)
	screenHeight := int32(900)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(screenWidth, screenHeight, "GoBIM")
	rl.SetTargetFPS(60)

	app := &App{
		View: ViewSettings{
			showWireframe: true,
			showFilled:    true,
			showPanel:     true,
		},
		FileWatch: FileWatchState{
			modelPath: modelPath,
		},
		Interaction: InteractionState{hoveredViewRow: -1},
	}
	app.setModel(source)

	// Wire the section services over the scene graph and renderer
	sceneGraph := scene.NewScene()
	renderer := scene.NewRenderer()
	app.Section.scene = sceneGraph
	app.Section.renderer = renderer
	app.Section.clipping = section.NewClippingPlaneService(sceneGraph, &modelSource{app: app}, &rendererSource{renderer: renderer})
	app.Section.helpers = section.NewSectionHelperService(sceneGraph)
	app.Section.cutting = section.NewSectionCuttingService(app.Section.clipping)
	app.Section.manager = section.NewViewsManager(app.Section.cutting, app.Section.helpers)

	// Restore saved views from the sidecar file
	if views, err := section.LoadViews(modelPath); err != nil {
		log.Printf("failed to load views: %v", err)
	} else if len(views) > 0 {
		app.Section.manager.SetViews(views)
		fmt.Printf("Loaded %d saved view(s)\n", len(views))
	}

	// Set up file watching
	if err := app.setupFileWatcher(); err != nil {
		fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
		fmt.Println("Auto-reload will not be available")
	} else {
		defer app.FileWatch.modelWatcher.Close()
	}

	app.UI.font = rl.GetFontDefault()
	app.setupCamera()

	// Main loop
	for {
		// Check for window close (but ESC is handled separately for cancelling picking)
		if rl.WindowShouldClose() && !rl.IsKeyPressed(rl.KeyEscape) {
			break
		}

		// Check for Ctrl+C to exit
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyC) {
			break
		}

		if app.FileWatch.needsReload && !app.FileWatch.isLoading {
			app.FileWatch.needsReload = false
			app.reloadModel()
		}
		if app.FileWatch.needsViewsReload {
			app.FileWatch.needsViewsReload = false
			app.reloadViews()
		}

		// Apply loaded model if ready (must be on main thread)
		app.applyLoadedModel()

		app.handleInput()
		app.updateCamera()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.camera)
		app.drawModel()
		app.drawHelpers()
		app.drawPickedLine()
		rl.EndMode3D()

		app.drawViewLabels()
		app.drawUI()

		rl.EndDrawing()
	}

	rl.CloseWindow()
}

// setModel installs a parsed model and derives the display parameters.
func (app *App) setModel(source *stl.Model) {
	app.Model.source = source
	app.Model.model = source.SceneModel()

	bbox := source.BoundingBox()
	center := bbox.Center()
	size := bbox.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))

	app.Model.center = rl.Vector3{X: float32(center.X), Y: float32(center.Y), Z: float32(center.Z)}
	app.Model.size = float32(maxDim)
	app.Model.avgVertexSpacing = calculateAvgVertexSpacing(source)
	fmt.Printf("Model size: %.2f, Avg vertex spacing: %.2f\n", app.Model.size, app.Model.avgVertexSpacing)
}

// setupCamera positions the camera to frame the model.
func (app *App) setupCamera() {
	distance := app.Model.size * 2.0
	if distance == 0 {
		distance = 10
	}

	app.Camera.target = app.Model.center
	app.Camera.distance = distance
	app.Camera.angleX = 0.3
	app.Camera.angleY = 0.3

	app.Camera.defaultDist = distance
	app.Camera.defaultAngleX = 0.3
	app.Camera.defaultAngleY = 0.3

	app.Camera.camera = rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 0, Z: distance},
		Target:     app.Camera.target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
}

// saveViews writes the current views to the sidecar file.
func (app *App) saveViews() {
	if err := section.SaveViews(app.FileWatch.modelPath, app.Section.manager.Views()); err != nil {
		log.Printf("failed to save views: %v", err)
	}
}
