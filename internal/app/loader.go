package app

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/gobim/internal/section"
	"github.com/philipparndt/gobim/pkg/stl"
	"github.com/philipparndt/gobim/pkg/watcher"
)

// loadModel loads and parses a model file
func loadModel(filePath string) (*stl.Model, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext != ".stl" {
		return nil, fmt.Errorf("unsupported file type: %s (expected .stl)", ext)
	}

	model, err := stl.Parse(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse STL file: %w", err)
	}
	return model, nil
}

// setupFileWatcher watches the model file and its views sidecar
func (app *App) setupFileWatcher() error {
	mw, err := watcher.NewModelWatcher(500 * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	sidecar := section.ViewsFilePath(app.FileWatch.modelPath)
	fmt.Printf("Watching file for changes: %s\n", app.FileWatch.modelPath)

	callback := func(kind watcher.Kind, changedFile string) {
		fmt.Printf("\nFile changed: %s\n", changedFile)
		switch kind {
		case watcher.ModelChanged:
			app.FileWatch.needsReload = true
		case watcher.ViewsChanged:
			app.FileWatch.needsViewsReload = true
		}
	}

	if err := mw.WatchModel(app.FileWatch.modelPath, sidecar, callback); err != nil {
		mw.Close()
		return fmt.Errorf("failed to watch files: %w", err)
	}

	mw.Start()
	app.FileWatch.modelWatcher = mw
	return nil
}

// reloadModel reloads the model from the source file in the background
func (app *App) reloadModel() {
	if app.FileWatch.isLoading {
		return
	}

	app.FileWatch.isLoading = true
	app.FileWatch.loadingStartTime = time.Now()
	fmt.Println("Reloading model...")

	go func() {
		source, err := loadModel(app.FileWatch.modelPath)
		if err != nil {
			fmt.Printf("Error reloading model: %v\n", err)
			app.FileWatch.isLoading = false
			return
		}
		app.FileWatch.loadedSource = source
	}()
}

// applyLoadedModel installs a reloaded model and re-applies the active
// views, so section cuts survive a geometry reload. Must run on the
// main thread.
func (app *App) applyLoadedModel() {
	if app.FileWatch.loadedSource == nil {
		return
	}

	// Preserve current camera state
	savedDistance := app.Camera.distance
	savedAngleX := app.Camera.angleX
	savedAngleY := app.Camera.angleY
	savedTarget := app.Camera.target

	oldCenter := app.Model.center
	app.setModel(app.FileWatch.loadedSource)

	// Adjust camera target based on model center change
	app.Camera.distance = savedDistance
	app.Camera.angleX = savedAngleX
	app.Camera.angleY = savedAngleY
	app.Camera.target.X = savedTarget.X + app.Model.center.X - oldCenter.X
	app.Camera.target.Y = savedTarget.Y + app.Model.center.Y - oldCenter.Y
	app.Camera.target.Z = savedTarget.Z + app.Model.center.Z - oldCenter.Z

	// The new meshes have no clipping planes yet, re-apply active views
	for _, v := range app.Section.manager.Views() {
		if v.Active {
			app.Section.manager.ApplyView(v.ID)
		}
	}

	elapsed := time.Since(app.FileWatch.loadingStartTime)
	fmt.Printf("Model reloaded successfully in %.2fs!\n", elapsed.Seconds())

	app.FileWatch.loadedSource = nil
	app.FileWatch.isLoading = false
}

// reloadViews re-reads the views sidecar, for example after an edit in
// another tool. Applied cuts are cleared first.
func (app *App) reloadViews() {
	views, err := section.LoadViews(app.FileWatch.modelPath)
	if err != nil {
		log.Printf("failed to reload views: %v", err)
		return
	}

	app.Section.manager.ClearAll()
	app.Section.manager.SetViews(views)
	fmt.Printf("Reloaded %d saved view(s)\n", len(views))
}
