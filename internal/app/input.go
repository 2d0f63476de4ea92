package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// moveStepFactor scales the per-keypress movement of the active cut
// along its normal, relative to the model size.
const moveStepFactor = 0.02

// handleInput processes user input
func (app *App) handleInput() {
	app.Interaction.lastMousePos = rl.GetMousePosition()
	app.updateHoveredViewRow()

	// Camera view preset shortcuts
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		app.setCameraTopView()
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		app.setCameraFrontView()
	}

	// Track mouse down for click vs drag detection
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = rl.GetMousePosition()
		app.Interaction.mouseMoved = false
		shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
		app.Interaction.isPanning = shiftPressed
	}

	// Camera panning with Shift + drag or middle mouse button drag
	if (rl.IsMouseButtonDown(rl.MouseLeftButton) && app.Interaction.isPanning) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.Interaction.mouseMoved = true
			app.doPan(delta)
		}
	} else if rl.IsMouseButtonDown(rl.MouseLeftButton) && !app.Interaction.isPanning {
		// Camera rotation with mouse drag
		delta := rl.GetMouseDelta()
		if math.Abs(float64(delta.X)) > 1.0 || math.Abs(float64(delta.Y)) > 1.0 {
			app.Interaction.mouseMoved = true
		}
		if delta.X != 0 || delta.Y != 0 {
			app.Camera.angleY += delta.X * 0.01
			app.Camera.angleX -= delta.Y * 0.01

			// Clamp vertical rotation
			if app.Camera.angleX > 1.5 {
				app.Camera.angleX = 1.5
			}
			if app.Camera.angleX < -1.5 {
				app.Camera.angleX = -1.5
			}
		}
	}

	// Click handling: view rows first, then section point picking
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && !app.Interaction.mouseMoved {
		if app.Interaction.hoveredViewRow >= 0 {
			app.toggleViewAt(app.Interaction.hoveredViewRow)
		} else if app.Section.picking {
			app.pickSectionPoint()
		}
		app.Interaction.isPanning = false
	}

	// Zoom with mouse wheel
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		app.Camera.distance *= (1.0 - wheel*0.03)
		minDist := app.Model.size * 0.1
		if minDist == 0 {
			minDist = 1.0
		}
		if app.Camera.distance < minDist {
			app.Camera.distance = minDist
		}
	}

	// Update hover highlight (only when not dragging)
	if !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		app.updateHoverVertex()
	}

	app.handleKeys()
}

// handleKeys processes the keyboard shortcuts
func (app *App) handleKeys() {
	if rl.IsKeyPressed(rl.KeyW) {
		app.View.showWireframe = !app.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyF) {
		app.View.showFilled = !app.View.showFilled
	}
	if rl.IsKeyPressed(rl.KeyV) {
		app.View.showPanel = !app.View.showPanel
	}

	// S starts (or cancels) section line picking
	if rl.IsKeyPressed(rl.KeyS) {
		if app.Section.picking {
			app.cancelPicking()
		} else {
			app.Section.picking = true
			app.Section.pickedPoints = nil
			fmt.Println("Section mode: pick two points to define the cut line")
		}
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		if app.Section.picking {
			app.cancelPicking()
		} else if id := app.Section.cutting.ActiveSectionViewID(); id != "" {
			// Remove the active cut but keep the view for re-applying
			app.Section.manager.RemoveView(id)
			fmt.Println("Removed active section cut")
		}
	}

	// H toggles the helper of the active view
	if rl.IsKeyPressed(rl.KeyH) {
		if id := app.Section.cutting.ActiveSectionViewID(); id != "" {
			visible := app.Section.helpers.ToggleVisibility(id)
			fmt.Printf("Section helper visible: %v\n", visible)
		}
	}

	// C clears all cuts and helpers
	if rl.IsKeyPressed(rl.KeyC) && !rl.IsKeyDown(rl.KeyLeftControl) && !rl.IsKeyDown(rl.KeyRightControl) {
		app.Section.manager.ClearAll()
		fmt.Println("Cleared all section cuts")
	}

	// Backspace deletes the active view entirely
	if rl.IsKeyPressed(rl.KeyBackspace) {
		if id := app.Section.cutting.ActiveSectionViewID(); id != "" {
			app.Section.manager.DeleteView(id)
			app.saveViews()
			fmt.Println("Deleted active section view")
		}
	}

	// Up/Down move the active cut along its normal
	if rl.IsKeyPressed(rl.KeyUp) {
		app.moveActiveCut(1)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		app.moveActiveCut(-1)
	}
}

// cancelPicking leaves section picking mode
func (app *App) cancelPicking() {
	app.Section.picking = false
	app.Section.pickedPoints = nil
	fmt.Println("Section mode cancelled")
}

// toggleViewAt applies or removes the view behind a panel row
func (app *App) toggleViewAt(row int) {
	views := app.Section.manager.Views()
	if row < 0 || row >= len(views) {
		return
	}
	v := views[row]
	if v.Active {
		app.Section.manager.RemoveView(v.ID)
		fmt.Printf("Removed view %q\n", v.Name)
	} else {
		if app.Section.manager.ApplyView(v.ID) {
			fmt.Printf("Applied view %q\n", v.Name)
		}
	}
}

// moveActiveCut shifts the active view's cut plane along its normal by
// a step scaled to the model size.
func (app *App) moveActiveCut(direction float64) {
	id := app.Section.cutting.ActiveSectionViewID()
	if id == "" {
		return
	}
	v := app.Section.manager.View(id)
	if v == nil || v.Normal == nil || v.Point == nil {
		return
	}

	step := float64(app.Model.size) * moveStepFactor
	if step == 0 {
		step = 0.1
	}
	newPoint := v.Point.Add(v.Normal.Mul(direction * step))
	if app.Section.manager.MoveView(id, newPoint) {
		app.saveViews()
	}
}

// updateHoveredViewRow hit-tests the mouse against the views panel rows
func (app *App) updateHoveredViewRow() {
	app.Interaction.hoveredViewRow = -1
	if !app.View.showPanel {
		return
	}
	for i, bounds := range app.UI.viewRowBound {
		if rl.CheckCollisionPointRec(app.Interaction.lastMousePos, bounds) {
			app.Interaction.hoveredViewRow = i
			return
		}
	}
}
