package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gobim/internal/overlay"
	"github.com/philipparndt/gobim/version"
)

// drawUI draws the user interface
func (app *App) drawUI() {
	y := float32(10)
	lineHeight := float32(20)
	fontSize16 := float32(16)
	fontSize14 := float32(14)
	fontSize12 := float32(12)

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	// Loading indicator
	if app.FileWatch.isLoading {
		elapsed := time.Since(app.FileWatch.loadingStartTime).Seconds()
		loadingText := fmt.Sprintf("Loading... (%.1fs)", elapsed)

		boxWidth := float32(250)
		boxHeight := float32(40)
		boxX := screenWidth - boxWidth - 20
		boxY := float32(20)

		rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 180))
		rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.Yellow)

		textSize := rl.MeasureTextEx(app.UI.font, loadingText, fontSize16, 1)
		textX := boxX + (boxWidth-textSize.X)/2
		textY := boxY + (boxHeight-textSize.Y)/2
		rl.DrawTextEx(app.UI.font, loadingText, rl.Vector2{X: textX, Y: textY}, fontSize16, 1, rl.Yellow)
	}

	// === MODEL ===
	bbox := app.Model.source.BoundingBox()
	size := bbox.Size()
	rl.DrawTextEx(app.UI.font, "Model:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("  %s", app.Model.source.Name), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Elements: %d", len(app.Model.model.Items)), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Triangles: %d", app.Model.source.TriangleCount()), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Size: %.2f x %.2f x %.2f m", size.X, size.Y, size.Z), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
	y += lineHeight * 2

	// === SECTION ===
	if app.Section.picking {
		rl.DrawTextEx(app.UI.font, "Section:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
		y += lineHeight
		switch len(app.Section.pickedPoints) {
		case 0:
			rl.DrawTextEx(app.UI.font, "  Pick the first point of the cut line", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.Green)
		case 1:
			p := app.Section.pickedPoints[0]
			rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Point 1: (%.2f, %.2f, %.2f)", p.X, p.Y, p.Z), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.Green)
			y += lineHeight
			rl.DrawTextEx(app.UI.font, "  Pick the second point", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.Green)
		}
		y += lineHeight * 2
	} else if id := app.Section.cutting.ActiveSectionViewID(); id != "" {
		if v := app.Section.manager.View(id); v != nil {
			rl.DrawTextEx(app.UI.font, "Active cut:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
			y += lineHeight
			rl.DrawTextEx(app.UI.font, fmt.Sprintf("  %s", v.Name), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
			y += lineHeight * 2
		}
	}

	app.drawViewsPanel()

	// Help text along the bottom
	helpText := "S: section line | Up/Down: move cut | H: helper | Esc: remove cut | C: clear | Backspace: delete view | V: views panel | W/F: wireframe/fill"
	rl.DrawTextEx(app.UI.font, helpText, rl.Vector2{X: 10, Y: screenHeight - 24}, fontSize12, 1, rl.NewColor(120, 140, 180, 255))

	// Version in the corner
	versionText := version.GetVersion()
	versionSize := rl.MeasureTextEx(app.UI.font, versionText, fontSize12, 1)
	rl.DrawTextEx(app.UI.font, versionText, rl.Vector2{X: screenWidth - versionSize.X - 10, Y: screenHeight - 24}, fontSize12, 1, rl.Gray)
}

// drawViewsPanel lists the saved views and records the row bounds for
// click handling.
func (app *App) drawViewsPanel() {
	app.UI.viewRowBound = app.UI.viewRowBound[:0]
	if !app.View.showPanel {
		return
	}

	views := app.Section.manager.Views()
	if len(views) == 0 {
		return
	}

	screenWidth := float32(rl.GetScreenWidth())
	rowHeight := float32(24)
	panelWidth := float32(260)
	panelPadding := float32(10)
	panelX := screenWidth - panelWidth - 20
	panelY := float32(70)
	panelHeight := float32(len(views))*rowHeight + panelPadding*2 + 26

	app.UI.panelBounds = rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth, Height: panelHeight}
	rl.DrawRectangleRounded(app.UI.panelBounds, 0.1, 8, rl.NewColor(20, 25, 35, 230))
	rl.DrawRectangleRoundedLines(app.UI.panelBounds, 0.1, 8, rl.NewColor(80, 160, 255, 255))

	rl.DrawTextEx(app.UI.font, "SECTION VIEWS", rl.Vector2{X: panelX + panelPadding, Y: panelY + 6}, 16, 1, rl.NewColor(100, 200, 255, 255))

	y := panelY + 30
	for i, v := range views {
		rowBounds := rl.Rectangle{X: panelX + 4, Y: y, Width: panelWidth - 8, Height: rowHeight}
		app.UI.viewRowBound = append(app.UI.viewRowBound, rowBounds)

		if i == app.Interaction.hoveredViewRow {
			rl.DrawRectangleRec(rowBounds, rl.NewColor(50, 55, 65, 255))
		}

		textColor := rl.White
		marker := "  "
		if v.Active {
			textColor = rl.Yellow
			marker = "> "
		}
		label := fmt.Sprintf("%s%s (%s)", marker, v.Name, v.Type)
		rl.DrawTextEx(app.UI.font, label, rl.Vector2{X: panelX + panelPadding, Y: y + 4}, 14, 1, textColor)
		y += rowHeight
	}
}

// drawViewLabels puts a screen-space label at each visible helper quad.
func (app *App) drawViewLabels() {
	for _, v := range app.Section.manager.Views() {
		if !v.Active {
			continue
		}
		helper := app.Section.helpers.Helper(v.ID)
		if helper == nil || !helper.Visible {
			continue
		}

		screenPos := rl.GetWorldToScreen(toRaylib(helper.WorldPosition()), app.Camera.camera)
		label := overlay.Label{
			Text:       v.Name,
			ScreenPos:  screenPos,
			BaseColor:  rl.Orange,
			HoverColor: rl.NewColor(255, 200, 100, 255),
			IsActive:   v.ID == app.Section.cutting.ActiveSectionViewID(),
		}
		label.Draw(app.UI.font, 14, 4)
	}
}
