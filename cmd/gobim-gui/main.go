package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gobim/internal/section"
	"github.com/philipparndt/gobim/pkg/analysis"
	"github.com/philipparndt/gobim/pkg/geometry"
	"github.com/philipparndt/gobim/pkg/scene"
	"github.com/philipparndt/gobim/pkg/stl"
	"github.com/philipparndt/gobim/pkg/viewer"
)

type App struct {
	window    fyne.Window
	modelPath string
	source    *stl.Model
	model     *scene.Model
	renderer  *viewer.ModelRenderer

	sceneGraph *scene.Scene
	clipping   *section.ClippingPlaneService
	helpers    *section.SectionHelperService
	cutting    *section.SectionCuttingService
	manager    *section.ViewsManager

	viewsBox      *fyne.Container
	modelInfo     *widget.Label
	sectionStatus *widget.Label
}

// modelSource adapts the single loaded model to the clipping service.
type modelSource struct {
	app *App
}

func (s *modelSource) LoadedModels() []*scene.Model {
	if s.app.model == nil {
		return nil
	}
	return []*scene.Model{s.app.model}
}

type rendererSource struct {
	renderer *scene.Renderer
}

func (s *rendererSource) UnderlyingRenderer() *scene.Renderer {
	return s.renderer
}

func main() {
	a := app.New()
	w := a.NewWindow("GoBIM - Section Viewer")

	appInstance := &App{
		window: w,
	}

	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to GoBIM")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open Model' to load an STL model")

	openButton := widget.NewButton("Open Model", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	source, err := stl.Parse(filename)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load model file: %w", err), a.window)
		return
	}

	a.modelPath = filename
	a.source = source
	a.model = source.SceneModel()

	a.sceneGraph = scene.NewScene()
	a.clipping = section.NewClippingPlaneService(a.sceneGraph, &modelSource{app: a}, &rendererSource{renderer: scene.NewRenderer()})
	a.helpers = section.NewSectionHelperService(a.sceneGraph)
	a.cutting = section.NewSectionCuttingService(a.clipping)
	a.manager = section.NewViewsManager(a.cutting, a.helpers)

	if views, err := section.LoadViews(filename); err == nil {
		a.manager.SetViews(views)
	}

	a.setupMainUI()
}

func (a *App) setupMainUI() {
	a.modelInfo = widget.NewLabel("")
	a.sectionStatus = widget.NewLabel("Pick two points to cut a section")
	a.viewsBox = container.NewVBox()

	a.renderer = viewer.NewModelRenderer(a.model, a.sceneGraph)
	a.renderer.SetOnSectionLine(func(p1, p2, cameraDir geometry.Vector3) {
		a.createSectionFromLine(p1, p2, cameraDir)
	})

	openButton := widget.NewButton("Open Model", func() {
		a.showFileDialog()
	})

	clearButton := widget.NewButton("Clear All Cuts", func() {
		a.manager.ClearAll()
		a.saveViews()
		a.refreshViews()
	})

	result := analysis.AnalyzeModel(a.source)
	a.modelInfo.SetText(fmt.Sprintf(
		"Model: %s\nElements: %d\nTriangles: %d\nSurface Area: %.2f\n\nDimensions:\n  X: %.2f\n  Y: %.2f\n  Z: %.2f\n\nEstimated storeys: %d",
		a.source.Name,
		result.SolidCount,
		result.TriangleCount,
		result.SurfaceArea,
		result.Dimensions.X,
		result.Dimensions.Y,
		result.Dimensions.Z,
		result.EstimatedStoreys,
	))

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Click two vertices to draw a section line\n" +
			"• Drag to rotate the view\n" +
			"• Scroll to zoom in/out\n" +
			"• Toggle saved views in the panel below",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Model Information:"),
		widget.NewSeparator(),
		a.modelInfo,
		widget.NewSeparator(),
		widget.NewLabel("Section Views:"),
		widget.NewSeparator(),
		a.sectionStatus,
		a.viewsBox,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		openButton,
		clearButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,
		nil,
		nil,
		infoScroll,
		a.renderer,
	)

	a.window.SetContent(content)
	a.refreshViews()

	a.renderer.Render(800, 600)
}

func (a *App) createSectionFromLine(p1, p2, cameraDir geometry.Vector3) {
	name := fmt.Sprintf("Section %d", len(a.manager.Views())+1)
	v := a.manager.CreateSectionViewFromPoints(p1, p2, cameraDir, section.SectionViewOptions{Name: name})
	if v == nil {
		a.sectionStatus.SetText("Points too close together, pick again")
		return
	}
	a.manager.ApplyView(v.ID)
	a.saveViews()
	a.refreshViews()
}

// refreshViews rebuilds the view list panel from the registry.
func (a *App) refreshViews() {
	a.viewsBox.RemoveAll()

	views := a.manager.Views()
	if len(views) == 0 {
		a.sectionStatus.SetText("Pick two points to cut a section")
	} else {
		a.sectionStatus.SetText(fmt.Sprintf("%d saved view(s)", len(views)))
	}

	for _, v := range views {
		view := v
		label := view.Name
		if view.Active {
			label = "> " + label
		}

		toggle := widget.NewButton(label, func() {
			if view.Active {
				a.manager.RemoveView(view.ID)
			} else {
				a.manager.ApplyView(view.ID)
			}
			a.refreshViews()
		})

		remove := widget.NewButton("Delete", func() {
			a.manager.DeleteView(view.ID)
			a.saveViews()
			a.refreshViews()
		})

		a.viewsBox.Add(container.NewBorder(nil, nil, nil, remove, toggle))
	}

	a.viewsBox.Refresh()
	if a.renderer != nil {
		a.renderer.Rerender()
	}
}

func (a *App) saveViews() {
	if err := section.SaveViews(a.modelPath, a.manager.Views()); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save views: %w", err), a.window)
	}
}
