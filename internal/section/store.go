package section

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/philipparndt/gobim/pkg/geometry"
)

const viewsFileVersion = "1.0"

// viewsFileData is the JSON structure for saved views
type viewsFileData struct {
	Version string     `json:"version"`
	Views   []viewData `json:"views"`
}

// viewData is a saved view
type viewData struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Type           string        `json:"type"`
	Normal         *vector3Data  `json:"normal,omitempty"`
	Point          *vector3Data  `json:"point,omitempty"`
	Range          float64       `json:"range"`
	HelpersVisible *bool         `json:"helpersVisible,omitempty"`
	Scissors       *scissorsData `json:"scissors,omitempty"`
	Camera         *cameraData   `json:"camera,omitempty"`
}

// scissorsData is a saved scissors line
type scissorsData struct {
	P1 vector3Data `json:"p1"`
	P2 vector3Data `json:"p2"`
}

// cameraData is a saved camera pose
type cameraData struct {
	Position vector3Data `json:"position"`
	Target   vector3Data `json:"target"`
}

// vector3Data is a 3D vector for JSON serialization
type vector3Data struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ViewsFilePath returns the sidecar file path for a model file.
func ViewsFilePath(modelPath string) string {
	return modelPath + ".gobim.json"
}

// SaveViews writes the views to the model's sidecar file. An empty view
// list removes the file instead.
func SaveViews(modelPath string, views []*View) error {
	filePath := ViewsFilePath(modelPath)

	if len(views) == 0 {
		if _, err := os.Stat(filePath); err == nil {
			return os.Remove(filePath)
		}
		return nil
	}

	data := viewsFileData{Version: viewsFileVersion}
	for _, v := range views {
		if v == nil {
			continue
		}
		data.Views = append(data.Views, toViewData(v))
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode views: %w", err)
	}
	if err := os.WriteFile(filePath, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	return nil
}

// LoadViews reads the views from the model's sidecar file. A missing
// file yields an empty list.
func LoadViews(modelPath string) ([]*View, error) {
	filePath := ViewsFilePath(modelPath)

	raw, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	var data viewsFileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	views := make([]*View, 0, len(data.Views))
	for _, vd := range data.Views {
		views = append(views, fromViewData(vd))
	}
	return views, nil
}

func toViewData(v *View) viewData {
	vd := viewData{
		ID:             v.ID,
		Name:           v.Name,
		Type:           string(v.Type),
		Range:          v.Range,
		HelpersVisible: v.HelpersVisible,
	}
	if v.Normal != nil {
		vd.Normal = toVectorData(*v.Normal)
	}
	if v.Point != nil {
		vd.Point = toVectorData(*v.Point)
	}
	if v.Scissors != nil {
		vd.Scissors = &scissorsData{
			P1: *toVectorData(v.Scissors.P1),
			P2: *toVectorData(v.Scissors.P2),
		}
	}
	if v.Camera != nil {
		vd.Camera = &cameraData{
			Position: *toVectorData(v.Camera.Position),
			Target:   *toVectorData(v.Camera.Target),
		}
	}
	return vd
}

func fromViewData(vd viewData) *View {
	v := &View{
		ID:             vd.ID,
		Name:           vd.Name,
		Type:           ViewType(vd.Type),
		Range:          vd.Range,
		HelpersVisible: vd.HelpersVisible,
	}
	if v.Range <= 0 {
		v.Range = DefaultViewRange
	}
	if vd.Normal != nil {
		n := fromVectorData(*vd.Normal)
		v.Normal = &n
	}
	if vd.Point != nil {
		p := fromVectorData(*vd.Point)
		v.Point = &p
	}
	if vd.Scissors != nil {
		v.Scissors = &ScissorsLine{
			P1: fromVectorData(vd.Scissors.P1),
			P2: fromVectorData(vd.Scissors.P2),
		}
	}
	if vd.Camera != nil {
		v.Camera = &CameraPose{
			Position: fromVectorData(vd.Camera.Position),
			Target:   fromVectorData(vd.Camera.Target),
		}
	}
	return v
}

func toVectorData(v geometry.Vector3) *vector3Data {
	return &vector3Data{X: v.X, Y: v.Y, Z: v.Z}
}

func fromVectorData(d vector3Data) geometry.Vector3 {
	return geometry.Vector3{X: d.X, Y: d.Y, Z: d.Z}
}
