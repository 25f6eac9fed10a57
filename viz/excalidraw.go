package viz

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	gfn "github.com/panyam/goutils/fn"

	"github.com/panyam/designboard/diagram"
)

// --- Excalidraw Generator ---

// ExcalidrawGenerator exports a board as an Excalidraw scene, keeping node
// positions, colors and the routed shape of every edge.
type ExcalidrawGenerator struct {
	// Rand seeds the hand drawn look; defaults to a time seeded source.
	Rand *rand.Rand
}

func (g *ExcalidrawGenerator) Generate(d diagram.Graph) (string, error) {
	scene := newExcalidrawScene(g.Rand)
	rectIDs := make(map[string]string)

	for _, node := range d.Nodes() {
		b := node.Bounds()
		labelText := fmt.Sprintf("%s\n(%s)", node.Label, node.Kind.Info().Subtitle)
		rect := scene.addRectangle(b.X, b.Y, b.Width, b.Height, labelText, node.AccentColor())
		rectIDs[node.ID] = rect.ID
	}

	for _, edge := range d.Edges() {
		fromID, fromOk := rectIDs[edge.Source]
		toID, toOk := rectIDs[edge.Target]
		path, routed := RouteEdge(d, edge)
		if !fromOk || !toOk || !routed {
			return "", fmt.Errorf("edge %s references a node that is not on the board", edge.ID)
		}
		scene.addArrow(fromID, toID, edge, path)
	}
	return scene.toJSON()
}

// --- Excalidraw Helper Structs and Methods ---

type ExcalidrawElement struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	X               float64         `json:"x"`
	Y               float64         `json:"y"`
	Width           float64         `json:"width"`
	Height          float64         `json:"height"`
	Angle           float64         `json:"angle,omitempty"`
	StrokeColor     string          `json:"strokeColor"`
	BackgroundColor string          `json:"backgroundColor"`
	FillStyle       string          `json:"fillStyle"`
	StrokeWidth     int             `json:"strokeWidth"`
	StrokeStyle     string          `json:"strokeStyle"`
	Roughness       int             `json:"roughness"`
	Opacity         int             `json:"opacity"`
	Seed            int64           `json:"seed"`
	Version         int             `json:"version"`
	VersionNonce    int64           `json:"versionNonce"`
	BoundElements   []*BoundElement `json:"boundElements,omitempty"`
	StartBinding    *Binding        `json:"startBinding,omitempty"`
	EndBinding      *Binding        `json:"endBinding,omitempty"`
	Points          [][]float64     `json:"points,omitempty"`
	Text            string          `json:"text,omitempty"`
	FontSize        float64         `json:"fontSize,omitempty"`
	FontFamily      int             `json:"fontFamily,omitempty"`
	TextAlign       string          `json:"textAlign,omitempty"`
	VerticalAlign   string          `json:"verticalAlign,omitempty"`
	ContainerId     *string         `json:"containerId,omitempty"`
	OriginalText    string          `json:"originalText,omitempty"`
	Roundness       *Roundness      `json:"roundness,omitempty"`
	StartArrowhead  *string         `json:"startArrowhead"`
	EndArrowhead    *string         `json:"endArrowhead"`
}

type Roundness struct {
	Type int `json:"type"`
}

type Binding struct {
	ElementID string  `json:"elementId"`
	Focus     float64 `json:"focus"`
	Gap       float64 `json:"gap"`
}

type BoundElement struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type ExcalidrawFile struct {
	Type     string               `json:"type"`
	Version  int                  `json:"version"`
	Source   string               `json:"source"`
	Elements []*ExcalidrawElement `json:"elements"`
	AppState map[string]any       `json:"appState"`
	Files    map[string]any       `json:"files"`
}

type ExcalidrawScene struct {
	elements     []*ExcalidrawElement
	elementIDMap map[string]*ExcalidrawElement
	randSource   *rand.Rand
}

func newExcalidrawScene(r *rand.Rand) *ExcalidrawScene {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ExcalidrawScene{
		elementIDMap: make(map[string]*ExcalidrawElement),
		randSource:   r,
	}
}

func (s *ExcalidrawScene) newSeed() int64 { return s.randSource.Int63n(2147483646) + 1 }

func (s *ExcalidrawScene) addElement(element *ExcalidrawElement) {
	if element.ID == "" {
		element.ID = uuid.NewString()
	}
	element.Seed = s.newSeed()
	element.VersionNonce = s.newSeed()
	element.Version = 2
	element.Opacity = 100
	s.elements = append(s.elements, element)
	s.elementIDMap[element.ID] = element
}

func (s *ExcalidrawScene) getElement(id string) *ExcalidrawElement { return s.elementIDMap[id] }

func (s *ExcalidrawScene) addRectangle(x, y, w, h float64, label, color string) *ExcalidrawElement {
	rect := &ExcalidrawElement{
		Type: "rectangle", X: x, Y: y, Width: w, Height: h, StrokeColor: color, BackgroundColor: "#ffffff",
		FillStyle: "solid", StrokeWidth: 2, StrokeStyle: "solid", Roughness: 1, Roundness: &Roundness{Type: 3},
	}
	s.addElement(rect)
	if label != "" {
		text := s.addText(x+10, y+(h-40)/2, w-20, 40, label, &rect.ID)
		rect.BoundElements = append(rect.BoundElements, &BoundElement{Type: "text", ID: text.ID})
	}
	return rect
}

func (s *ExcalidrawScene) addText(x, y, w, h float64, text string, containerID *string) *ExcalidrawElement {
	textEl := &ExcalidrawElement{
		Type: "text", X: x, Y: y, Width: w, Height: h, Text: text, OriginalText: text, ContainerId: containerID,
		StrokeColor: "#1e1e1e", BackgroundColor: "transparent", FillStyle: "solid", StrokeStyle: "solid",
		FontSize: 16, FontFamily: 1, TextAlign: "center", VerticalAlign: "middle",
	}
	s.addElement(textEl)
	return textEl
}

// addArrow draws an edge as an arrow element following the routed polyline.
// Excalidraw stores arrow points relative to the element origin.
func (s *ExcalidrawScene) addArrow(from, to string, edge diagram.Edge, path EdgePath) *ExcalidrawElement {
	origin := path.Polyline[0]
	points := gfn.Map(path.Polyline, func(p diagram.Point) []float64 {
		return []float64{p.X - origin.X, p.Y - origin.Y}
	})
	minX, minY, maxX, maxY := 0.0, 0.0, 0.0, 0.0
	for _, p := range points {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}

	arrow := &ExcalidrawElement{
		Type: "arrow", X: origin.X, Y: origin.Y, Width: maxX - minX, Height: maxY - minY, Points: points,
		StartArrowhead: arrowhead(edge.StartArrow), EndArrowhead: arrowhead(edge.EndArrow),
		StartBinding: &Binding{ElementID: s.getElement(from).ID, Focus: 0, Gap: 1},
		EndBinding:   &Binding{ElementID: s.getElement(to).ID, Focus: 0, Gap: 1},
		StrokeColor:  edge.StrokeColor(), BackgroundColor: "transparent", FillStyle: "solid",
		StrokeWidth: edge.StrokeWidth(), StrokeStyle: "solid", Roughness: 0,
	}
	if edge.Routing == diagram.Bezier || edge.Routing == diagram.SmoothStep {
		arrow.Roundness = &Roundness{Type: 2}
	}
	s.addElement(arrow)
	for _, id := range []string{from, to} {
		el := s.getElement(id)
		el.BoundElements = append(el.BoundElements, &BoundElement{Type: "arrow", ID: arrow.ID})
	}
	return arrow
}

func arrowhead(a diagram.ArrowType) *string {
	if a != diagram.Arrow {
		return nil
	}
	ah := "arrow"
	return &ah
}

func (s *ExcalidrawScene) toJSON() (string, error) {
	file := ExcalidrawFile{
		Type: "excalidraw", Version: 2, Source: "https://github.com/panyam/designboard",
		Elements: s.elements, AppState: map[string]any{"viewBackgroundColor": "#ffffff"},
		Files: map[string]any{},
	}
	if file.Elements == nil {
		file.Elements = []*ExcalidrawElement{}
	}
	data, err := json.MarshalIndent(file, "", "  ")
	return string(data), err
}
