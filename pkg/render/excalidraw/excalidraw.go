// Package excalidraw serializes diagram documents into the Excalidraw
// scene file format (version 2). The output opens directly in the
// Excalidraw editor with all containment and connector bindings intact.
package excalidraw

import (
	"encoding/json"

	"github.com/sketchflow/sketchflow/pkg/diagram"
	"github.com/sketchflow/sketchflow/pkg/element"
)

// Scene-wide constants. Seeds and timestamps derive from the element's
// position in the document so the same document always serializes to the
// same bytes.
const (
	sceneVersion = 2
	sceneSource  = "https://github.com/sketchflow/sketchflow"
	fontFamily   = 5
	lineHeight   = 1.25
	baseUpdated  = int64(1757460000000)
)

// Roundness type discriminators used by the editor: 3 selects adaptive
// corner radii for rectangles, 2 proportional radii for ellipses and
// arrow paths.
const (
	roundnessAdaptive     = 3
	roundnessProportional = 2
)

// Scene is the top-level scene file structure.
type Scene struct {
	Type     string         `json:"type"`
	Version  int            `json:"version"`
	Source   string         `json:"source"`
	Elements []SceneElement `json:"elements"`
	AppState AppState       `json:"appState"`
	Files    map[string]any `json:"files"`
}

// AppState carries the editor defaults stored alongside the elements.
type AppState struct {
	GridSize                   int     `json:"gridSize"`
	ViewBackgroundColor        string  `json:"viewBackgroundColor"`
	CurrentItemFontFamily      int     `json:"currentItemFontFamily"`
	CurrentItemFontSize        float64 `json:"currentItemFontSize"`
	CurrentItemStrokeColor     string  `json:"currentItemStrokeColor"`
	CurrentItemBackgroundColor string  `json:"currentItemBackgroundColor"`
	CurrentItemFillStyle       string  `json:"currentItemFillStyle"`
	CurrentItemStrokeWidth     int     `json:"currentItemStrokeWidth"`
	CurrentItemStrokeStyle     string  `json:"currentItemStrokeStyle"`
	CurrentItemRoughness       int     `json:"currentItemRoughness"`
	CurrentItemOpacity         int     `json:"currentItemOpacity"`
	CurrentItemTextAlign       string  `json:"currentItemTextAlign"`
	CurrentItemStartArrowhead  *string `json:"currentItemStartArrowhead"`
	CurrentItemEndArrowhead    string  `json:"currentItemEndArrowhead"`
	Name                       string  `json:"name,omitempty"`
}

// Roundness selects the editor's corner rounding mode.
type Roundness struct {
	Type int `json:"type"`
}

// BoundElement is one entry in an element's boundElements list.
type BoundElement struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Binding anchors one end of an arrow to an element.
type Binding struct {
	ElementID string  `json:"elementId"`
	Focus     float64 `json:"focus"`
	Gap       float64 `json:"gap"`
}

// SceneElement is the flat element record the editor reads. Variant
// fields (text, arrow) are omitted for kinds they do not apply to.
type SceneElement struct {
	ID              string         `json:"id"`
	Type            string         `json:"type"`
	X               float64        `json:"x"`
	Y               float64        `json:"y"`
	Width           float64        `json:"width"`
	Height          float64        `json:"height"`
	Angle           float64        `json:"angle"`
	StrokeColor     string         `json:"strokeColor"`
	BackgroundColor string         `json:"backgroundColor"`
	FillStyle       string         `json:"fillStyle"`
	StrokeWidth     int            `json:"strokeWidth"`
	StrokeStyle     string         `json:"strokeStyle"`
	Roughness       int            `json:"roughness"`
	Opacity         int            `json:"opacity"`
	GroupIDs        []string       `json:"groupIds"`
	FrameID         *string        `json:"frameId"`
	Index           string         `json:"index"`
	Roundness       *Roundness     `json:"roundness"`
	Seed            int            `json:"seed"`
	Version         int            `json:"version"`
	VersionNonce    int            `json:"versionNonce"`
	IsDeleted       bool           `json:"isDeleted"`
	BoundElements   []BoundElement `json:"boundElements"`
	Updated         int64          `json:"updated"`
	Link            *string        `json:"link"`
	Locked          bool           `json:"locked"`

	// Text variant
	Text          string  `json:"text,omitempty"`
	FontSize      float64 `json:"fontSize,omitempty"`
	FontFamily    int     `json:"fontFamily,omitempty"`
	TextAlign     string  `json:"textAlign,omitempty"`
	VerticalAlign string  `json:"verticalAlign,omitempty"`
	ContainerID   *string `json:"containerId,omitempty"`
	OriginalText  string  `json:"originalText,omitempty"`
	AutoResize    bool    `json:"autoResize,omitempty"`
	LineHeight    float64 `json:"lineHeight,omitempty"`

	// Arrow variant
	Points             [][2]float64 `json:"points,omitempty"`
	LastCommittedPoint *[2]float64  `json:"lastCommittedPoint,omitempty"`
	StartBinding       *Binding     `json:"startBinding,omitempty"`
	EndBinding         *Binding     `json:"endBinding,omitempty"`
	StartArrowhead     *string      `json:"startArrowhead,omitempty"`
	EndArrowhead       string       `json:"endArrowhead,omitempty"`
	Elbowed            *bool        `json:"elbowed,omitempty"`
}

// FromDocument converts a document into a scene. Conversion is total for
// valid documents: every element kind maps to exactly one scene record.
func FromDocument(doc diagram.Document) Scene {
	elements := make([]SceneElement, 0, len(doc.Elements))
	for i, e := range doc.Elements {
		elements = append(elements, convert(e, i))
	}
	return Scene{
		Type:     "excalidraw",
		Version:  sceneVersion,
		Source:   sceneSource,
		Elements: elements,
		AppState: defaultAppState(doc.Title),
		Files:    map[string]any{},
	}
}

// Marshal renders the document as indented scene JSON.
func Marshal(doc diagram.Document) ([]byte, error) {
	return json.MarshalIndent(FromDocument(doc), "", "  ")
}

func defaultAppState(name string) AppState {
	return AppState{
		GridSize:                   20,
		ViewBackgroundColor:        "#ffffff",
		CurrentItemFontFamily:      fontFamily,
		CurrentItemFontSize:        diagram.DefaultFontSize,
		CurrentItemStrokeColor:     element.ColorDefaultStroke,
		CurrentItemBackgroundColor: element.ColorTransparent,
		CurrentItemFillStyle:       element.FillSolid,
		CurrentItemStrokeWidth:     2,
		CurrentItemStrokeStyle:     element.StrokeSolid,
		CurrentItemRoughness:       1,
		CurrentItemOpacity:         100,
		CurrentItemTextAlign:       "left",
		CurrentItemEndArrowhead:    "arrow",
		Name:                       name,
	}
}

func convert(e element.Element, ordinal int) SceneElement {
	out := SceneElement{
		ID:              e.ID,
		Type:            string(e.Type),
		X:               e.X,
		Y:               e.Y,
		Width:           e.Width,
		Height:          e.Height,
		StrokeColor:     e.Style.StrokeColor,
		BackgroundColor: e.Style.FillColor,
		FillStyle:       e.Style.FillStyle,
		StrokeWidth:     e.Style.StrokeWidth,
		StrokeStyle:     e.Style.StrokeStyle,
		Roughness:       1,
		Opacity:         e.Style.Opacity,
		GroupIDs:        groupIDs(e),
		Index:           e.Order,
		Seed:            ordinal + 1,
		Version:         1,
		VersionNonce:    (ordinal + 1) * 1000,
		BoundElements:   boundElements(e),
		Updated:         baseUpdated + int64(ordinal),
	}

	switch e.Type {
	case element.TypeRectangle:
		out.Roundness = &Roundness{Type: roundnessAdaptive}
	case element.TypeEllipse:
		out.Roundness = &Roundness{Type: roundnessProportional}
	case element.TypeText:
		out.Text = e.Text
		out.FontSize = e.FontSize
		out.FontFamily = fontFamily
		out.OriginalText = e.Text
		out.AutoResize = true
		out.LineHeight = lineHeight
		if e.ContainerID != "" {
			id := e.ContainerID
			out.ContainerID = &id
			out.TextAlign = "center"
			out.VerticalAlign = "middle"
		} else {
			out.TextAlign = "left"
			out.VerticalAlign = "top"
		}
	case element.TypeArrow:
		out.Roundness = &Roundness{Type: roundnessProportional}
		out.Points = points(e.Points)
		out.EndArrowhead = "arrow"
		if e.StartID != "" {
			out.StartBinding = &Binding{ElementID: e.StartID, Focus: e.StartAnchor.Focus, Gap: e.StartAnchor.Gap}
		}
		if e.EndID != "" {
			out.EndBinding = &Binding{ElementID: e.EndID, Focus: e.EndAnchor.Focus, Gap: e.EndAnchor.Gap}
		}
	}
	return out
}

// groupIDs returns the membership list, never nil so the scene always
// carries an array.
func groupIDs(e element.Element) []string {
	if len(e.GroupIDs) == 0 {
		return []string{}
	}
	return append([]string(nil), e.GroupIDs...)
}

// boundElements maps the document's typed bound refs onto the editor's
// {id, type} records. The editor only distinguishes text and arrow.
func boundElements(e element.Element) []BoundElement {
	out := make([]BoundElement, 0, len(e.Bound))
	for _, ref := range e.Bound {
		switch ref.Kind {
		case element.BindContainsText:
			if e.Type.IsShape() {
				out = append(out, BoundElement{ID: ref.ElementID, Type: "text"})
			}
		case element.BindArrowStart, element.BindArrowEnd:
			out = append(out, BoundElement{ID: ref.ElementID, Type: "arrow"})
		}
	}
	return out
}

func points(pts []element.Point) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}
