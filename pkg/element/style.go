package element

// ColorTransparent is the sentinel fill value meaning "no fill".
const ColorTransparent = "transparent"

// Default palette. The fills follow the scheme the upstream renderer uses
// for common node roles; callers override per node via style options.
const (
	ColorDefaultStroke = "#1e1e1e"
	ColorFillAmber     = "#ffec99" // model/decision nodes
	ColorFillBlue      = "#a5d8ff" // coordinator/code nodes
	ColorFillGreen     = "#c2f0c2" // process nodes
)

// Stroke and fill pattern values.
const (
	StrokeSolid  = "solid"
	StrokeDashed = "dashed"
	FillSolid    = "solid"
	FillHachure  = "hachure"
)

// Style captures the visual appearance shared by all element variants.
type Style struct {
	StrokeColor string `json:"stroke_color" bson:"stroke_color"`
	FillColor   string `json:"fill_color" bson:"fill_color"` // ColorTransparent means no fill
	FillStyle   string `json:"fill_style" bson:"fill_style"`
	StrokeWidth int    `json:"stroke_width" bson:"stroke_width"`
	StrokeStyle string `json:"stroke_style" bson:"stroke_style"`
	Opacity     int    `json:"opacity" bson:"opacity"` // 0..100
}

// DefaultStyle returns the baseline style applied to new elements:
// dark solid stroke of width 2, no fill, full opacity.
func DefaultStyle() Style {
	return Style{
		StrokeColor: ColorDefaultStroke,
		FillColor:   ColorTransparent,
		FillStyle:   FillSolid,
		StrokeWidth: 2,
		StrokeStyle: StrokeSolid,
		Opacity:     100,
	}
}

// WithFill returns a copy of the style with the fill color replaced.
func (s Style) WithFill(color string) Style {
	s.FillColor = color
	return s
}

// WithStrokeWidth returns a copy of the style with the stroke width replaced.
func (s Style) WithStrokeWidth(w int) Style {
	s.StrokeWidth = w
	return s
}

// Dashed returns a copy of the style with a dashed stroke pattern.
func (s Style) Dashed() Style {
	s.StrokeStyle = StrokeDashed
	return s
}
