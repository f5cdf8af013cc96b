package report

import "image/color"

// Style is the figure appearance handed to a renderer. Renderers read it
// and never change shared settings, so two renderers with different
// styles can coexist.
type Style struct {
	WidthInches   float64
	HeightInches  float64
	LabelSize     float64 // points
	TickLabelSize float64
	LabelPadding  float64 // distance between an axis label and its tick labels
	MinorTicks    bool
	InwardTicks   bool // tick marks point into the data area
	Ink           color.Color
}

// DefaultStyle is a 5x4 inch figure with 16pt axis labels, 12pt tick
// labels, inward minor and major ticks and black ink.
func DefaultStyle() Style {
	return Style{
		WidthInches:   5,
		HeightInches:  4,
		LabelSize:     16,
		TickLabelSize: 12,
		LabelPadding:  8,
		MinorTicks:    true,
		InwardTicks:   true,
		Ink:           color.Black,
	}
}

func (s Style) ink() color.Color {
	if s.Ink == nil {
		return color.Black
	}
	return s.Ink
}
