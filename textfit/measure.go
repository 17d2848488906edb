// Package textfit measures, wraps, justifies and scales text so it fits the
// layout's column boxes. Sizes are pixels at 72 DPI, widths CSS pixels; the
// results feed the label rasterizer.
package textfit

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// Measurer reports rendered text dimensions at a given font size.
type Measurer interface {
	// Measure returns the advance width of text in pixels.
	Measure(text string, size float64) float64
	// LineHeight returns the baseline-to-baseline distance in pixels.
	LineHeight(size float64) float64
}

// FontMeasurer measures through a parsed TrueType font, caching one face per
// size. Not safe for concurrent use.
type FontMeasurer struct {
	font  *truetype.Font
	faces map[float64]font.Face
}

// ParseFont parses raw TTF bytes.
func ParseFont(data []byte) (*truetype.Font, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse truetype font: %w", err)
	}
	return f, nil
}

func NewFontMeasurer(f *truetype.Font) *FontMeasurer {
	return &FontMeasurer{
		font:  f,
		faces: make(map[float64]font.Face),
	}
}

// Face returns the face for a size, creating and caching it on first use.
// Hinting stays off so advances scale smoothly with size; the fit solver
// needs a continuous width function, not one quantized to whole pixels.
func (m *FontMeasurer) Face(size float64) font.Face {
	if face, ok := m.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(m.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	m.faces[size] = face
	return face
}

func (m *FontMeasurer) Measure(text string, size float64) float64 {
	return float64(font.MeasureString(m.Face(size), text)) / 64
}

func (m *FontMeasurer) LineHeight(size float64) float64 {
	return float64(m.Face(size).Metrics().Height) / 64
}
