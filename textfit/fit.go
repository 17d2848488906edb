package textfit

import (
	"math"
	"strings"
)

const (
	// maxGapStretch caps a justified word gap at this multiple of the
	// natural space width. Past the cap the line grows its font size
	// instead of opening wider gaps.
	maxGapStretch = 2.5

	maxFitIterations = 20
	fitTolerance     = 0.001
)

// Wrap breaks text into lines no wider than maxWidth. Hard newlines are
// honored and empty paragraphs survive as empty lines. A word that alone
// exceeds maxWidth still gets its own line; overflow is the caller's problem
// (ContainScale absorbs it).
func Wrap(m Measurer, text string, size, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(m, para, size, maxWidth)...)
	}
	return lines
}

func wrapParagraph(m Measurer, para string, size, maxWidth float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if m.Measure(candidate, size) <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = word
	}
	return append(lines, line)
}

// JustifiedLine is one laid-out line. GapExtra is the additional width added
// to every word gap; Size may exceed the block's base size when justification
// grew the line instead of stretching its gaps.
type JustifiedLine struct {
	Text     string
	Size     float64
	GapExtra float64
}

// justifyLine stretches a wrapped line out to targetWidth. Small deficits
// widen the word gaps; once a gap would pass the stretch cap the font grows
// until the line fills naturally. Lines without gaps are returned as-is.
func justifyLine(m Measurer, text string, size, targetWidth float64) JustifiedLine {
	jl := JustifiedLine{Text: text, Size: size}

	gaps := strings.Count(text, " ")
	natural := m.Measure(text, size)
	if gaps == 0 || natural >= targetWidth {
		return jl
	}

	extra := (targetWidth - natural) / float64(gaps)
	maxExtra := m.Measure(" ", size) * (maxGapStretch - 1)
	if extra <= maxExtra {
		jl.GapExtra = extra
		return jl
	}

	grown := FitSize(m, text, targetWidth, size, size*2)
	if grown > size {
		jl.Size = grown
		natural = m.Measure(text, grown)
	}
	if remaining := targetWidth - natural; remaining > 0 {
		jl.GapExtra = remaining / float64(gaps)
	}
	return jl
}

// FitSize solves for the largest font size at which text measures no wider
// than targetWidth, searching within [lo, hi] and widening hi when the
// bracket is too small. Returns lo when the text cannot fit at all.
func FitSize(m Measurer, text string, targetWidth, lo, hi float64) float64 {
	if targetWidth <= 0 || text == "" || lo <= 0 {
		return lo
	}
	if hi < lo {
		hi = lo
	}
	for i := 0; i < 8 && m.Measure(text, hi) < targetWidth; i++ {
		hi *= 2
	}
	if m.Measure(text, hi) <= targetWidth {
		return hi
	}
	if m.Measure(text, lo) > targetWidth {
		return lo
	}

	best := lo
	for i := 0; i < maxFitIterations && hi-lo > fitTolerance; i++ {
		mid := (lo + hi) / 2
		if m.Measure(text, mid) <= targetWidth {
			best, lo = mid, mid
		} else {
			hi = mid
		}
	}
	return best
}

// ContainScale returns the factor that fits a natural content size inside a
// box without cropping, never upscaling past 1. Degenerate inputs scale to
// zero so the content simply disappears instead of dividing by zero.
func ContainScale(naturalW, naturalH, boxW, boxH float64) float64 {
	if naturalW <= 0 || naturalH <= 0 || boxW <= 0 || boxH <= 0 ||
		math.IsNaN(naturalW) || math.IsNaN(naturalH) || math.IsNaN(boxW) || math.IsNaN(boxH) {
		return 0
	}
	return math.Min(1, math.Min(boxW/naturalW, boxH/naturalH))
}

// Block is a fully laid-out text column ready for rasterization.
type Block struct {
	Lines      []JustifiedLine
	Size       float64
	LineHeight float64
	Width      float64
	Height     float64
	// Scale shrinks the rasterized block when it overflows its box.
	Scale float64
}

// Fit wraps and justifies text into a boxW-by-boxH column at the given base
// size. Every line except the last of its paragraph is justified to the box
// width.
func Fit(m Measurer, text string, boxW, boxH, size float64) Block {
	b := Block{
		Size:       size,
		LineHeight: m.LineHeight(size),
	}
	if size <= 0 {
		b.Scale = 0
		return b
	}

	for _, para := range strings.Split(text, "\n") {
		wrapped := wrapParagraph(m, para, size, boxW)
		for i, line := range wrapped {
			if i < len(wrapped)-1 {
				b.Lines = append(b.Lines, justifyLine(m, line, size, boxW))
			} else {
				b.Lines = append(b.Lines, JustifiedLine{Text: line, Size: size})
			}
		}
	}

	for _, line := range b.Lines {
		w := m.Measure(line.Text, line.Size) + line.GapExtra*float64(strings.Count(line.Text, " "))
		if w > b.Width {
			b.Width = w
		}
		if lh := m.LineHeight(line.Size); lh > b.LineHeight {
			b.LineHeight = lh
		}
	}
	b.Height = b.LineHeight * float64(len(b.Lines))
	b.Scale = ContainScale(b.Width, b.Height, boxW, boxH)
	if b.Width == 0 {
		// Blank text still occupies its line boxes.
		b.Scale = ContainScale(1, math.Max(b.Height, 1), boxW, boxH)
	}
	return b
}
