package scene

import (
	"image"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"portal-site/core"
	"portal-site/textfit"
)

// labelPadding keeps glyph edges off the texture border so linear sampling
// does not bleed.
const labelPadding = 2

// FaceSource measures text and hands out the faces needed to rasterize it.
// *textfit.FontMeasurer satisfies it.
type FaceSource interface {
	textfit.Measurer
	Face(size float64) font.Face
}

// Label is a text block rendered into a texture and shown on a unit quad.
// The node's scale carries the CSS-to-world sizing; the texture is rebuilt
// only when the text or its box actually change.
type Label struct {
	Name     string
	Node     *Node
	Texture  *Texture
	Color    core.Color
	Opacity  float64
	BaseSize float64
	Block    textfit.Block

	text   string
	fitKey labelFitKey
	fitted bool
}

type labelFitKey struct {
	text      string
	boxW      float64
	boxH      float64
	fontScale float64
}

func NewLabel(name string, parent *Node, color core.Color) *Label {
	l := &Label{
		Name:     name,
		Color:    color,
		Opacity:  1,
		BaseSize: 16,
	}
	l.Node = NewNode(name)
	l.Node.Mesh = CreateQuad(name + "_quad")
	l.Node.Material = NewMaterial(name+"_mat", core.ColorWhite)
	if parent != nil {
		parent.AddChild(l.Node)
	}
	return l
}

// SetOpacity fades the label; the ink color itself is baked into the raster.
func (l *Label) SetOpacity(o float64) {
	l.Opacity = o
	if l.Node.Material != nil {
		l.Node.Material.Opacity = float32(o)
	}
}

func (l *Label) SetText(text string) {
	l.text = text
}

func (l *Label) Text() string {
	return l.text
}

// ContentSize returns the laid-out block size in CSS pixels after its
// contain-scale is applied.
func (l *Label) ContentSize() (w, h float64) {
	return l.Block.Width * l.Block.Scale, l.Block.Height * l.Block.Scale
}

// Fit lays the current text into a box and rebuilds the texture when the
// inputs changed since the last call. The previous texture is returned so the
// caller can release its GPU copy; rebuilt reports whether anything happened.
func (l *Label) Fit(src FaceSource, boxW, boxH, fontScale float64) (retired *Texture, rebuilt bool) {
	key := labelFitKey{text: l.text, boxW: boxW, boxH: boxH, fontScale: fontScale}
	if l.fitted && key == l.fitKey {
		return nil, false
	}

	size := l.BaseSize * fontScale
	l.Block = textfit.Fit(src, l.text, boxW, boxH, size)

	retired = l.Texture
	l.Texture = l.rasterize(src)
	if l.Node.Material != nil {
		l.Node.Material.AlbedoTexture = l.Texture
	}
	l.fitKey = key
	l.fitted = true
	return retired, true
}

// Invalidate forces the next Fit to rebuild.
func (l *Label) Invalidate() {
	l.fitted = false
}

// rasterize draws the fitted block into a fresh RGBA texture.
func (l *Label) rasterize(src FaceSource) *Texture {
	w := int(math.Ceil(l.Block.Width)) + 2*labelPadding
	h := int(math.Ceil(l.Block.Height)) + 2*labelPadding
	if w <= 2*labelPadding || h <= 2*labelPadding {
		return NewSolidTexture(l.Name+"_texture", 0, 0, 0, 0)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst: img,
		Src: image.NewUniform(l.Color.NRGBA()),
	}

	for i, line := range l.Block.Lines {
		if line.Text == "" {
			continue
		}
		face := src.Face(line.Size)
		d.Face = face
		ascent := float64(face.Metrics().Ascent) / 64
		d.Dot = fixed.Point26_6{
			X: fixed.I(labelPadding),
			Y: floatToFixed(float64(labelPadding) + float64(i)*l.Block.LineHeight + ascent),
		}
		if line.GapExtra > 0 {
			drawJustified(&d, face, line)
		} else {
			d.DrawString(line.Text)
		}
	}

	return NewTextureFromImage(l.Name+"_texture", img)
}

// drawJustified emits a line word by word, widening every gap by the line's
// per-gap extra.
func drawJustified(d *font.Drawer, face font.Face, line textfit.JustifiedLine) {
	space := font.MeasureString(face, " ")
	extra := floatToFixed(line.GapExtra)
	for i, word := range strings.Fields(line.Text) {
		if i > 0 {
			d.Dot.X += space + extra
		}
		d.DrawString(word)
	}
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
