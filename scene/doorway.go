package scene

import (
	"fmt"
	"math"

	"github.com/ungerik/go-cairo"

	"portal-site/core"
)

// doorTextureSize is the square canvas edge in pixels. The ellipse mask in
// the portal shader covers the rim, so the canvas can stay this small.
const doorTextureSize = 256

// repaintStep is the minimum spread movement that triggers a repaint.
const repaintStep = 1.0 / 32.0

// DoorwayPainter paints the arch-and-doors texture for one portal on a cairo
// canvas. The two leaves slide apart as spread falls from 1 (closed) to 0
// (open). Textures are immutable once painted; a repaint produces a fresh one
// and hands the previous texture back for GPU disposal.
type DoorwayPainter struct {
	Name  string
	Wood  core.Color
	Frame core.Color

	size    int
	last    float64
	painted bool
	texture *Texture
}

func NewDoorwayPainter(name string) *DoorwayPainter {
	palette := core.DefaultPalette()
	return &DoorwayPainter{
		Name:  name,
		Wood:  palette.DoorWood,
		Frame: palette.DoorFrame,
		size:  doorTextureSize,
	}
}

// Texture returns the most recently painted texture, nil before first paint.
func (d *DoorwayPainter) Texture() *Texture { return d.texture }

// NeedsRepaint reports whether spread has moved far enough from the last
// painted value to warrant a new canvas.
func (d *DoorwayPainter) NeedsRepaint(spread float64) bool {
	if !d.painted {
		return true
	}
	return math.Abs(spread-d.last) >= repaintStep
}

// Paint renders the doorway at the given spread and swaps it in as the
// current texture. The returned retired texture, if any, still occupies GPU
// memory and must be deleted by the caller.
func (d *DoorwayPainter) Paint(spread float64) (retired *Texture, repainted bool) {
	if !d.NeedsRepaint(spread) {
		return nil, false
	}
	spread = clampF(spread, 0, 1)

	surface := cairo.NewSurface(cairo.FORMAT_ARGB32, d.size, d.size)
	defer surface.Destroy()

	d.paintArch(surface)
	d.paintDoors(surface, spread)
	surface.Flush()

	pixels := argbToRGBA(surface.GetData(), d.size, d.size)
	retired = d.texture
	d.texture = NewTextureFromPixels(fmt.Sprintf("%s@%.2f", d.Name, spread), d.size, d.size, pixels)
	d.last = spread
	d.painted = true
	return retired, true
}

// paintArch strokes the doorway frame: two jambs joined by a semicircular
// head. The interior stays transparent so the portal shader shows through.
func (d *DoorwayPainter) paintArch(s *cairo.Surface) {
	size := float64(d.size)
	margin := size * 0.12
	lineW := size * 0.045

	left := margin
	right := size - margin
	bottom := size - margin
	cx := size / 2
	radius := (right - left) / 2
	springY := margin + radius

	s.Save()
	s.SetSourceRGBA(float64(d.Frame.R), float64(d.Frame.G), float64(d.Frame.B), float64(d.Frame.A))
	s.SetLineWidth(lineW)
	s.MoveTo(left, bottom)
	s.LineTo(left, springY)
	s.Arc(cx, springY, radius, math.Pi, 2*math.Pi)
	s.LineTo(right, bottom)
	s.Stroke()

	// threshold
	s.MoveTo(left-lineW, bottom)
	s.LineTo(right+lineW, bottom)
	s.Stroke()
	s.Restore()
}

// paintDoors fills the two leaves. At spread 1 they meet in the middle; as
// spread falls they slide into the jambs until the opening is clear.
func (d *DoorwayPainter) paintDoors(s *cairo.Surface, spread float64) {
	if spread <= 0 {
		return
	}
	size := float64(d.size)
	margin := size * 0.12
	inset := size * 0.035

	left := margin + inset
	right := size - margin - inset
	bottom := size - margin - inset/2
	top := margin + inset
	cx := size / 2
	leafW := (cx - left) * spread

	s.Save()
	s.SetSourceRGBA(float64(d.Wood.R), float64(d.Wood.G), float64(d.Wood.B), float64(d.Wood.A))
	s.Rectangle(cx-leafW, top, leafW, bottom-top)
	s.Fill()
	s.Rectangle(cx, top, leafW, bottom-top)
	s.Fill()

	// panel seams
	s.SetSourceRGBA(float64(d.Frame.R), float64(d.Frame.G), float64(d.Frame.B), float64(d.Frame.A))
	s.SetLineWidth(size * 0.012)
	s.MoveTo(cx-leafW, top+(bottom-top)/2)
	s.LineTo(cx, top+(bottom-top)/2)
	s.MoveTo(cx, top+(bottom-top)/2)
	s.LineTo(cx+leafW, top+(bottom-top)/2)
	s.Stroke()

	// handles appear once the leaves are wide enough to carry them
	if leafW > size*0.08 {
		handleR := size * 0.018
		handleY := top + (bottom-top)*0.55
		s.Arc(cx-handleR*3, handleY, handleR, 0, 2*math.Pi)
		s.Fill()
		s.Arc(cx+handleR*3, handleY, handleR, 0, 2*math.Pi)
		s.Fill()
	}
	s.Restore()
}

// argbToRGBA converts cairo's native-endian premultiplied ARGB32 buffer into
// straight RGBA8. Cairo on little-endian hardware lays the channels out as
// B, G, R, A per pixel.
func argbToRGBA(data []byte, width, height int) []byte {
	out := make([]byte, width*height*4)
	if height <= 0 || len(data) < width*4 {
		return out
	}
	stride := len(data) / height

	for y := 0; y < height; y++ {
		row := data[y*stride:]
		for x := 0; x < width; x++ {
			b := row[x*4+0]
			g := row[x*4+1]
			r := row[x*4+2]
			a := row[x*4+3]
			if a != 0 && a != 255 {
				// un-premultiply
				r = uint8(int(r) * 255 / int(a))
				g = uint8(int(g) * 255 / int(a))
				b = uint8(int(b) * 255 / int(a))
			}
			i := (y*width + x) * 4
			out[i+0] = r
			out[i+1] = g
			out[i+2] = b
			out[i+3] = a
		}
	}
	return out
}
