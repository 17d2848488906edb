package core

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{0, 0, 0, 0}
)

// Scaled returns the color with its alpha multiplied by a, clamped to [0, 1].
func (c Color) Scaled(a float32) Color {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A *= a
	return c
}

// Vec4 returns the color as a vector for uniform upload.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// NRGBA converts to 8-bit straight-alpha color for image drawing.
func (c Color) NRGBA() color.NRGBA {
	clamp := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

// Vertex is the GPU vertex layout shared by every mesh.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
	Color    Color
}

type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// Transform is a position/rotation/scale triple composed into a model matrix.
// Rotation is around Z only; the scene never tilts content toward the camera.
type Transform struct {
	Position  mgl64.Vec3
	RotationZ float64
	Scale     mgl64.Vec3
}

func NewTransform() Transform {
	return Transform{
		Scale: mgl64.Vec3{1, 1, 1},
	}
}

func (t Transform) Matrix() mgl64.Mat4 {
	m := mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	if t.RotationZ != 0 {
		m = m.Mul4(mgl64.HomogRotate3DZ(t.RotationZ))
	}
	return m.Mul4(mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// Rect is an axis-aligned box in CSS pixels, origin top-left.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}
