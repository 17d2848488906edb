package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is the fixed perspective camera looking down -Z at the portal plane.
// Matrices are cached and recomputed only when a parameter changes.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	FOV         float64 // vertical field of view in radians
	AspectRatio float64
	NearPlane   float64
	FarPlane    float64

	viewMatrix       mgl64.Mat4
	projectionMatrix mgl64.Mat4
	viewProjMatrix   mgl64.Mat4
	dirty            bool
}

func NewCamera(fov, aspectRatio, nearPlane, farPlane float64) *Camera {
	return &Camera{
		Position:    mgl64.Vec3{0, 0, 10},
		Target:      mgl64.Vec3{0, 0, 0},
		Up:          mgl64.Vec3{0, 1, 0},
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
		dirty:       true,
	}
}

// UpdateAspectRatio recomputes the aspect from a pixel viewport. A zero or
// negative height leaves the previous aspect in place.
func (c *Camera) UpdateAspectRatio(width, height float64) {
	if height > 0 {
		c.AspectRatio = width / height
		c.dirty = true
	}
}

func (c *Camera) SetPosition(pos mgl64.Vec3) {
	c.Position = pos
	c.dirty = true
}

func (c *Camera) LookAt(target, up mgl64.Vec3) {
	c.Target = target
	c.Up = up
	c.dirty = true
}

func (c *Camera) GetViewMatrix() mgl64.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.viewMatrix
}

func (c *Camera) GetProjectionMatrix() mgl64.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.projectionMatrix
}

func (c *Camera) GetViewProjectionMatrix() mgl64.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.viewProjMatrix
}

func (c *Camera) updateMatrices() {
	c.viewMatrix = mgl64.LookAtV(c.Position, c.Target, c.Up)
	c.projectionMatrix = mgl64.Perspective(c.FOV, c.AspectRatio, c.NearPlane, c.FarPlane)
	c.viewProjMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.dirty = false
}

// FrustumSlice is the world-space extent of the view frustum cut at a depth
// plane parallel to the screen.
type FrustumSlice struct {
	Width  float64
	Height float64
	Depth  float64
}

// HalfWidth is the visible world-space extent either side of center.
func (f FrustumSlice) HalfWidth() float64 { return f.Width / 2 }

// FrustumSliceAt cuts the view frustum at the given world Z plane and reports
// the visible rectangle there. Slices are never cached here; recompute after
// any camera or viewport change.
func (c *Camera) FrustumSliceAt(depth float64) FrustumSlice {
	dist := math.Abs(c.Position.Z() - depth)
	height := 2 * math.Tan(c.FOV/2) * dist
	return FrustumSlice{
		Width:  height * c.AspectRatio,
		Height: height,
		Depth:  depth,
	}
}

// WorldToScreenUV projects a world point through the camera and maps the
// resulting NDC onto screen UV, with v growing downward to match CSS
// coordinates.
func (c *Camera) WorldToScreenUV(world mgl64.Vec3) mgl64.Vec2 {
	clip := c.GetViewProjectionMatrix().Mul4x1(world.Vec4(1))
	w := clip.W()
	if math.Abs(w) < epsDenominator {
		w = epsDenominator
	}
	ndcX := clip.X() / w
	ndcY := clip.Y() / w
	return mgl64.Vec2{
		(ndcX + 1) / 2,
		(1 - ndcY) / 2,
	}
}
