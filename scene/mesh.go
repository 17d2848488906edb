package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"portal-site/core"
)

// DrawMode controls the OpenGL primitive type used when rendering a mesh.
type DrawMode int

const (
	DrawTriangles DrawMode = iota // gl.TRIANGLES (default)
	DrawLines                     // gl.LINES: pairs of indices form line segments
	DrawPoints                    // gl.POINTS
)

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name       string
	Vertices   []core.Vertex
	Indices    []uint32
	IndexCount uint32
	DrawMode   DrawMode // defaults to DrawTriangles

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	// Do not access directly; use the renderer's API.
	GPUData interface{}
}

func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]core.Vertex, 0),
		Indices:  make([]uint32, 0),
	}
}

func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	return &Mesh{
		Name:       name,
		Vertices:   vertices,
		Indices:    indices,
		IndexCount: uint32(len(indices)),
	}
}

// Primitive generation helpers

// CreateQuad builds a unit quad in the XY plane, centered on the origin.
// UVs run 0..1 left-to-right and top-to-bottom, so row-major texture pixels
// land upright; v grows downward like screen UV everywhere else here.
func CreateQuad(name string) *Mesh {
	vertices := []core.Vertex{
		{Position: mgl32.Vec3{-0.5, -0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 1}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{0.5, -0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 1}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{0.5, 0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{-0.5, 0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 0}, Color: core.ColorWhite},
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}
	return CreateMeshFromData(name, vertices, indices)
}

// CreateEllipseDisc builds a unit-radius disc in the XY plane as a triangle
// fan. Scaling the node non-uniformly turns it into the portal ellipse. UVs
// map the disc into [0,1]² so the fragment shader can carve the aperture.
func CreateEllipseDisc(name string, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}

	vertices := make([]core.Vertex, 0, segments+2)
	vertices = append(vertices, core.Vertex{
		Position: mgl32.Vec3{0, 0, 0},
		Normal:   mgl32.Vec3{0, 0, 1},
		UV:       mgl32.Vec2{0.5, 0.5},
		Color:    core.ColorWhite,
	})
	for i := 0; i <= segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		x := float32(math.Cos(angle))
		y := float32(math.Sin(angle))
		vertices = append(vertices, core.Vertex{
			Position: mgl32.Vec3{x, y, 0},
			Normal:   mgl32.Vec3{0, 0, 1},
			UV:       mgl32.Vec2{x/2 + 0.5, 0.5 - y/2},
			Color:    core.ColorWhite,
		})
	}

	indices := make([]uint32, 0, segments*3)
	for i := 1; i <= segments; i++ {
		indices = append(indices, 0, uint32(i), uint32(i+1))
	}
	return CreateMeshFromData(name, vertices, indices)
}
