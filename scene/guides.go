package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"portal-site/core"
)

// GuideLine is one vertical rule in the layout guide overlay.
type GuideLine struct {
	X     float64
	Color core.Color
}

// CreateGuideLines builds a GL_LINES mesh of vertical rules spanning top to
// bottom at z=0. The debug overlay uses it to draw the column boundaries on
// the portal plane; the caller rebuilds the mesh when the layout changes.
func CreateGuideLines(name string, guides []GuideLine, top, bottom float64) *Mesh {
	vertices := make([]core.Vertex, 0, len(guides)*2)
	indices := make([]uint32, 0, len(guides)*2)

	for _, g := range guides {
		base := uint32(len(vertices))
		vertices = append(vertices,
			core.Vertex{Position: mgl32.Vec3{float32(g.X), float32(top), 0}, Normal: mgl32.Vec3{0, 0, 1}, Color: g.Color},
			core.Vertex{Position: mgl32.Vec3{float32(g.X), float32(bottom), 0}, Normal: mgl32.Vec3{0, 0, 1}, Color: g.Color},
		)
		indices = append(indices, base, base+1)
	}

	m := CreateMeshFromData(name, vertices, indices)
	m.DrawMode = DrawLines
	return m
}
