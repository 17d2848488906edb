package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"portal-site/core"
	"portal-site/internal/opengl"
	"portal-site/scene"
)

// RenderEngine is the high-level renderer driving the OpenGL backend. It
// clears, paints the background swirl, walks the scene graph with the unlit
// sprite pass, then paints registered portal discs on top with their own
// shader. Particles and screen-space HUD sprites are drawn on request
// between Render and Present.
type RenderEngine struct {
	gl     *opengl.Renderer
	window *core.Window
	Scene  *scene.Scene

	BackgroundEnabled bool

	background *scene.Background
	portals    []*scene.Portal
	portalSet  map[*scene.Node]*scene.Portal

	// clock feeds the portal brush drift; advanced by the app via SetTime.
	clock float64

	// Corner-origin unit quad for screen-space draws, built lazily.
	hudQuad *scene.Mesh

	// Per-frame stats (populated during Render)
	lastObjects   int
	lastVertices  int
	lastTriangles int
}

func NewRenderEngine(window *core.Window) (*RenderEngine, error) {
	glRenderer, err := opengl.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}

	glRenderer.SetViewport(window.Width, window.Height)

	fmt.Println("Render engine initialized (OpenGL)")
	return &RenderEngine{
		gl:        glRenderer,
		window:    window,
		portalSet: make(map[*scene.Node]*scene.Portal),
	}, nil
}

// EnableBackground compiles the swirl pass and binds it to the given state.
// Call once after NewRenderEngine, before the first Render.
func (re *RenderEngine) EnableBackground(b *scene.Background) error {
	if err := re.gl.EnableBackground(); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	re.background = b
	re.BackgroundEnabled = true
	return nil
}

// RegisterPortal routes a portal's node through the portal shader instead of
// the generic sprite pass. Registration order is paint order.
func (re *RenderEngine) RegisterPortal(p *scene.Portal) {
	if p == nil || p.Node == nil {
		return
	}
	if _, ok := re.portalSet[p.Node]; ok {
		return
	}
	re.portals = append(re.portals, p)
	re.portalSet[p.Node] = p
}

func (re *RenderEngine) SetScene(s *scene.Scene) {
	re.Scene = s
}

// SetTime advances the clock sampled by time-driven shaders (brush drift).
func (re *RenderEngine) SetTime(t float64) {
	re.clock = t
}

// Render draws the frame: clear, background, scene graph, portal discs.
// Everything is painted back to front; depth writes stay off throughout, so
// call order is stacking order.
func (re *RenderEngine) Render() error {
	if re.Scene == nil || re.Scene.Camera == nil {
		return fmt.Errorf("no scene or camera")
	}

	re.gl.Clear(re.Scene.ClearColor)

	if re.BackgroundEnabled && re.background != nil {
		re.gl.DrawBackground(re.background)
	}

	view := mat4To32(re.Scene.Camera.GetViewMatrix())
	proj := mat4To32(re.Scene.Camera.GetProjectionMatrix())
	vp := proj.Mul4(view)

	objects, vertices, triangles := 0, 0, 0

	for _, node := range re.Scene.GetVisibleNodes() {
		if _, isPortal := re.portalSet[node]; isPortal {
			continue
		}

		model := mat4To32(node.GetWorldMatrix())
		mvp := vp.Mul4(model)

		mat := node.Material
		if mat == nil {
			mat = scene.DefaultMaterial()
		}
		re.gl.DrawSprite(node.Mesh, mvp, mat.Albedo, mat.AlbedoTexture, mat.Opacity, mat.Additive)

		objects++
		vertices += len(node.Mesh.Vertices)
		triangles += len(node.Mesh.Indices) / 3
	}

	// Portal discs sit at the near plane of the composition; paint them over
	// everything the graph produced.
	for _, p := range re.portals {
		if !nodeWorldVisible(p.Node) {
			continue
		}
		model := mat4To32(p.Node.GetWorldMatrix())
		re.gl.DrawPortal(p.Node.Mesh, vp.Mul4(model), p.Uniforms, p.Door.Texture(), re.clock, 1)

		objects++
		vertices += len(p.Node.Mesh.Vertices)
		triangles += len(p.Node.Mesh.Indices) / 3
	}

	re.lastObjects = objects
	re.lastVertices = vertices
	re.lastTriangles = triangles

	return nil
}

// DrawParticles renders an emitter's live particles as camera-facing
// billboards. Call between Render and Present.
func (re *RenderEngine) DrawParticles(emitter *scene.ParticleEmitter) {
	if re.Scene == nil || re.Scene.Camera == nil || emitter == nil {
		return
	}
	view := mat4To32(re.Scene.Camera.GetViewMatrix())
	proj := mat4To32(re.Scene.Camera.GetProjectionMatrix())
	re.gl.DrawParticles(emitter, view, proj)
}

// DrawScreenTexture paints a texture into a CSS-pixel rectangle of the
// window, origin top-left. Used for the HUD overlay.
func (re *RenderEngine) DrawScreenTexture(tex *scene.Texture, r core.Rect, tint core.Color, opacity float64) {
	if re.hudQuad == nil {
		re.hudQuad = newScreenQuad()
	}

	w := float32(re.window.Width)
	h := float32(re.window.Height)
	if w <= 0 || h <= 0 {
		return
	}
	proj := mgl32.Ortho(0, w, h, 0, -1, 1)
	model := mgl32.Translate3D(float32(r.X), float32(r.Y), 0).
		Mul4(mgl32.Scale3D(float32(r.Width), float32(r.Height), 1))

	re.gl.DrawSprite(re.hudQuad, proj.Mul4(model), tint, tex, float32(opacity), false)
}

// Present swaps buffers. Call after Render and any overlay draws.
func (re *RenderEngine) Present() {
	re.window.SwapBuffers()
}

func (re *RenderEngine) Resize(width, height uint32) {
	re.gl.SetViewport(int(width), int(height))
	if re.Scene != nil && re.Scene.Camera != nil {
		re.Scene.Camera.UpdateAspectRatio(float64(width), float64(height))
	}
}

// Stats returns draw counts from the last Render call.
func (re *RenderEngine) Stats() (objects, vertices, triangles int) {
	return re.lastObjects, re.lastVertices, re.lastTriangles
}

// UploadTexture pushes a texture to the GPU (main goroutine only).
func (re *RenderEngine) UploadTexture(tex *scene.Texture) error {
	return opengl.UploadTexture(tex)
}

// DeleteTexture frees a texture's GPU copy.
func (re *RenderEngine) DeleteTexture(tex *scene.Texture) {
	opengl.DeleteTexture(tex)
}

// ReleaseMesh frees a mesh's GPU buffers.
func (re *RenderEngine) ReleaseMesh(mesh *scene.Mesh) {
	re.gl.ReleaseMesh(mesh)
}

// Destroy releases all GPU resources.
func (re *RenderEngine) Destroy() {
	re.gl.Destroy()
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// mat4To32 narrows a float64 matrix for GPU upload.
func mat4To32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := 0; i < 16; i++ {
		out[i] = float32(m[i])
	}
	return out
}

// nodeWorldVisible walks the parent chain; a hidden ancestor hides the node.
func nodeWorldVisible(n *scene.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if !cur.Visible {
			return false
		}
	}
	return true
}

// newScreenQuad builds a unit quad with its origin at the top-left corner,
// UVs matching screen orientation under a y-down orthographic projection.
func newScreenQuad() *scene.Mesh {
	vertices := []core.Vertex{
		{Position: mgl32.Vec3{0, 0, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{1, 0, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{1, 1, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 1}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{0, 1, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 1}, Color: core.ColorWhite},
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}
	return scene.CreateMeshFromData("hud_quad", vertices, indices)
}
