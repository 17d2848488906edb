package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"portal-site/core"
	"portal-site/scene"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	HasIndices bool
}

// Renderer is the OpenGL backend. It owns two programs: the sprite shader
// for labels, doors-less quads and decor meshes, and the portal shader for
// the painted ellipse discs. The background and particle passes hang off it
// and are created on demand.
type Renderer struct {
	program uint32

	// Sprite uniforms
	mvpLoc        int32
	tintLoc       int32
	opacityLoc    int32
	spriteTexLoc  int32
	hasTextureLoc int32

	// Portal program and uniforms
	portalProg       uint32
	portalMVPLoc     int32
	portalDoorTexLoc int32
	portalHasDoorLoc int32
	portalSpreadLoc  int32
	portalPulseLoc   int32
	portalTimeLoc    int32
	portalBrushLoc   int32
	portalRingLoc    int32
	portalOpacityLoc int32

	// Background pass (nil until EnableBackground)
	background *BackgroundPass

	// Particle renderer (nil until first DrawParticles call)
	particleRenderer *ParticleRenderer

	viewportW int32
	viewportH int32

	gpuMeshes map[*scene.Mesh]*GPUMesh
}

// ── Shaders ───────────────────────────────────────────────────────────────────

// sprite vertex shader: plain MVP transform, UV and vertex color through.
const spriteVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec4 inColor;

uniform mat4 mvp;

out vec2 fragUV;
out vec4 fragColor;

void main() {
    gl_Position = mvp * vec4(inPosition, 1.0);
    fragUV      = inUV;
    fragColor   = inColor;
}
` + "\x00"

// sprite fragment shader: tint * vertex color (* texture), opacity applied
// last. Fully transparent fragments are discarded so stacked layers never
// write useless depth.
const spriteFragSrc = `
#version 410 core
in vec2 fragUV;
in vec4 fragColor;

out vec4 outColor;

uniform vec4      tint;
uniform float     opacity;
uniform sampler2D spriteTex;
uniform bool      hasTexture;

void main() {
    vec4 col = fragColor * tint;
    if (hasTexture) {
        col *= texture(spriteTex, fragUV);
    }
    col.a *= opacity;
    if (col.a <= 0.003) discard;
    outColor = col;
}
` + "\x00"

// portal vertex shader: same transform as sprites; the disc mesh carries its
// UVs with (0.5, 0.5) at the ellipse center.
const portalVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec4 inColor;

uniform mat4 mvp;

out vec2 fragUV;

void main() {
    gl_Position = mvp * vec4(inPosition, 1.0);
    fragUV      = inUV;
}
` + "\x00"

// portal fragment shader: painted door texture inside a hand-drawn rim.
// r runs 0 at the disc center to 1 at the rim; the rim band wobbles with a
// pair of angular sine waves drifting at brushSpeed, and the click pulse is
// a bright ripple running outward as it decays.
const portalFragSrc = `
#version 410 core
in vec2 fragUV;

out vec4 outColor;

uniform sampler2D doorTex;
uniform bool      hasDoor;
uniform float     spread;
uniform float     clickPulse;
uniform float     time;
uniform float     brushSpeed;
uniform vec4      ringColor;
uniform float     opacity;

void main() {
    vec2 p = fragUV * 2.0 - 1.0;
    float r = length(p);
    if (r > 1.0) discard;

    vec4 col = vec4(0.0);
    if (hasDoor) {
        col = texture(doorTex, fragUV);
    }

    float ang = atan(p.y, p.x);
    float wob = 0.035 * sin(ang * 7.0 + time * brushSpeed * 6.0)
              + 0.02  * sin(ang * 13.0 - time * brushSpeed * 9.0);
    float band = smoothstep(0.78 + wob, 0.9 + wob, r) * (1.0 - smoothstep(0.96, 1.0, r));
    // the rim thickens slightly while the doors are moving
    band *= 0.85 + 0.3 * spread * (1.0 - spread);

    col = mix(col, vec4(ringColor.rgb, 1.0), band * ringColor.a);
    col.a = max(col.a, band * ringColor.a);

    float ripple = exp(-pow((r - (1.0 - clickPulse)) * 7.0, 2.0)) * clickPulse;
    col.rgb += ringColor.rgb * ripple;
    col.a = max(col.a, ripple * 0.8);

    col.a *= opacity;
    if (col.a <= 0.003) discard;
    outColor = col;
}
` + "\x00"

// ── NewRenderer ───────────────────────────────────────────────────────────────

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	prog, err := newProgram(spriteVertSrc, spriteFragSrc)
	if err != nil {
		return nil, fmt.Errorf("sprite shader compile: %w", err)
	}

	portalProg, err := newProgram(portalVertSrc, portalFragSrc)
	if err != nil {
		return nil, fmt.Errorf("portal shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	r := &Renderer{
		program:    prog,
		portalProg: portalProg,

		mvpLoc:        gl.GetUniformLocation(prog, gl.Str("mvp\x00")),
		tintLoc:       gl.GetUniformLocation(prog, gl.Str("tint\x00")),
		opacityLoc:    gl.GetUniformLocation(prog, gl.Str("opacity\x00")),
		spriteTexLoc:  gl.GetUniformLocation(prog, gl.Str("spriteTex\x00")),
		hasTextureLoc: gl.GetUniformLocation(prog, gl.Str("hasTexture\x00")),

		portalMVPLoc:     gl.GetUniformLocation(portalProg, gl.Str("mvp\x00")),
		portalDoorTexLoc: gl.GetUniformLocation(portalProg, gl.Str("doorTex\x00")),
		portalHasDoorLoc: gl.GetUniformLocation(portalProg, gl.Str("hasDoor\x00")),
		portalSpreadLoc:  gl.GetUniformLocation(portalProg, gl.Str("spread\x00")),
		portalPulseLoc:   gl.GetUniformLocation(portalProg, gl.Str("clickPulse\x00")),
		portalTimeLoc:    gl.GetUniformLocation(portalProg, gl.Str("time\x00")),
		portalBrushLoc:   gl.GetUniformLocation(portalProg, gl.Str("brushSpeed\x00")),
		portalRingLoc:    gl.GetUniformLocation(portalProg, gl.Str("ringColor\x00")),
		portalOpacityLoc: gl.GetUniformLocation(portalProg, gl.Str("opacity\x00")),

		gpuMeshes: make(map[*scene.Mesh]*GPUMesh),
	}

	// Bind samplers: sprite albedo on unit 0, door texture on unit 0 of the
	// portal program.
	gl.UseProgram(prog)
	gl.Uniform1i(r.spriteTexLoc, 0)
	gl.UseProgram(portalProg)
	gl.Uniform1i(r.portalDoorTexLoc, 0)

	return r, nil
}

// ── Viewport ──────────────────────────────────────────────────────────────────

// SetViewport resizes the OpenGL viewport.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear wipes the framebuffer to the given color.
func (r *Renderer) Clear(c core.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ── Background ────────────────────────────────────────────────────────────────

// EnableBackground compiles the swirl shader and uploads the fullscreen quad.
// Call once after NewRenderer, before the first frame.
func (r *Renderer) EnableBackground() error {
	if r.background != nil {
		r.background.Destroy()
	}
	bp, err := NewBackgroundPass()
	if err != nil {
		return err
	}
	r.background = bp
	return nil
}

// HasBackground reports whether the background pass has been created.
func (r *Renderer) HasBackground() bool { return r.background != nil }

// DrawBackground paints the swirl layer across the whole viewport. Draw it
// first each frame; it writes no depth. No-op when not enabled.
func (r *Renderer) DrawBackground(b *scene.Background) {
	if r.background == nil || b == nil {
		return
	}
	aspect := float32(1)
	if r.viewportH > 0 {
		aspect = float32(r.viewportW) / float32(r.viewportH)
	}
	r.background.Draw(b, aspect)
}

// ── Portals ───────────────────────────────────────────────────────────────────

// DrawPortal renders one portal disc with its painted door texture and rim.
// timeSec drives the brush drift; opacity is the portal's overall alpha.
func (r *Renderer) DrawPortal(mesh *scene.Mesh, mvp mgl32.Mat4, u scene.PortalUniforms, door *scene.Texture, timeSec, opacity float64) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return
	}

	gl.UseProgram(r.portalProg)
	gl.UniformMatrix4fv(r.portalMVPLoc, 1, false, &mvp[0])
	gl.Uniform1f(r.portalSpreadLoc, float32(u.Spread))
	gl.Uniform1f(r.portalPulseLoc, float32(u.ClickPulse))
	gl.Uniform1f(r.portalTimeLoc, float32(timeSec))
	gl.Uniform1f(r.portalBrushLoc, float32(u.BrushSpeed))
	ring := u.Color.Vec4()
	gl.Uniform4f(r.portalRingLoc, ring.X(), ring.Y(), ring.Z(), ring.W())
	gl.Uniform1f(r.portalOpacityLoc, float32(opacity))

	if door != nil && door.GLID != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, door.GLID)
		gl.Uniform1i(r.portalHasDoorLoc, 1)
	} else {
		gl.Uniform1i(r.portalHasDoorLoc, 0)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)

	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(mesh.Vertices)))
	}
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

// ── Sprites ───────────────────────────────────────────────────────────────────

// DrawSprite renders a mesh with the unlit sprite shader: label quads, decor
// geometry, HUD panels. additive switches the blend mode for glow layers.
func (r *Renderer) DrawSprite(mesh *scene.Mesh, mvp mgl32.Mat4, tint core.Color, tex *scene.Texture, opacity float32, additive bool) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, &mvp[0])
	tv := tint.Vec4()
	gl.Uniform4f(r.tintLoc, tv.X(), tv.Y(), tv.Z(), tv.W())
	gl.Uniform1f(r.opacityLoc, opacity)

	if tex != nil && tex.GLID != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex.GLID)
		gl.Uniform1i(r.hasTextureLoc, 1)
	} else {
		gl.Uniform1i(r.hasTextureLoc, 0)
	}

	gl.Enable(gl.BLEND)
	if additive {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	gl.DepthMask(false)

	primitive := uint32(gl.TRIANGLES)
	switch mesh.DrawMode {
	case scene.DrawLines:
		primitive = gl.LINES
	case scene.DrawPoints:
		primitive = gl.POINTS
	}

	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(primitive, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(primitive, 0, int32(len(mesh.Vertices)))
	}
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

// ── Particles ─────────────────────────────────────────────────────────────────

// DrawParticles renders emitter.Particles as camera-facing billboards.
// Lazily creates the particle renderer on first call.
func (r *Renderer) DrawParticles(emitter *scene.ParticleEmitter, view, proj mgl32.Mat4) {
	if emitter == nil || len(emitter.Particles) == 0 {
		return
	}
	if r.particleRenderer == nil {
		pr, err := newParticleRenderer()
		if err != nil {
			fmt.Printf("particle renderer init: %v\n", err)
			return
		}
		r.particleRenderer = pr
	}
	r.particleRenderer.draw(emitter, view, proj)
}

// ── Resource management ───────────────────────────────────────────────────────

// ReleaseMesh frees GPU buffers for the given mesh.
func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		if gpu.HasIndices {
			gl.DeleteBuffers(1, &gpu.EBO)
		}
		delete(r.gpuMeshes, mesh)
		mesh.GPUData = nil
	}
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	if r.background != nil {
		r.background.Destroy()
	}
	if r.particleRenderer != nil {
		r.particleRenderer.destroy()
	}
	if r.portalProg != 0 {
		gl.DeleteProgram(r.portalProg)
	}
	gl.DeleteProgram(r.program)
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// ensureUploaded uploads vertex/index data if not already done.
func (r *Renderer) ensureUploaded(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))

	gpu := &GPUMesh{
		IndexCount: int32(len(mesh.Indices)),
		HasIndices: len(mesh.Indices) > 0,
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))
	colorOff := int(unsafe.Offsetof(v.Color))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 4, gl.FLOAT, false, stride, gl.PtrOffset(colorOff))

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
			len(mesh.Indices)*4,
			gl.Ptr(mesh.Indices),
			gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
