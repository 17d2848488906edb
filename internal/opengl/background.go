package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"portal-site/scene"
)

// BackgroundPass draws the full-screen paint swirl behind the scene. It owns
// a single NDC quad and a dedicated shader; state comes from scene.Background
// every frame, so the pass itself is stateless between draws.
type BackgroundPass struct {
	vao     uint32
	vbo     uint32
	program uint32

	leftFocalLoc  int32
	rightFocalLoc int32
	holeRadiiLoc  int32
	holeScaleLoc  int32
	fadeLoc       int32
	timeLoc       int32
	aspectLoc     int32
	darkLoc       int32
	lightLoc      int32
}

// Two triangles covering the whole viewport in NDC.
var backgroundQuad = []float32{
	-1, -1,
	1, -1,
	1, 1,
	1, 1,
	-1, 1,
	-1, -1,
}

// The vertex stage flips Y so fragUV matches the screen-UV convention used
// by the portal math: v = 0 at the top edge.
const backgroundVertSrc = `
#version 410 core
layout(location = 0) in vec2 inPosition;

out vec2 fragUV;

void main() {
    fragUV = vec2(inPosition.x * 0.5 + 0.5, 0.5 - inPosition.y * 0.5);
    gl_Position = vec4(inPosition, 0.0, 1.0);
}
` + "\x00"

// Two counter-rotating paint swirls, one anchored under each portal, with
// elliptical holes that open as the timeline hands the portals their scale.
// fade is the resting veil that burns off over the first scroll.
const backgroundFragSrc = `
#version 410 core
in vec2 fragUV;

out vec4 outColor;

uniform vec2  leftFocal;
uniform vec2  rightFocal;
uniform vec2  holeRadii;
uniform float holeScale;
uniform float fade;
uniform float time;
uniform float aspect;
uniform vec3  colorDark;
uniform vec3  colorLight;

void main() {
    vec2 uv = fragUV;

    vec2 dl = uv - leftFocal;
    vec2 dr = uv - rightFocal;
    dl.x *= aspect;
    dr.x *= aspect;
    float distL = length(dl);
    float distR = length(dr);
    float angL = atan(dl.y, dl.x);
    float angR = atan(dr.y, dr.x);

    float bandL = sin(distL * 22.0 - time * 0.7 + angL * 3.0);
    float bandR = sin(distR * 22.0 + time * 0.7 - angR * 3.0);
    float pullL = exp(-distL * 2.5);
    float pullR = exp(-distR * 2.5);

    float swirl = (bandL * pullL + bandR * pullR) * 0.5 + 0.5;
    float pull  = clamp(pullL + pullR, 0.0, 1.0);

    vec3 col = mix(colorDark, colorLight, clamp(swirl, 0.0, 1.0) * pull);

    vec2 radii = max(holeRadii * max(holeScale, 0.0), vec2(1e-6));
    vec2 hl = (uv - leftFocal) / radii;
    vec2 hr = (uv - rightFocal) / radii;
    float hole = min(dot(hl, hl), dot(hr, hr));
    float inHole = 1.0 - smoothstep(0.8, 1.0, hole);
    col = mix(col, colorDark * 0.12, inHole);

    col = mix(col, colorDark * 0.6, clamp(fade, 0.0, 1.0) * 0.35);

    outColor = vec4(col, 1.0);
}
` + "\x00"

// NewBackgroundPass compiles the swirl shader and uploads the quad.
func NewBackgroundPass() (*BackgroundPass, error) {
	prog, err := newProgram(backgroundVertSrc, backgroundFragSrc)
	if err != nil {
		return nil, fmt.Errorf("background shader compile: %w", err)
	}

	b := &BackgroundPass{
		program:       prog,
		leftFocalLoc:  gl.GetUniformLocation(prog, gl.Str("leftFocal\x00")),
		rightFocalLoc: gl.GetUniformLocation(prog, gl.Str("rightFocal\x00")),
		holeRadiiLoc:  gl.GetUniformLocation(prog, gl.Str("holeRadii\x00")),
		holeScaleLoc:  gl.GetUniformLocation(prog, gl.Str("holeScale\x00")),
		fadeLoc:       gl.GetUniformLocation(prog, gl.Str("fade\x00")),
		timeLoc:       gl.GetUniformLocation(prog, gl.Str("time\x00")),
		aspectLoc:     gl.GetUniformLocation(prog, gl.Str("aspect\x00")),
		darkLoc:       gl.GetUniformLocation(prog, gl.Str("colorDark\x00")),
		lightLoc:      gl.GetUniformLocation(prog, gl.Str("colorLight\x00")),
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(backgroundQuad)*4, gl.Ptr(backgroundQuad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	return b, nil
}

// Draw paints the swirl layer. Depth writes stay off so everything else in
// the frame lands on top of it.
func (b *BackgroundPass) Draw(state *scene.Background, aspect float32) {
	gl.DepthMask(false)

	gl.UseProgram(b.program)
	gl.Uniform2f(b.leftFocalLoc, float32(state.LeftFocal.X()), float32(state.LeftFocal.Y()))
	gl.Uniform2f(b.rightFocalLoc, float32(state.RightFocal.X()), float32(state.RightFocal.Y()))
	gl.Uniform2f(b.holeRadiiLoc, float32(state.HoleRadii.X()), float32(state.HoleRadii.Y()))
	gl.Uniform1f(b.holeScaleLoc, float32(state.HoleScale))
	gl.Uniform1f(b.fadeLoc, float32(state.Fade))
	gl.Uniform1f(b.timeLoc, float32(state.Time))
	gl.Uniform1f(b.aspectLoc, aspect)
	dark := state.ColorDark.Vec4()
	light := state.ColorLight.Vec4()
	gl.Uniform3f(b.darkLoc, dark.X(), dark.Y(), dark.Z())
	gl.Uniform3f(b.lightLoc, light.X(), light.Y(), light.Z())

	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
}

// Destroy releases GPU resources.
func (b *BackgroundPass) Destroy() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteProgram(b.program)
}
