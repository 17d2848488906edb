package site

import (
	"fmt"
	"math"
	"strings"

	"portal-site/core"
	"portal-site/renderer"
	"portal-site/scene"
)

// HUD refresh and placement. The readout rebuilds its raster a few times a
// second, not per frame; rasterizing text every tick would dwarf the cost of
// everything it measures.
const (
	hudRebuildInterval = 0.25
	hudMargin          = 12.0
	hudBoxWidth        = 460.0
	hudBoxHeight       = 320.0
	hudOpacity         = 0.92
)

// HUD is the F3 diagnostics overlay: frame rate, layout category, scroll
// progress, portal phases and draw counts, rendered as a screen-space label
// outside the scene graph.
type HUD struct {
	s     *SceneState
	label *scene.Label

	visible      bool
	fps          float64
	sinceRebuild float64
}

func NewHUD(s *SceneState) *HUD {
	l := scene.NewLabel("hud", nil, core.ColorWhite)
	l.BaseSize = 13
	return &HUD{s: s, label: l}
}

// Toggle flips visibility and forces a fresh readout on the way in.
func (h *HUD) Toggle() {
	h.visible = !h.visible
	if h.visible {
		h.sinceRebuild = hudRebuildInterval
	}
}

func (h *HUD) Visible() bool { return h.visible }

// Update smooths the frame rate every tick and rebuilds the readout when the
// interval expires. The frame rate keeps integrating while hidden so the
// first visible readout is already settled.
func (h *HUD) Update(dt float64) {
	if dt > 0 {
		alpha := math.Min(dt*4, 1)
		h.fps += (1/dt - h.fps) * alpha
	}
	if !h.visible {
		return
	}
	h.sinceRebuild += dt
	if h.sinceRebuild < hudRebuildInterval {
		return
	}
	h.sinceRebuild = 0
	h.rebuild()
}

func (h *HUD) rebuild() {
	s := h.s
	objects, vertices, triangles := s.engine.Stats()

	var lines []string
	add := func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}
	add("fps %.0f", h.fps)
	add("viewport %dx%d css, %dx%d px", s.window.Width, s.window.Height, s.fbW, s.fbH)
	add("layout %s  portal %.0fx%.0f  rescaled %v", s.Columns.Category, s.Columns.PortalWidth, s.Columns.PortalHeight, s.Columns.Rescaled)
	add("scroll %.3f", s.Scroll.Progress())
	add("left %s (%.2f)  right %s (%.2f)", s.LeftPortal.Phase(), s.LeftPortal.Uniforms.Spread, s.RightPortal.Phase(), s.RightPortal.Uniforms.Spread)
	add("draw %d objects, %d verts, %d tris", objects, vertices, triangles)
	add("particles %d", s.Pulse.Count())

	h.label.SetText(strings.Join(lines, "\n"))
	s.fitLabel(h.label, hudBoxWidth, hudBoxHeight)
}

// Draw paints the readout into the top-left corner. Call after Render, before
// Present.
func (h *HUD) Draw() {
	tex := h.label.Texture
	if !h.visible || tex == nil || tex.Width <= 1 || tex.Height <= 1 {
		return
	}
	r := core.Rect{
		X:      hudMargin,
		Y:      hudMargin,
		Width:  float64(tex.Width) * h.label.Block.Scale,
		Height: float64(tex.Height) * h.label.Block.Scale,
	}
	h.s.engine.DrawScreenTexture(tex, r, core.ColorWhite, hudOpacity)
}

func (h *HUD) Teardown(engine *renderer.RenderEngine) {
	if h.label != nil && h.label.Texture != nil {
		engine.DeleteTexture(h.label.Texture)
	}
}
