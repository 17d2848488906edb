package site

import (
	"image"
	"math"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"portal-site/anim"
	"portal-site/assets"
	"portal-site/core"
	"portal-site/layout"
	"portal-site/scene"
	"portal-site/textfit"
)

// keyScrollPxPerSec is the arrow-key scroll speed.
const keyScrollPxPerSec = 900.0

// snapshotPath is where the F5 debug dump lands.
const snapshotPath = "scene-snapshot.json"

// Label fit boxes in fractions of the viewport; the side paragraphs use the
// computed column rectangles instead.
const (
	heroTitleBoxW = 0.6
	heroTitleBoxH = 0.3
	heroSubBoxW   = 0.5
	heroSubBoxH   = 0.12
	navBoxW       = 0.15
)

// Update runs one frame tick. The call order inside is the data-dependency
// order: viewport before slices, slices before portal transforms, portal UV
// centers before the background pulls them, boundaries before text. Breaking
// this order misaligns layers by a FOV-dependent parallax.
func (s *SceneState) Update(dt float64) {
	s.clock += dt
	s.engine.SetTime(s.clock)

	// Finished async loads splice in before anything reads them.
	s.drainAssets()

	s.Input.Update()
	s.handleInput(dt)

	s.syncViewport()

	frame := s.Timeline.Advance(s.Scroll.Progress())

	w := float64(s.window.Width)
	h := float64(s.window.Height)

	cols, relaid := s.Layout.Layout(w, h, s.Config.FontScale)
	s.Columns = cols

	portalSlice := s.Camera.FrustumSliceAt(PortalDepth)
	textSlice := s.Camera.FrustumSliceAt(TextDepth)

	s.syncPortals(frame, cols, w, h, portalSlice, dt)
	s.syncBackground(frame, dt)
	s.syncText(frame, cols, w, h, textSlice)
	s.syncGuides(relaid, cols, w, h, portalSlice)

	s.Pulse.Update(dt)
	s.Overlay.Update(dt)

	s.Input.EndFrame()
}

// ── Async results ─────────────────────────────────────────────────────────────

func (s *SceneState) drainAssets() {
	for _, res := range s.loader.Drain() {
		if res.Err != nil {
			s.errlog.Printf("%s %q failed (continuing without it): %v", res.Kind, res.Name, res.Err)
			continue
		}
		switch res.Kind {
		case assets.KindFont:
			s.Face = textfit.NewFontMeasurer(res.Font)
			for _, l := range s.allLabels() {
				l.Invalidate()
			}
			s.info.Printf("font %q attached", res.Name)
		case assets.KindImage:
			s.attachEmblem(res.Name, res.Image)
		case assets.KindModel:
			s.attachProp(res.Model)
		}
	}
}

func (s *SceneState) attachEmblem(name string, img *image.RGBA) {
	tex := scene.NewTextureFromImage(name, img)
	if err := s.engine.UploadTexture(tex); err != nil {
		s.errlog.Printf("emblem texture (continuing without it): %v", err)
		return
	}
	node := scene.NewNode("emblem")
	node.Mesh = scene.CreateQuad("emblem_quad")
	node.Material = scene.NewMaterial("emblem_mat", core.ColorWhite)
	node.Material.AlbedoTexture = tex
	s.Scene.AddNode(node)
	s.Emblem = node
	s.emblemTex = tex
	s.info.Printf("emblem %q attached (%dx%d)", name, tex.Width, tex.Height)
}

func (s *SceneState) attachProp(model *assets.ModelData) {
	parts := propParts(model)
	if len(parts) == 0 {
		s.errlog.Printf("prop %q has no usable geometry (continuing without it)", model.Name)
		return
	}

	build := func(side string) *scene.Node {
		n := scene.NewNode(side)
		for i, part := range parts {
			child := scene.NewNode(side + "-" + strconv.Itoa(i))
			child.Mesh = part.mesh
			child.Material = scene.NewMaterial(side+"-mat", part.color)
			n.AddChild(child)
		}
		s.PropGroup.AddChild(n)
		return n
	}
	s.propLeft = build("prop-left")
	s.propRight = build("prop-right")
	s.info.Printf("prop %q attached (%d primitives)", model.Name, len(parts))
}

type propPart struct {
	mesh  *scene.Mesh
	color core.Color
}

// propParts normalizes the model into a unit box centered on the origin so
// the scene can size it off the portal dimensions alone.
func propParts(model *assets.ModelData) []propPart {
	inf := float32(math.Inf(1))
	min := mgl32.Vec3{inf, inf, inf}
	max := mgl32.Vec3{-inf, -inf, -inf}
	for _, prim := range model.Primitives {
		for _, p := range prim.Positions {
			for i := 0; i < 3; i++ {
				if p[i] < min[i] {
					min[i] = p[i]
				}
				if p[i] > max[i] {
					max[i] = p[i]
				}
			}
		}
	}
	size := max.Sub(min)
	maxDim := size.X()
	if size.Y() > maxDim {
		maxDim = size.Y()
	}
	if size.Z() > maxDim {
		maxDim = size.Z()
	}
	if maxDim <= 0 {
		return nil
	}
	center := min.Add(size.Mul(0.5))

	var parts []propPart
	for _, prim := range model.Primitives {
		if len(prim.Positions) == 0 {
			continue
		}
		verts := make([]core.Vertex, len(prim.Positions))
		for i, pos := range prim.Positions {
			v := core.Vertex{
				Position: pos.Sub(center).Mul(1 / maxDim),
				Normal:   mgl32.Vec3{0, 0, 1},
				Color:    core.ColorWhite,
			}
			if i < len(prim.Normals) {
				v.Normal = prim.Normals[i]
			}
			if i < len(prim.UVs) {
				v.UV = prim.UVs[i]
			}
			verts[i] = v
		}
		parts = append(parts, propPart{
			mesh:  scene.CreateMeshFromData(prim.Name, verts, prim.Indices),
			color: prim.BaseColor,
		})
	}
	return parts
}

// ── Input ─────────────────────────────────────────────────────────────────────

func (s *SceneState) handleInput(dt float64) {
	if s.Input.ScrollDelta != 0 {
		s.Scroll.AddWheel(s.Input.ScrollDelta)
	}
	if s.Input.IsKeyDown(core.KeyDown) {
		s.Scroll.ScrollBy(keyScrollPxPerSec * dt)
	}
	if s.Input.IsKeyDown(core.KeyUp) {
		s.Scroll.ScrollBy(-keyScrollPxPerSec * dt)
	}
	if s.Input.IsKeyPressed(core.KeyHome) {
		s.Scroll.SetProgress(0)
	}
	if s.Input.IsKeyPressed(core.KeyEnd) {
		s.Scroll.SetProgress(1)
	}
	if s.Input.IsKeyPressed(core.KeyR) {
		s.Scroll.SetProgress(0)
		s.Timeline.Reset()
	}
	if s.Input.IsKeyPressed(core.KeyF3) {
		s.Overlay.Toggle()
	}
	if s.Input.IsKeyPressed(core.KeyF5) {
		if err := scene.SaveScene(s.Scene, snapshotPath); err != nil {
			s.errlog.Printf("scene snapshot: %v", err)
		} else {
			s.info.Printf("scene snapshot saved to %q", snapshotPath)
		}
	}
	if s.Input.IsKeyPressed(core.KeyF9) {
		if data, err := scene.LoadScene(snapshotPath); err != nil {
			s.errlog.Printf("scene snapshot: %v", err)
		} else {
			data.ApplyToScene(s.Scene)
			s.info.Printf("scene snapshot %q applied", snapshotPath)
		}
	}

	if s.Input.IsKeyPressed(core.KeySpace) {
		s.togglePortal(s.LeftPortal)
		s.togglePortal(s.RightPortal)
	}

	if s.Input.IsMousePressed(core.MouseButtonLeft) {
		s.routeClick(s.Input.CursorUV())
	}
}

// routeClick tests the click against both portal ellipses. Portals take
// clicks only once the timeline has revealed them.
func (s *SceneState) routeClick(uv mgl64.Vec2) {
	if s.Timeline.Current().PortalScale <= 0 {
		return
	}
	for _, p := range []*scene.Portal{s.LeftPortal, s.RightPortal} {
		if p.HitTest(uv) {
			s.togglePortal(p)
			return
		}
	}
}

func (s *SceneState) togglePortal(p *scene.Portal) {
	if s.Timeline.Current().PortalScale <= 0 {
		return
	}
	if p.Toggle() {
		s.Pulse.Burst(p.Node.WorldPosition(), pulseBurstCount)
	}
}

// ── Per-frame syncs ───────────────────────────────────────────────────────────

func (s *SceneState) syncViewport() {
	fbW, fbH := s.window.GetFramebufferSize()
	w, h := s.window.Width, s.window.Height
	if w == s.lastW && h == s.lastH && fbW == s.fbW && fbH == s.fbH {
		return
	}
	s.lastW, s.lastH = w, h
	s.fbW, s.fbH = fbW, fbH

	s.engine.Resize(uint32(fbW), uint32(fbH))
	s.Camera.UpdateAspectRatio(float64(w), float64(h))
	s.Scroll.Resize(float64(h))
}

func (s *SceneState) syncPortals(frame anim.Frame, cols layout.Columns, w, h float64, slice scene.FrustumSlice, dt float64) {
	left, right := layout.PortalPlacements(cols, w, h, slice)
	holeRadii := scene.HoleRadii(float64(s.fbW), float64(s.fbH))

	s.PortalGroup.SetScale(mgl64.Vec3{frame.PortalScale, frame.PortalScale, 1})
	s.PortalGroup.Visible = frame.PortalScale > 0

	s.syncPortal(s.LeftPortal, left, holeRadii, cols, w, h, slice, dt)
	s.syncPortal(s.RightPortal, right, holeRadii, cols, w, h, slice, dt)

	s.PropGroup.SetScale(mgl64.Vec3{frame.PortalScale, frame.PortalScale, 1})
	s.PropGroup.Visible = frame.PortalScale > 0 && s.propLeft != nil
	if s.propLeft != nil {
		placeProp(s.propLeft, left)
		placeProp(s.propRight, right)
	}
}

func (s *SceneState) syncPortal(p *scene.Portal, place layout.PortalPlacement, holeRadii mgl64.Vec2, cols layout.Columns, w, h float64, slice scene.FrustumSlice, dt float64) {
	p.Node.SetPosition(place.Center)

	// The disc's base size is what its UV hole radius covers on this slice;
	// the layout hands back a multiplicative correction toward the CSS
	// target, not an absolute size.
	baseHalfW := holeRadii.X() * slice.Width
	baseHalfH := holeRadii.Y() * slice.Height
	factor := layout.PortalScaleFactor(cols.PortalWidth, cols.PortalHeight, holeRadii, w, h)
	p.Node.SetScale(mgl64.Vec3{baseHalfW * factor.X(), baseHalfH * factor.Y(), 1})

	p.Update(time.Duration(dt * float64(time.Second)))

	if retired, repainted := p.Door.Paint(p.Uniforms.Spread); repainted {
		if retired != nil {
			s.engine.DeleteTexture(retired)
		}
		if err := s.engine.UploadTexture(p.Door.Texture()); err != nil {
			s.errlog.Printf("door texture %q (continuing without it): %v", p.Name, err)
		}
	}

	// World position is authoritative; the UV center is its projection.
	p.Uniforms.CenterUV = s.Camera.WorldToScreenUV(p.Node.WorldPosition())
	p.Uniforms.RadiusUV = holeRadii
}

func placeProp(n *scene.Node, place layout.PortalPlacement) {
	span := place.HalfHeight * 0.9
	n.SetScale(mgl64.Vec3{span, span, span})
	n.SetPosition(mgl64.Vec3{place.Center.X(), -place.HalfHeight * 1.25, 0})
}

// syncGuides keeps the column-boundary rules aligned with the layout. The
// mesh is rebuilt only when the layout recomputed; visibility follows the
// stats overlay.
func (s *SceneState) syncGuides(relaid bool, cols layout.Columns, w, h float64, slice scene.FrustumSlice) {
	if s.Guides == nil {
		s.Guides = scene.NewNode("column-guides")
		s.Guides.SetPosition(mgl64.Vec3{0, 0, PortalDepth})
		s.Scene.AddNode(s.Guides)
	}
	s.Guides.Visible = s.Overlay.Visible()
	if !relaid && s.Guides.Mesh != nil {
		return
	}

	wb := layout.ProjectBoundaries(cols.Boundaries(), w, slice)
	gray := s.Palette.ColumnText.Scaled(0.35)
	lines := []scene.GuideLine{
		{X: scene.CSSToWorldX(cols.OuterFiller, w, slice), Color: gray},
		{X: wb.LeftPortalLeft, Color: s.Palette.PortalLeft},
		{X: wb.LeftPortalRight, Color: s.Palette.PortalLeft},
		{X: wb.RightPortalLeft, Color: s.Palette.PortalRight},
		{X: wb.RightPortalRight, Color: s.Palette.PortalRight},
		{X: scene.CSSToWorldX(w-cols.OuterFiller, w, slice), Color: gray},
	}

	if s.Guides.Mesh != nil {
		s.engine.ReleaseMesh(s.Guides.Mesh)
	}
	s.Guides.Mesh = scene.CreateGuideLines("column-guides", lines, slice.Height/2, -slice.Height/2)
}

func (s *SceneState) syncBackground(frame anim.Frame, dt float64) {
	s.Background.SetFocalPoints(s.LeftPortal.Uniforms.CenterUV, s.RightPortal.Uniforms.CenterUV)
	s.Background.SetHoleRadii(scene.HoleRadii(float64(s.fbW), float64(s.fbH)))
	s.Background.HoleScale = frame.HoleScale
	s.Background.Fade = frame.ScrollFade
	s.Background.Advance(dt)
}

func (s *SceneState) syncText(frame anim.Frame, cols layout.Columns, w, h float64, slice scene.FrustumSlice) {
	heroScale := frame.TextZoom * frame.GroupScale
	s.HeroGroup.SetScale(mgl64.Vec3{heroScale, heroScale, 1})
	s.HeroGroup.SetRotationZ(frame.Rotation)
	s.HeroGroup.Visible = frame.GroupScale > 0

	s.fitLabel(s.HeroTitle, w*heroTitleBoxW, h*heroTitleBoxH)
	s.fitLabel(s.HeroSub, w*heroSubBoxW, h*heroSubBoxH)
	s.placeLabel(s.HeroTitle, 0, 0, 0, w, h, slice)

	_, titleH := labelWorldSize(s.HeroTitle, w, h, slice)
	_, subH := labelWorldSize(s.HeroSub, w, h, slice)
	gap := scene.CSSLengthToWorldY(24, h, slice)
	s.placeLabel(s.HeroSub, 0, -(titleH/2 + subH/2 + gap), 0, w, h, slice)

	// Nav labels are children of a group already at text depth, so their
	// local z stays zero.
	navY := scene.CSSToWorldY(36, h, slice)
	n := len(s.NavLabels)
	for i, l := range s.NavLabels {
		s.fitLabel(l, w*navBoxW, 48)
		cssX := w * float64(i+1) / float64(n+1)
		x := scene.ClampToSlice(scene.CSSToWorldX(cssX, w, slice), slice)
		s.placeLabel(l, x, navY, 0, w, h, slice)
	}

	s.fitLabel(s.ScrollHint, w*0.3, 40)
	hintY := scene.CSSToWorldY(h-56, h, slice)
	s.placeLabel(s.ScrollHint, 0, hintY, TextDepth, w, h, slice)
	s.ScrollHint.SetOpacity(frame.ScrollFade)
	s.ScrollHint.Node.Visible = s.ScrollHint.Node.Visible && frame.ScrollFade > 0

	leftRect, rightRect := cols.ColumnRects(h)
	showSides := cols.Category != layout.Mobile
	s.syncSide(s.SideLeft, leftRect, frame, true, showSides, w, h, slice)
	s.syncSide(s.SideRight, rightRect, frame, false, showSides, w, h, slice)

	if s.Emblem != nil {
		s.syncEmblem(frame, w, h, slice)
	}
}

// syncSide slides one paragraph in from beyond the frustum edge toward its
// column center.
func (s *SceneState) syncSide(l *scene.Label, rect core.Rect, frame anim.Frame, fromLeft, show bool, w, h float64, slice scene.FrustumSlice) {
	if !show || l.Text() == "" {
		l.Node.Visible = false
		return
	}
	s.fitLabel(l, rect.Width, rect.Height)

	targetX := scene.ClampToSlice(scene.CSSToWorldX(rect.X+rect.Width/2, w, slice), slice)
	cy := scene.CSSToWorldY(rect.Y+rect.Height/2, h, slice)

	ww, _ := labelWorldSize(l, w, h, slice)
	off := slice.HalfWidth() + ww/2 + 1
	startX := off
	if fromLeft {
		startX = -off
	}

	x := anim.Lerp(startX, targetX, frame.SideTextEase)
	s.placeLabel(l, x, cy, TextDepth, w, h, slice)
	l.SetOpacity(frame.SideText)
	l.Node.Visible = l.Node.Visible && frame.SideText > 0
}

func (s *SceneState) syncEmblem(frame anim.Frame, w, h float64, slice scene.FrustumSlice) {
	tex := s.emblemTex
	if tex == nil || tex.Height == 0 {
		return
	}
	const emblemCSSHeight = 64.0
	cssW := emblemCSSHeight * float64(tex.Width) / float64(tex.Height)
	ww := scene.CSSLengthToWorldX(cssW, w, slice)
	wh := scene.CSSLengthToWorldY(emblemCSSHeight, h, slice)
	s.Emblem.SetScale(mgl64.Vec3{ww, wh, 1})
	s.Emblem.SetPosition(mgl64.Vec3{0, scene.CSSToWorldY(110, h, slice), TextDepth})
	s.Emblem.Material.Opacity = float32(frame.ScrollFade)
	s.Emblem.Visible = frame.ScrollFade > 0
}

// ── Label helpers ─────────────────────────────────────────────────────────────

// fitLabel relays the text into its box and swaps GPU textures when the
// raster actually changed.
func (s *SceneState) fitLabel(l *scene.Label, boxW, boxH float64) {
	if s.Face == nil {
		return
	}
	retired, rebuilt := l.Fit(s.Face, boxW, boxH, s.Config.FontScale)
	if !rebuilt {
		return
	}
	if retired != nil {
		s.engine.DeleteTexture(retired)
	}
	if l.Texture != nil && len(l.Texture.Pixels) > 0 {
		if err := s.engine.UploadTexture(l.Texture); err != nil {
			s.errlog.Printf("label %q texture (continuing without it): %v", l.Name, err)
		}
	}
}

// placeLabel sizes the quad so one raster pixel spans one CSS pixel at this
// depth, then positions it. Empty rasters hide the node.
func (s *SceneState) placeLabel(l *scene.Label, x, y, z float64, w, h float64, slice scene.FrustumSlice) {
	tex := l.Texture
	if tex == nil || tex.Width == 0 || tex.Height == 0 {
		l.Node.Visible = false
		return
	}
	l.Node.Visible = true
	ww, wh := labelWorldSize(l, w, h, slice)
	l.Node.SetScale(mgl64.Vec3{ww, wh, 1})
	l.Node.SetPosition(mgl64.Vec3{x, y, z})
}

func labelWorldSize(l *scene.Label, w, h float64, slice scene.FrustumSlice) (float64, float64) {
	if l.Texture == nil {
		return 0, 0
	}
	ww := scene.CSSLengthToWorldX(float64(l.Texture.Width)*l.Block.Scale, w, slice)
	wh := scene.CSSLengthToWorldY(float64(l.Texture.Height)*l.Block.Scale, h, slice)
	return ww, wh
}
