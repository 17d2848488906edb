package site

import (
	"log"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"portal-site/anim"
	"portal-site/assets"
	"portal-site/core"
	"portal-site/layout"
	"portal-site/renderer"
	"portal-site/scene"
	"portal-site/textfit"
)

// Render depths of the two content planes. Portals sit on the camera target
// plane; text hangs eight units behind it, where the frustum slice is wider.
const (
	PortalDepth = 0.0
	TextDepth   = -8.0
)

// Camera clip planes; the whole composition lives well inside them.
const (
	cameraNear = 0.1
	cameraFar  = 100.0
)

// Asset tags used when draining loader results.
const (
	assetFont   = "site-font"
	assetProp   = "portal-prop"
	assetEmblem = "site-emblem"
)

// pulseBurstCount is how many sparks one accepted portal toggle emits.
const pulseBurstCount = 48

// SceneState owns every entity in the portal scene and the hosts that feed
// it (scroll, input, async loads). All mutation happens inside Update on the
// render goroutine; the struct is passed by reference so the topological
// frame order is a sequence of method calls, not hidden globals.
type SceneState struct {
	Config  Config
	Palette core.Palette

	Scene  *scene.Scene
	Camera *scene.Camera

	Layout   layout.Engine
	Columns  layout.Columns
	Timeline *anim.Timeline
	Scroll   *ScrollTracker
	Input    *InputManager

	Background *scene.Background

	PortalGroup *scene.Node
	LeftPortal  *scene.Portal
	RightPortal *scene.Portal

	HeroGroup *scene.Node
	HeroTitle *scene.Label
	HeroSub   *scene.Label

	NavGroup  *scene.Node
	NavLabels []*scene.Label

	SideLeft   *scene.Label
	SideRight  *scene.Label
	ScrollHint *scene.Label

	Pulse *scene.ParticleEmitter

	// Guides is the column-boundary rule overlay, shown with the stats
	// readout. Its mesh is rebuilt whenever the layout recomputes.
	Guides *scene.Node

	// PropGroup holds the optional glTF archway decor; empty until (and
	// unless) the async load succeeds.
	PropGroup *scene.Node

	// Emblem is the optional image badge shown at rest; nil until its load
	// succeeds.
	Emblem    *scene.Node
	emblemTex *scene.Texture

	// Face measures and rasterizes all labels. Starts as the built-in face
	// and is swapped when a configured font file finishes loading.
	Face *textfit.FontMeasurer

	Overlay *HUD

	loader *assets.Loader
	engine *renderer.RenderEngine
	window *core.Window
	info   *log.Logger
	errlog *log.Logger

	clock float64
	lastW int
	lastH int
	fbW   int
	fbH   int

	propLeft  *scene.Node
	propRight *scene.Node
}

// NewSceneState assembles the scene graph, wires the render engine and kicks
// off the async loads. Subsystems that fail to come up are logged and left
// out; the scene itself always comes up.
func NewSceneState(cfg Config, window *core.Window, engine *renderer.RenderEngine, info, errlog *log.Logger) *SceneState {
	palette, err := cfg.Colors()
	if err != nil {
		errlog.Printf("config palette (continuing with defaults where unreadable): %v", err)
	}

	s := &SceneState{
		Config:   cfg,
		Palette:  palette,
		Scene:    scene.NewScene(),
		Timeline: anim.NewTimeline(),
		Scroll:   NewScrollTracker(cfg.PinScreens, float64(window.Height)),
		Input:    NewInputManager(window),
		loader:   assets.NewLoader(),
		engine:   engine,
		window:   window,
		info:     info,
		errlog:   errlog,
		lastW:    window.Width,
		lastH:    window.Height,
	}

	aspect := 1.0
	if window.Height > 0 {
		aspect = float64(window.Width) / float64(window.Height)
	}
	s.Camera = scene.NewCamera(mgl64.DegToRad(cfg.CameraFOVDegrees), aspect, cameraNear, cameraFar)
	s.Scene.SetCamera(s.Camera)
	s.Scene.ClearColor = palette.Background

	s.Background = scene.NewBackground(palette)

	s.buildPortals(palette)
	s.buildText(palette)

	s.Pulse = scene.NewPulseEmitter(256, palette.Pulse)

	s.Face = builtinFace(errlog)

	if cfg.FontPath != "" {
		s.loader.LoadFont(assetFont, cfg.FontPath)
	}
	if cfg.PropPath != "" {
		s.loader.LoadModel(assetProp, cfg.PropPath)
	}
	if cfg.EmblemPath != "" {
		s.loader.LoadImage(assetEmblem, cfg.EmblemPath)
	}

	engine.SetScene(s.Scene)
	if err := engine.EnableBackground(s.Background); err != nil {
		errlog.Printf("background pass (continuing without it): %v", err)
	}
	engine.RegisterPortal(s.LeftPortal)
	engine.RegisterPortal(s.RightPortal)

	s.Overlay = NewHUD(s)

	return s
}

func (s *SceneState) buildPortals(palette core.Palette) {
	s.PortalGroup = scene.NewNode("portal-group")
	s.PortalGroup.SetPosition(mgl64.Vec3{0, 0, PortalDepth})
	s.Scene.AddNode(s.PortalGroup)

	s.LeftPortal = scene.NewPortal("left-portal", s.PortalGroup, palette.PortalLeft)
	s.RightPortal = scene.NewPortal("right-portal", s.PortalGroup, palette.PortalRight)
	for _, p := range []*scene.Portal{s.LeftPortal, s.RightPortal} {
		p.Door.Wood = palette.DoorWood
		p.Door.Frame = palette.DoorFrame
	}

	s.PropGroup = scene.NewNode("prop-group")
	s.PropGroup.SetPosition(mgl64.Vec3{0, 0, PortalDepth})
	s.PropGroup.Visible = false
	s.Scene.AddNode(s.PropGroup)
}

func (s *SceneState) buildText(palette core.Palette) {
	cfg := s.Config

	s.HeroGroup = scene.NewNode("hero-group")
	s.HeroGroup.SetPosition(mgl64.Vec3{0, 0, TextDepth})
	s.Scene.AddNode(s.HeroGroup)

	s.HeroTitle = scene.NewLabel("hero-title", s.HeroGroup, palette.HeroText)
	s.HeroTitle.BaseSize = 64
	s.HeroTitle.SetText(cfg.HeroTitle)

	s.HeroSub = scene.NewLabel("hero-subtitle", s.HeroGroup, palette.HeroText)
	s.HeroSub.BaseSize = 20
	s.HeroSub.SetText(cfg.HeroSubtitle)

	s.NavGroup = scene.NewNode("nav-group")
	s.NavGroup.SetPosition(mgl64.Vec3{0, 0, TextDepth})
	s.Scene.AddNode(s.NavGroup)
	for i, text := range cfg.NavLabels {
		l := scene.NewLabel(navName(i), s.NavGroup, palette.HeroText)
		l.BaseSize = 15
		l.SetText(text)
		s.NavLabels = append(s.NavLabels, l)
	}

	s.ScrollHint = scene.NewLabel("scroll-hint", nil, palette.HeroText)
	s.ScrollHint.BaseSize = 14
	s.ScrollHint.SetText(cfg.ScrollHint)
	s.ScrollHint.Node.SetPosition(mgl64.Vec3{0, 0, TextDepth})
	s.Scene.AddNode(s.ScrollHint.Node)

	s.SideLeft = scene.NewLabel("side-left", nil, palette.ColumnText)
	s.SideLeft.BaseSize = 17
	s.SideLeft.SetText(cfg.LeftText)
	s.SideLeft.Node.SetPosition(mgl64.Vec3{0, 0, TextDepth})
	s.Scene.AddNode(s.SideLeft.Node)

	s.SideRight = scene.NewLabel("side-right", nil, palette.SideText)
	s.SideRight.BaseSize = 17
	s.SideRight.SetText(cfg.RightText)
	s.SideRight.Node.SetPosition(mgl64.Vec3{0, 0, TextDepth})
	s.Scene.AddNode(s.SideRight.Node)
}

func navName(i int) string {
	return "nav-" + strconv.Itoa(i)
}

// builtinFace parses the compiled-in fallback face. Failure means labels
// stay blank until a configured font loads, nothing more.
func builtinFace(errlog *log.Logger) *textfit.FontMeasurer {
	f, err := assets.BuiltinFont()
	if err != nil {
		errlog.Printf("builtin font (continuing without text): %v", err)
		return nil
	}
	return textfit.NewFontMeasurer(f)
}

// Teardown releases every GPU resource the scene owns. Mesh buffers are
// freed by the engine's own Destroy; textures are tracked here because the
// entities that paint them own them.
func (s *SceneState) Teardown() {
	for _, p := range []*scene.Portal{s.LeftPortal, s.RightPortal} {
		if p != nil && p.Door.Texture() != nil {
			s.engine.DeleteTexture(p.Door.Texture())
		}
	}
	for _, l := range s.allLabels() {
		if l != nil && l.Texture != nil {
			s.engine.DeleteTexture(l.Texture)
		}
	}
	if s.emblemTex != nil {
		s.engine.DeleteTexture(s.emblemTex)
	}
	if s.Overlay != nil {
		s.Overlay.Teardown(s.engine)
	}
}

func (s *SceneState) allLabels() []*scene.Label {
	ls := []*scene.Label{s.HeroTitle, s.HeroSub, s.ScrollHint, s.SideLeft, s.SideRight}
	ls = append(ls, s.NavLabels...)
	return ls
}
