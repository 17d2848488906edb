package scene

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"portal-site/anim"
	"portal-site/core"
)

// Portal defaults. The pulse decays to nothing in about a third of a second;
// the brush ring turns slowly enough to read as hand-painted.
const (
	portalSegments       = 64
	portalToggleDuration = 900 * time.Millisecond
	pulseDecayPerSecond  = 3.0
	defaultBrushSpeed    = 0.35
)

// PortalUniforms is the per-frame shader parameter block for one portal.
// Values are plain numbers here; the GL backend converts on upload.
type PortalUniforms struct {
	CenterUV   mgl64.Vec2 // ellipse center in screen UV
	RadiusUV   mgl64.Vec2 // ellipse semi-axes in screen UV
	Spread     float64    // door spread, 1 closed to 0 open
	ClickPulse float64    // click flash amount, decays to 0
	BrushSpeed float64    // brush ring rotation speed, radians/s
	Color      core.Color // ring tint
}

// Portal is one of the two elliptical doorway entities. It owns its scene
// node, its spread tween and its painted door texture; screen-UV placement is
// written by the per-frame sync after world transforms settle.
type Portal struct {
	Name     string
	Node     *Node
	Door     *DoorwayPainter
	Tween    *anim.SpreadTween
	Uniforms PortalUniforms
}

// NewPortal creates a closed portal with an ellipse-disc mesh parented to the
// given group node.
func NewPortal(name string, parent *Node, color core.Color) *Portal {
	node := NewNode(name)
	node.Mesh = CreateEllipseDisc(name+"-disc", portalSegments)
	parent.AddChild(node)

	p := &Portal{
		Name:  name,
		Node:  node,
		Door:  NewDoorwayPainter(name + "-door"),
		Tween: anim.NewSpreadTween(portalToggleDuration),
	}
	p.Uniforms.Spread = p.Tween.Spread()
	p.Uniforms.BrushSpeed = defaultBrushSpeed
	p.Uniforms.Color = color
	return p
}

// HitTest reports whether a screen-UV point falls inside the portal ellipse.
func (p *Portal) HitTest(uv mgl64.Vec2) bool {
	rx := math.Max(p.Uniforms.RadiusUV.X(), epsDenominator)
	ry := math.Max(p.Uniforms.RadiusUV.Y(), epsDenominator)
	dx := (uv.X() - p.Uniforms.CenterUV.X()) / rx
	dy := (uv.Y() - p.Uniforms.CenterUV.Y()) / ry
	return dx*dx+dy*dy <= 1
}

// Toggle requests an open/close transition. A toggle during a running
// transition is dropped; an accepted toggle also fires the click pulse.
func (p *Portal) Toggle() bool {
	if !p.Tween.Toggle() {
		return false
	}
	p.Uniforms.ClickPulse = 1
	return true
}

// IsOpen reports the resting state most recently reached.
func (p *Portal) IsOpen() bool { return p.Tween.IsOpen() }

// Phase is the current position in the open/close cycle.
func (p *Portal) Phase() anim.PortalPhase { return p.Tween.Phase() }

// Update advances the spread tween and decays the click pulse.
func (p *Portal) Update(dt time.Duration) {
	p.Tween.Update(dt)
	p.Uniforms.Spread = p.Tween.Spread()

	if p.Uniforms.ClickPulse > 0 {
		p.Uniforms.ClickPulse -= pulseDecayPerSecond * dt.Seconds()
		if p.Uniforms.ClickPulse < 0 {
			p.Uniforms.ClickPulse = 0
		}
	}
}
