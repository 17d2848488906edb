package scene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"portal-site/core"
)

// BlendMode controls how particle colours composite with the scene.
type BlendMode int

const (
	BlendAlpha    BlendMode = iota // standard alpha blend
	BlendAdditive                  // additive blend (sparks, glow)
)

// Particle is a single live particle instance.
type Particle struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Life     float64    // remaining lifetime in seconds
	MaxLife  float64    // total initial lifetime in seconds
	Size     float64    // world-space billboard half-size
	Color    core.Color // updated each frame by lerping StartColor→EndColor
}

// ParticleEmitter spawns and simulates CPU particles. The portal click pulse
// uses radial bursts in the portal plane; continuous emission stays available
// through Rate. Rendered as camera-facing points via DrawParticles.
type ParticleEmitter struct {
	Position mgl64.Vec3

	// Rate is continuous emission in particles per second; 0 = bursts only.
	Rate int

	// Per-particle random ranges
	MinLife, MaxLife   float64 // lifetime range (seconds)
	MinSpeed, MaxSpeed float64 // initial speed range (units/s)
	MinSize, MaxSize   float64 // billboard half-size range

	// Colour over lifetime: linearly interpolated from birth to death
	StartColor core.Color
	EndColor   core.Color

	// Drag slows particles toward a stop, as fractional speed loss per second.
	Drag float64

	BlendMode BlendMode

	// Active gates continuous spawning; bursts work regardless.
	Active bool

	// Live particles (read by the renderer)
	Particles []Particle

	pool       int
	spawnAccum float64
	rng        *rand.Rand
}

// NewPulseEmitter returns the portal click-pulse emitter: short-lived sparks
// flying radially outward in the portal plane, additive, fading to nothing.
func NewPulseEmitter(maxParticles int, color core.Color) *ParticleEmitter {
	end := color
	end.A = 0
	return &ParticleEmitter{
		Rate:       0,
		MinLife:    0.25,
		MaxLife:    0.7,
		MinSpeed:   1.2,
		MaxSpeed:   3.2,
		MinSize:    0.02,
		MaxSize:    0.09,
		StartColor: color,
		EndColor:   end,
		Drag:       2.2,
		BlendMode:  BlendAdditive,
		Active:     true,
		Particles:  make([]Particle, 0, maxParticles),
		pool:       maxParticles,
		rng:        rand.New(rand.NewSource(42)),
	}
}

// Burst spawns count particles at center, radiating outward in the XY plane.
// Spawning stops silently when the pool is full.
func (e *ParticleEmitter) Burst(center mgl64.Vec3, count int) {
	for i := 0; i < count && len(e.Particles) < e.pool; i++ {
		e.spawnParticle(center)
	}
}

// Update advances the simulation by dt seconds.
// Call once per frame before DrawParticles.
func (e *ParticleEmitter) Update(dt float64) {
	if e.Active && e.Rate > 0 {
		e.spawnAccum += float64(e.Rate) * dt
		for e.spawnAccum >= 1.0 && len(e.Particles) < e.pool {
			e.spawnParticle(e.Position)
			e.spawnAccum -= 1.0
		}
	}

	// Integrate and cull dead particles (compact in-place)
	write := 0
	for i := range e.Particles {
		p := &e.Particles[i]
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Velocity = p.Velocity.Mul(math.Max(0, 1-e.Drag*dt))
		p.Position = p.Position.Add(p.Velocity.Mul(dt))

		t := 1.0 - p.Life/p.MaxLife // 0 = just born, 1 = about to die
		p.Color = lerpColor(e.StartColor, e.EndColor, t)
		p.Size = e.MinSize + (e.MaxSize-e.MinSize)*(1.0-t)

		e.Particles[write] = *p
		write++
	}
	e.Particles = e.Particles[:write]
}

// Count returns the number of live particles.
func (e *ParticleEmitter) Count() int { return len(e.Particles) }

func (e *ParticleEmitter) spawnParticle(center mgl64.Vec3) {
	life := e.MinLife + e.rng.Float64()*(e.MaxLife-e.MinLife)
	speed := e.MinSpeed + e.rng.Float64()*(e.MaxSpeed-e.MinSpeed)
	phi := e.rng.Float64() * 2 * math.Pi
	dir := mgl64.Vec3{math.Cos(phi), math.Sin(phi), 0}
	e.Particles = append(e.Particles, Particle{
		Position: center,
		Velocity: dir.Mul(speed),
		Life:     life,
		MaxLife:  life,
		Size:     e.MinSize,
		Color:    e.StartColor,
	})
}

func lerpColor(a, b core.Color, t float64) core.Color {
	ft := float32(t)
	return core.Color{
		R: a.R + (b.R-a.R)*ft,
		G: a.G + (b.G-a.G)*ft,
		B: a.B + (b.B-a.B)*ft,
		A: a.A + (b.A-a.A)*ft,
	}
}
