package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"portal-site/core"
)

func TestPulseBurstAndDecay(t *testing.T) {
	e := NewPulseEmitter(64, core.Color{R: 1, G: 0.6, B: 0.2, A: 1})

	e.Burst(mgl64.Vec3{1, 2, 0}, 10)
	if e.Count() != 10 {
		t.Fatalf("count after burst = %d, want 10", e.Count())
	}

	e.Update(0.1)
	if e.Count() != 10 {
		t.Fatalf("count after 0.1s = %d, want 10 still alive", e.Count())
	}
	for i, p := range e.Particles {
		if p.Position == (mgl64.Vec3{1, 2, 0}) {
			t.Errorf("particle %d never moved", i)
		}
		if p.Position.Z() != 0 {
			t.Errorf("particle %d left the portal plane: z = %v", i, p.Position.Z())
		}
		if p.Color.A >= 1 {
			t.Errorf("particle %d alpha = %v, want fading", i, p.Color.A)
		}
	}

	// Everything dies within the max lifetime.
	e.Update(0.7)
	if e.Count() != 0 {
		t.Errorf("count after max lifetime = %d, want 0", e.Count())
	}
}

func TestBurstRespectsPool(t *testing.T) {
	e := NewPulseEmitter(8, core.ColorWhite)
	e.Burst(mgl64.Vec3{}, 100)
	if e.Count() != 8 {
		t.Errorf("count = %d, want pool cap 8", e.Count())
	}
}

func TestDragSlowsParticles(t *testing.T) {
	e := NewPulseEmitter(4, core.ColorWhite)
	e.Burst(mgl64.Vec3{}, 4)

	before := make([]float64, e.Count())
	for i, p := range e.Particles {
		before[i] = p.Velocity.Len()
	}
	e.Update(0.05)
	for i, p := range e.Particles {
		if p.Velocity.Len() >= before[i] {
			t.Errorf("particle %d accelerated under drag: %v -> %v", i, before[i], p.Velocity.Len())
		}
	}
}

func TestContinuousEmission(t *testing.T) {
	e := NewPulseEmitter(64, core.ColorWhite)
	e.Rate = 100

	// One spawn per 10ms step; ten steps age the oldest particle well under
	// the minimum lifetime, so all ten must still be alive.
	for i := 0; i < 10; i++ {
		e.Update(0.01)
	}
	if got := e.Count(); got != 10 {
		t.Errorf("count after 10 steps at 100/s = %d, want 10", got)
	}

	e.Active = false
	e.Update(10)
	if e.Count() != 0 {
		t.Error("inactive emitter must not spawn and old particles must die")
	}
}
