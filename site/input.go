package site

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"portal-site/core"
)

// InputManager polls window input once per frame and edge-detects presses.
type InputManager struct {
	CursorX, CursorY float64
	ScrollDelta      float64 // wheel notches accumulated since EndFrame

	mouseButtons     [8]bool
	mouseButtonsPrev [8]bool
	keys             [512]bool
	keysPrev         [512]bool

	window *core.Window
}

// Keys the site reacts to; anything else is never polled.
var polledKeys = []int{
	core.KeySpace, core.KeyEscape, core.KeyEnter,
	core.KeyUp, core.KeyDown, core.KeyHome, core.KeyEnd,
	core.KeyF3, core.KeyF5, core.KeyF9, core.KeyR,
}

func NewInputManager(window *core.Window) *InputManager {
	im := &InputManager{window: window}
	window.SetScrollCallback(func(xoff, yoff float64) {
		im.ScrollDelta += yoff
	})
	return im
}

// Update polls current state; call once per frame before reading queries.
func (im *InputManager) Update() {
	im.CursorX, im.CursorY = im.window.GetCursorPos()

	copy(im.mouseButtonsPrev[:], im.mouseButtons[:])
	copy(im.keysPrev[:], im.keys[:])

	im.mouseButtons[core.MouseButtonLeft] = im.window.IsMouseButtonPressed(core.MouseButtonLeft)
	im.mouseButtons[core.MouseButtonRight] = im.window.IsMouseButtonPressed(core.MouseButtonRight)

	for _, k := range polledKeys {
		if k >= 0 && k < len(im.keys) {
			im.keys[k] = im.window.IsKeyPressed(k)
		}
	}
}

// EndFrame clears accumulated per-frame state.
func (im *InputManager) EndFrame() {
	im.ScrollDelta = 0
}

// CursorUV maps the cursor into screen UV: origin top-left, v grows down.
func (im *InputManager) CursorUV() mgl64.Vec2 {
	w := math.Max(float64(im.window.Width), 1)
	h := math.Max(float64(im.window.Height), 1)
	return mgl64.Vec2{im.CursorX / w, im.CursorY / h}
}

func (im *InputManager) IsMouseDown(button int) bool {
	if button < 0 || button >= len(im.mouseButtons) {
		return false
	}
	return im.mouseButtons[button]
}

// IsMousePressed reports a down edge this frame.
func (im *InputManager) IsMousePressed(button int) bool {
	if button < 0 || button >= len(im.mouseButtons) {
		return false
	}
	return im.mouseButtons[button] && !im.mouseButtonsPrev[button]
}

func (im *InputManager) IsKeyDown(key int) bool {
	if key < 0 || key >= len(im.keys) {
		return false
	}
	return im.keys[key]
}

// IsKeyPressed reports a down edge this frame.
func (im *InputManager) IsKeyPressed(key int) bool {
	if key < 0 || key >= len(im.keys) {
		return false
	}
	return im.keys[key] && !im.keysPrev[key]
}
