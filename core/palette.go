package core

import (
	"fmt"

	css "github.com/mazznoer/csscolorparser"
)

// ParseColor parses a CSS color string ("#1a0b2e", "rgb(...)", named colors)
// into a Color.
func ParseColor(str string) (Color, error) {
	c, err := css.Parse(str)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", str, err)
	}
	return Color{
		R: float32(c.R),
		G: float32(c.G),
		B: float32(c.B),
		A: float32(c.A),
	}, nil
}

// Palette holds every color the scene draws with. Fields are parsed once from
// the site config; nothing re-parses CSS strings per frame.
type Palette struct {
	Background  Color
	SwirlDark   Color
	SwirlLight  Color
	PortalLeft  Color
	PortalRight Color
	DoorWood    Color
	DoorFrame   Color
	HeroText    Color
	ColumnText  Color
	SideText    Color
	Pulse       Color
}

// DefaultPalette is the compiled-in scheme used when no config overrides it.
func DefaultPalette() Palette {
	return Palette{
		Background:  Color{0.071, 0.040, 0.122, 1},
		SwirlDark:   Color{0.102, 0.051, 0.173, 1},
		SwirlLight:  Color{0.294, 0.145, 0.420, 1},
		PortalLeft:  Color{0.976, 0.663, 0.208, 1},
		PortalRight: Color{0.337, 0.714, 0.761, 1},
		DoorWood:    Color{0.353, 0.220, 0.124, 1},
		DoorFrame:   Color{0.227, 0.137, 0.078, 1},
		HeroText:    Color{0.957, 0.937, 0.890, 1},
		ColumnText:  Color{0.867, 0.835, 0.780, 1},
		SideText:    Color{0.925, 0.878, 0.690, 1},
		Pulse:       Color{1, 0.890, 0.600, 1},
	}
}
