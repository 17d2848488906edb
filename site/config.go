package site

import (
	"encoding/json"
	"fmt"
	"os"

	"portal-site/core"
)

// Defaults for the scroll host and camera. The pinned region spans four
// viewport heights; progress covers the three screens of travel inside it.
const (
	defaultPinScreens = 4.0
	defaultFOVDegrees = 50.0
	defaultFontScale  = 1.0
)

// PaletteConfig carries CSS color strings; empty fields keep the compiled-in
// default for that slot.
type PaletteConfig struct {
	Background  string
	SwirlDark   string
	SwirlLight  string
	PortalLeft  string
	PortalRight string
	DoorWood    string
	DoorFrame   string
	HeroText    string
	ColumnText  string
	SideText    string
	Pulse       string
}

// Config is the site configuration. Every field has a working default, so
// the binary runs with no file at all; a partial file overrides only what it
// names.
type Config struct {
	Title string

	HeroTitle    string
	HeroSubtitle string
	ScrollHint   string
	NavLabels    []string

	// Long-form column paragraphs. RightText is optional; when empty the
	// right column simply stays blank.
	LeftText  string
	RightText string

	Palette PaletteConfig

	CameraFOVDegrees float64
	PinScreens       float64
	FontScale        float64

	// Optional asset paths. Empty means "use the built-in fallback" for the
	// font and "none" for the others.
	FontPath   string
	PropPath   string
	EmblemPath string
}

// DefaultConfig returns the compiled-in site content.
func DefaultConfig() Config {
	return Config{
		Title:        "Two Doors",
		HeroTitle:    "Two doors, one threshold",
		HeroSubtitle: "scroll to step through",
		ScrollHint:   "scroll",
		NavLabels:    []string{"work", "about", "contact"},
		LeftText: "Every surface here is painted twice: once by the layout engine, " +
			"which carves the viewport into columns that breathe with the window, " +
			"and once by the brush shader that never quite repeats itself.",
		RightText: "The doors do not lead anywhere. They open because you asked, " +
			"and close because you asked again; the scene in between belongs to " +
			"whoever is scrolling.",
		CameraFOVDegrees: defaultFOVDegrees,
		PinScreens:       defaultPinScreens,
		FontScale:        defaultFontScale,
	}
}

// LoadConfig reads a JSON config file and fills unset fields from the
// defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config %q: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// SaveConfig writes a config template, handy as a starting point for edits.
func SaveConfig(cfg Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.CameraFOVDegrees <= 0 {
		c.CameraFOVDegrees = defaultFOVDegrees
	}
	if c.PinScreens <= 1 {
		c.PinScreens = defaultPinScreens
	}
	if c.FontScale <= 0 {
		c.FontScale = defaultFontScale
	}
	if c.Title == "" {
		c.Title = DefaultConfig().Title
	}
}

// Colors resolves the palette: compiled-in defaults overridden slot by slot
// with whatever CSS strings the config provides. A malformed color string is
// an error; a missing one is not.
func (c Config) Colors() (core.Palette, error) {
	p := core.DefaultPalette()

	slots := []struct {
		css string
		dst *core.Color
	}{
		{c.Palette.Background, &p.Background},
		{c.Palette.SwirlDark, &p.SwirlDark},
		{c.Palette.SwirlLight, &p.SwirlLight},
		{c.Palette.PortalLeft, &p.PortalLeft},
		{c.Palette.PortalRight, &p.PortalRight},
		{c.Palette.DoorWood, &p.DoorWood},
		{c.Palette.DoorFrame, &p.DoorFrame},
		{c.Palette.HeroText, &p.HeroText},
		{c.Palette.ColumnText, &p.ColumnText},
		{c.Palette.SideText, &p.SideText},
		{c.Palette.Pulse, &p.Pulse},
	}
	for _, s := range slots {
		if s.css == "" {
			continue
		}
		col, err := core.ParseColor(s.css)
		if err != nil {
			return p, err
		}
		*s.dst = col
	}
	return p, nil
}
