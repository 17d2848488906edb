package scene

import "portal-site/core"

// Material describes surface appearance for a mesh. Every surface in the
// portal scene is unlit; the only knobs are a tint, an optional texture and
// the blend behavior.
type Material struct {
	Name    string
	Albedo  core.Color // base color (multiplied with the texture if set)
	Opacity float32    // 0 fully transparent, 1 opaque

	// Additive switches the mesh to additive blending (glows, pulses).
	Additive bool

	// Optional albedo texture; if set, it is multiplied with Albedo.
	// Upload via the render engine before drawing.
	AlbedoTexture *Texture
}

// DefaultMaterial returns a plain opaque white material.
func DefaultMaterial() *Material {
	return &Material{
		Name:    "Default",
		Albedo:  core.ColorWhite,
		Opacity: 1,
	}
}

// NewMaterial creates an opaque material with the given albedo color.
func NewMaterial(name string, albedo core.Color) *Material {
	return &Material{
		Name:    name,
		Albedo:  albedo,
		Opacity: 1,
	}
}
