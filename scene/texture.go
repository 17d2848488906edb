package scene

import (
	"image"
)

// Texture holds CPU-side pixel data for a 2D texture.
// GLID is set by the OpenGL backend after upload; do not access directly.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major, top-to-bottom).
	Pixels []byte
	// GLID is the OpenGL texture object ID, set by opengl.UploadTexture.
	GLID uint32
}

// NewTextureFromImage wraps a decoded RGBA image as a CPU-side texture.
func NewTextureFromImage(name string, img *image.RGBA) *Texture {
	b := img.Bounds()
	return &Texture{
		Name:   name,
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: img.Pix,
	}
}

// NewTextureFromPixels wraps raw RGBA8 pixel data as a CPU-side texture.
func NewTextureFromPixels(name string, width, height int, pixels []byte) *Texture {
	return &Texture{
		Name:   name,
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewSolidTexture creates a 1x1 texture with the given RGBA color values (0–255).
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}
