package scene

import (
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"portal-site/core"
)

// bitmapSource backs labels with the fixed 7x13 bitmap face so tests need no
// TTF parsing. Size is ignored; the face has exactly one.
type bitmapSource struct{}

func (bitmapSource) Face(size float64) font.Face { return basicfont.Face7x13 }

func (bitmapSource) Measure(text string, size float64) float64 {
	return float64(font.MeasureString(basicfont.Face7x13, text)) / 64
}

func (bitmapSource) LineHeight(size float64) float64 {
	return float64(basicfont.Face7x13.Metrics().Height) / 64
}

func TestLabelFitRebuildsOnChange(t *testing.T) {
	src := bitmapSource{}
	l := NewLabel("caption", nil, core.ColorWhite)
	l.SetText("hello world")

	retired, rebuilt := l.Fit(src, 200, 100, 1)
	if !rebuilt {
		t.Fatal("first fit must rebuild")
	}
	if retired != nil {
		t.Fatal("first fit has no texture to retire")
	}
	if l.Texture == nil {
		t.Fatal("fit left no texture behind")
	}
	first := l.Texture

	if _, rebuilt := l.Fit(src, 200, 100, 1); rebuilt {
		t.Error("unchanged inputs must not rebuild")
	}
	if l.Texture != first {
		t.Error("unchanged fit replaced the texture")
	}

	l.SetText("changed")
	retired, rebuilt = l.Fit(src, 200, 100, 1)
	if !rebuilt {
		t.Error("text change must rebuild")
	}
	if retired != first {
		t.Error("rebuild must hand back the previous texture for disposal")
	}

	if _, rebuilt := l.Fit(src, 200, 100, 1.25); !rebuilt {
		t.Error("font scale change must rebuild")
	}
	if _, rebuilt := l.Fit(src, 180, 100, 1.25); !rebuilt {
		t.Error("box change must rebuild")
	}

	l.Invalidate()
	if _, rebuilt := l.Fit(src, 180, 100, 1.25); !rebuilt {
		t.Error("invalidated label must rebuild")
	}
}

func TestLabelRasterizesInk(t *testing.T) {
	src := bitmapSource{}
	l := NewLabel("caption", nil, core.ColorWhite)
	l.SetText("hello")
	if _, rebuilt := l.Fit(src, 200, 100, 1); !rebuilt {
		t.Fatal("fit did not run")
	}

	tex := l.Texture
	if tex.Width <= 0 || tex.Height <= 0 {
		t.Fatalf("texture is %dx%d", tex.Width, tex.Height)
	}
	ink := false
	for i := 3; i < len(tex.Pixels); i += 4 {
		if tex.Pixels[i] != 0 {
			ink = true
			break
		}
	}
	if !ink {
		t.Error("rasterized label has no visible pixels")
	}
}

func TestLabelEmptyText(t *testing.T) {
	src := bitmapSource{}
	l := NewLabel("caption", nil, core.ColorWhite)

	if _, rebuilt := l.Fit(src, 200, 100, 1); !rebuilt {
		t.Fatal("fit did not run")
	}
	for i := 3; i < len(l.Texture.Pixels); i += 4 {
		if l.Texture.Pixels[i] != 0 {
			t.Fatal("empty label must rasterize fully transparent")
		}
	}
}

func TestLabelContentSize(t *testing.T) {
	src := bitmapSource{}
	l := NewLabel("caption", nil, core.ColorWhite)
	l.SetText("hello")
	l.Fit(src, 200, 100, 1)

	w, h := l.ContentSize()
	if w <= 0 || h <= 0 {
		t.Errorf("content size = %v x %v, want positive", w, h)
	}
	if w > 200 || h > 100 {
		t.Errorf("content size = %v x %v exceeds its box", w, h)
	}
}
