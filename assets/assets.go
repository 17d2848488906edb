// Package assets loads images, fonts and models off the main thread. Results
// arrive on a channel the frame loop drains; a failed load is a Result with
// Err set, never a crash.
package assets

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

type Kind int

const (
	KindImage Kind = iota
	KindFont
	KindModel
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindFont:
		return "font"
	case KindModel:
		return "model"
	}
	return "unknown"
}

// Result is one finished load. Exactly one of the payload fields is set when
// Err is nil, matching Kind.
type Result struct {
	Kind Kind
	Name string
	Err  error

	Image *image.RGBA
	Font  *truetype.Font
	Model *ModelData
}

// Loader runs loads concurrently and queues results for the frame loop.
// The queue is buffered; a site loads a handful of assets, not hundreds.
type Loader struct {
	results chan Result
}

func NewLoader() *Loader {
	return &Loader{results: make(chan Result, 16)}
}

// LoadImage decodes a PNG or JPEG file in the background.
func (l *Loader) LoadImage(name, path string) {
	go func() {
		r := Result{Kind: KindImage, Name: name}
		f, err := os.Open(path)
		if err != nil {
			r.Err = fmt.Errorf("open image %q: %w", path, err)
			l.results <- r
			return
		}
		defer f.Close()

		r.Image, r.Err = DecodeImage(f)
		l.results <- r
	}()
}

// LoadFont parses a TTF file in the background.
func (l *Loader) LoadFont(name, path string) {
	go func() {
		r := Result{Kind: KindFont, Name: name}
		data, err := os.ReadFile(path)
		if err != nil {
			r.Err = fmt.Errorf("read font %q: %w", path, err)
			l.results <- r
			return
		}

		r.Font, r.Err = truetype.Parse(data)
		if r.Err != nil {
			r.Err = fmt.Errorf("parse font %q: %w", path, r.Err)
		}
		l.results <- r
	}()
}

// LoadModel reads a glTF scene in the background.
func (l *Loader) LoadModel(name, path string) {
	go func() {
		r := Result{Kind: KindModel, Name: name}
		r.Model, r.Err = LoadModel(path)
		l.results <- r
	}()
}

// Drain returns every result that has finished since the last call, without
// blocking. Call once per frame.
func (l *Loader) Drain() []Result {
	var out []Result
	for {
		select {
		case r := <-l.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// DecodeImage decodes PNG or JPEG bytes into straight RGBA8.
func DecodeImage(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}

// BuiltinFont parses the bundled fallback face, used whenever the configured
// font is missing or broken.
func BuiltinFont() (*truetype.Font, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse builtin font: %w", err)
	}
	return f, nil
}
