// Package resource supplies decoded raster payloads for the optional
// image and emoji element kinds.
//
// The core renderer never loads bytes itself: it emits a /Do reference
// under a stable resource name, and the document assembler asks a
// [Provider] for the pixels behind each referenced key. Degradation
// policy (fail, or substitute a placeholder) lives entirely inside the
// provider; the core renderer always fails fast.
package resource

import (
	"image"

	"github.com/inkpress/inkpress/pkg/errors"
)

// Image is a decoded raster payload: tightly packed 8-bit RGB samples,
// row-major, no padding.
type Image struct {
	Pixels []byte
	Width  int
	Height int
}

// Provider resolves resource keys to decoded images. Keys are either
// plain image sources ("logo.png") or emoji keys ("emoji:fire").
type Provider interface {
	Resolve(key string) (Image, error)
}

// Policy controls how a provider reacts to unresolvable keys.
type Policy int

const (
	// PolicyFail propagates a RESOURCE_LOAD error for unresolvable keys.
	PolicyFail Policy = iota
	// PolicyPlaceholder substitutes a neutral gray placeholder pixel.
	PolicyPlaceholder
)

// Placeholder is the 1x1 gray image substituted under
// [PolicyPlaceholder].
var Placeholder = Image{Pixels: []byte{0x80, 0x80, 0x80}, Width: 1, Height: 1}

// flatten converts any decoded image into tightly packed RGB samples.
func flatten(src image.Image) Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := Image{Pixels: make([]byte, 0, w*h*3), Width: w, Height: h}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.At(x, y).RGBA()
			out.Pixels = append(out.Pixels, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
	}
	return out
}

// notFound builds the canonical error for an unresolvable key.
func notFound(key string, cause error) error {
	if cause != nil {
		return errors.Wrap(errors.ErrCodeResourceLoad, cause, "resolve %s", key)
	}
	return errors.New(errors.ErrCodeResourceNotFound, "no resource for key %s", key)
}
