package resource

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/pkg/errors"
)

// writePNG saves a 2x1 red/blue test raster into dir and returns its
// relative key.
func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{B: 255, A: 255})
	require.NoError(t, imaging.Save(img, filepath.Join(dir, name)))
	return name
}

func TestResolveImage(t *testing.T) {
	dir := t.TempDir()
	key := writePNG(t, dir, "logo.png")

	p := NewDirProvider(dir)
	img, err := p.Resolve(key)
	require.NoError(t, err)
	require.Equal(t, 2, img.Width)
	require.Equal(t, 1, img.Height)
	require.True(t, bytes.Equal(img.Pixels, []byte{255, 0, 0, 0, 0, 255}),
		"pixels = %v", img.Pixels)
}

func TestResolveMissing(t *testing.T) {
	p := NewDirProvider(t.TempDir())
	_, err := p.Resolve("nope.png")
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrCodeResourceNotFound))
}

func TestResolvePlaceholderPolicy(t *testing.T) {
	p := NewDirProvider(t.TempDir(), WithPolicy(PolicyPlaceholder))
	img, err := p.Resolve("nope.png")
	require.NoError(t, err)
	require.Equal(t, Placeholder, img)
}

func TestResolveEmojiUnknown(t *testing.T) {
	p := NewDirProvider(t.TempDir())
	_, err := p.Resolve("emoji:unheard-of")
	require.Error(t, err)
}

func TestEmojiKnown(t *testing.T) {
	if !EmojiKnown(":fire:") || !EmojiKnown("fire") {
		t.Error("fire should be a known shortcode")
	}
	if EmojiKnown("unheard-of") {
		t.Error("unheard-of should not be known")
	}
}
