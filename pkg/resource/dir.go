package resource

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// emojiFiles maps emoji shortcodes (without the surrounding colons) to
// the raster filename searched for under the provider's emoji
// directory.
var emojiFiles = map[string]string{
	"smile":    "smile.png",
	"thumbsup": "thumbsup.png",
	"rocket":   "rocket.png",
	"fire":     "fire.png",
	"warning":  "warning.png",
	"check":    "check.png",
}

// DirProvider resolves resource keys against a directory tree: plain
// keys are file paths relative to the root, emoji keys map to rasters
// under <root>/emoji/.
type DirProvider struct {
	root   string
	policy Policy
}

// DirOption configures a DirProvider.
type DirOption func(*DirProvider)

// WithPolicy sets the degradation policy for unresolvable keys.
func WithPolicy(p Policy) DirOption {
	return func(d *DirProvider) {
		d.policy = p
	}
}

// NewDirProvider creates a provider rooted at the given directory.
func NewDirProvider(root string, opts ...DirOption) *DirProvider {
	d := &DirProvider{root: root}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Resolve loads and decodes the image behind a resource key.
func (d *DirProvider) Resolve(key string) (Image, error) {
	path, err := d.pathFor(key)
	if err != nil {
		return d.degrade(key, err)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return d.degrade(key, notFound(key, err))
	}
	return flatten(img), nil
}

// pathFor maps a resource key to a filesystem path under the root.
func (d *DirProvider) pathFor(key string) (string, error) {
	if code, ok := strings.CutPrefix(key, "emoji:"); ok {
		file, known := emojiFiles[code]
		if !known {
			return "", notFound(key, nil)
		}
		return filepath.Join(d.root, "emoji", file), nil
	}
	path := filepath.Join(d.root, filepath.Clean("/"+key))
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", notFound(key, nil)
		}
		return "", notFound(key, err)
	}
	return path, nil
}

// degrade applies the configured policy to a resolution failure.
func (d *DirProvider) degrade(key string, err error) (Image, error) {
	if d.policy == PolicyPlaceholder {
		return Placeholder, nil
	}
	return Image{}, err
}

// EmojiKnown reports whether a shortcode has a raster mapping.
func EmojiKnown(code string) bool {
	_, ok := emojiFiles[strings.Trim(code, ":")]
	return ok
}
