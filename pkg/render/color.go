package render

import (
	"strconv"
	"strings"
	"sync"
)

// namedColors maps the fixed color name set to hex literals. Named tokens
// resolve through the same hex path as literals so both produce identical
// component formatting.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"gray":    "#808080",
	"grey":    "#808080",
	"orange":  "#ffa500",
	"purple":  "#800080",
}

// RGB converts a color token to a PDF "r g b" triple with components in
// [0,1]. Six-digit hex literals ("#rrggbb") convert component-wise via
// /255; the fixed name set resolves through the same path. Anything else,
// including malformed hex, silently falls back to black ("0 0 0").
func RGB(token string) string {
	if hex, ok := namedColors[strings.ToLower(token)]; ok {
		token = hex
	}
	if len(token) != 7 || token[0] != '#' {
		return "0 0 0"
	}
	r, errR := strconv.ParseUint(token[1:3], 16, 8)
	g, errG := strconv.ParseUint(token[3:5], 16, 8)
	b, errB := strconv.ParseUint(token[5:7], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return "0 0 0"
	}
	return num(float64(r)/255) + " " + num(float64(g)/255) + " " + num(float64(b)/255)
}

// ColorCache memoizes RGB conversions. The key space is tiny (hex literals
// and a fixed name set), so entries are never evicted. A nil *ColorCache
// is valid and simply disables memoization.
type ColorCache struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewColorCache creates an empty color cache.
func NewColorCache() *ColorCache {
	return &ColorCache{entries: make(map[string]string)}
}

// RGB converts token, consulting and filling the cache. Safe for
// concurrent use.
func (c *ColorCache) RGB(token string) string {
	if c == nil {
		return RGB(token)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.entries[token]; ok {
		return v
	}
	v := RGB(token)
	c.entries[token] = v
	return v
}

// Len returns the number of memoized entries.
func (c *ColorCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
