package render

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/inkpress/inkpress/pkg/element"
	"github.com/inkpress/inkpress/pkg/errors"
	"github.com/inkpress/inkpress/pkg/fonts"
)

// kappa is the Bezier control offset ratio approximating a quarter circle
// with one cubic curve.
const kappa = 0.552284749831

// Option configures a Renderer.
type Option func(*Renderer)

// WithColorCache injects a shared color cache. Pass nil to disable
// memoization entirely; output is identical either way.
func WithColorCache(c *ColorCache) Option {
	return func(r *Renderer) { r.colors = c }
}

// Renderer emits PDF content-stream operators for element trees.
// The zero-value-adjacent NewRenderer form owns a private color cache.
type Renderer struct {
	colors *ColorCache
}

// NewRenderer creates a renderer with a fresh color cache unless options
// say otherwise.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{colors: NewColorCache()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render maps one element (and, for groups, its subtree) to an operator
// string. Attributes are validated before any emission; the first error
// aborts the whole render with no partial output.
func (r *Renderer) Render(el element.Element) (string, error) {
	var b strings.Builder
	if err := r.render(&b, el); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (r *Renderer) render(b *strings.Builder, el element.Element) error {
	switch el.Tag {
	case element.TagRect:
		return r.renderRect(b, el)
	case element.TagCircle:
		return r.renderCircle(b, el)
	case element.TagLine:
		return r.renderLine(b, el)
	case element.TagText:
		return r.renderText(b, el)
	case element.TagPath:
		return r.renderPath(b, el)
	case element.TagGroup:
		return r.renderGroup(b, el)
	case element.TagImage:
		return r.renderImage(b, el)
	case element.TagEmoji:
		return r.renderEmoji(b, el)
	case element.TagDocument, element.TagPage:
		return errors.New(errors.ErrCodeStructural,
			"%s elements cannot appear inside page content", el.Tag)
	}
	return errors.New(errors.ErrCodeUnknownElement, "unknown element tag: %s", el.Tag)
}

// styling writes the optional stroke-width, fill-color, and stroke-color
// operators shared by rect, circle, and path, and reports which of
// fill/stroke were present.
func (r *Renderer) styling(b *strings.Builder, attrs element.Attrs) (hasFill, hasStroke bool) {
	if w, ok := attrs.Number("stroke_width"); ok {
		b.WriteString(num(w))
		b.WriteString(" w\n")
	}
	if fill, ok := attrs.String("fill"); ok {
		b.WriteString(r.colors.RGB(fill))
		b.WriteString(" rg\n")
		hasFill = true
	}
	if stroke, ok := attrs.String("stroke"); ok {
		b.WriteString(r.colors.RGB(stroke))
		b.WriteString(" RG\n")
		hasStroke = true
	}
	return hasFill, hasStroke
}

// drawOp selects the painting operator: fill and stroke together paint
// with B, stroke alone with S, and everything else with f. The no-style
// default f paints with whatever fill color is active in the surrounding
// graphics state.
func drawOp(hasFill, hasStroke bool) string {
	switch {
	case hasFill && hasStroke:
		return "B"
	case hasStroke:
		return "S"
	default:
		return "f"
	}
}

func (r *Renderer) renderRect(b *strings.Builder, el element.Element) error {
	attrs, err := element.Validate(el.Tag, el.Attrs)
	if err != nil {
		return err
	}
	hasFill, hasStroke := r.styling(b, attrs)
	x, _ := attrs.Number("x")
	y, _ := attrs.Number("y")
	w, _ := attrs.Number("width")
	h, _ := attrs.Number("height")
	b.WriteString(num(x) + " " + num(y) + " " + num(w) + " " + num(h) + " re\n")
	b.WriteString(drawOp(hasFill, hasStroke))
	return nil
}

func (r *Renderer) renderCircle(b *strings.Builder, el element.Element) error {
	attrs, err := element.Validate(el.Tag, el.Attrs)
	if err != nil {
		return err
	}
	hasFill, hasStroke := r.styling(b, attrs)
	cx, _ := attrs.Number("cx")
	cy, _ := attrs.Number("cy")
	radius, _ := attrs.Number("r")
	writeCirclePath(b, cx, cy, radius)
	b.WriteString(drawOp(hasFill, hasStroke))
	return nil
}

// writeCirclePath approximates a circle with four cubic Bezier arcs,
// starting at the top and proceeding clockwise in PDF space. A zero
// radius still produces the full well-formed (degenerate) sequence.
func writeCirclePath(b *strings.Builder, cx, cy, r float64) {
	k := r * kappa
	b.WriteString(num(cx) + " " + num(cy+r) + " m\n")
	writeCurve(b, cx+k, cy+r, cx+r, cy+k, cx+r, cy)
	writeCurve(b, cx+r, cy-k, cx+k, cy-r, cx, cy-r)
	writeCurve(b, cx-k, cy-r, cx-r, cy-k, cx-r, cy)
	writeCurve(b, cx-r, cy+k, cx-k, cy+r, cx, cy+r)
}

func writeCurve(b *strings.Builder, x1, y1, x2, y2, x3, y3 float64) {
	b.WriteString(num(x1) + " " + num(y1) + " " +
		num(x2) + " " + num(y2) + " " +
		num(x3) + " " + num(y3) + " c\n")
}

func (r *Renderer) renderLine(b *strings.Builder, el element.Element) error {
	attrs, err := element.Validate(el.Tag, el.Attrs)
	if err != nil {
		return err
	}
	if w, ok := attrs.Number("stroke_width"); ok {
		b.WriteString(num(w))
		b.WriteString(" w\n")
	}
	// Lines always stroke; an unspecified color is explicit black.
	stroke, ok := attrs.String("stroke")
	if !ok {
		b.WriteString("0 0 0 RG\n")
	} else {
		b.WriteString(r.colors.RGB(stroke))
		b.WriteString(" RG\n")
	}
	x1, _ := attrs.Number("x1")
	y1, _ := attrs.Number("y1")
	x2, _ := attrs.Number("x2")
	y2, _ := attrs.Number("y2")
	b.WriteString(num(x1) + " " + num(y1) + " m\n")
	b.WriteString(num(x2) + " " + num(y2) + " l\n")
	b.WriteString("S")
	return nil
}

func (r *Renderer) renderText(b *strings.Builder, el element.Element) error {
	attrs, err := element.Validate(el.Tag, el.Attrs)
	if err != nil {
		return err
	}
	if len(el.Children) > 0 {
		return errors.New(errors.ErrCodeStructural,
			"text elements take string content, not children")
	}
	fill := "0 0 0"
	if tok, ok := attrs.String("fill"); ok {
		fill = r.colors.RGB(tok)
	}
	font, _ := attrs.String("font")
	size, _ := attrs.Number("size")
	x, _ := attrs.Number("x")
	y, _ := attrs.Number("y")

	b.WriteString("BT\n")
	b.WriteString(fill + " rg\n")
	b.WriteString("/" + fonts.ResourceName(font) + " " + num(size) + " Tf\n")
	b.WriteString(num(x) + " " + num(y) + " Td\n")
	b.WriteString(EncodeText(el.Text) + " Tj\n")
	b.WriteString("ET")
	return nil
}

func (r *Renderer) renderPath(b *strings.Builder, el element.Element) error {
	attrs, err := element.Validate(el.Tag, el.Attrs)
	if err != nil {
		return err
	}
	hasFill, hasStroke := r.styling(b, attrs)
	d, _ := attrs.String("d")
	b.WriteString(ParsePathData(d))
	b.WriteString(drawOp(hasFill, hasStroke))
	return nil
}

func (r *Renderer) renderGroup(b *strings.Builder, el element.Element) error {
	attrs, err := element.Validate(el.Tag, el.Attrs)
	if err != nil {
		return err
	}
	parts := []string{"q"}
	if ts, ok := attrs.Transforms(); ok && len(ts) > 0 {
		m, err := Compose(ts)
		if err != nil {
			return err
		}
		parts = append(parts, m.String()+" cm")
	}
	for _, child := range el.Children {
		var cb strings.Builder
		if err := r.render(&cb, child); err != nil {
			return err
		}
		parts = append(parts, cb.String())
	}
	parts = append(parts, "Q")
	b.WriteString(strings.Join(parts, "\n"))
	return nil
}

// renderImage places an image XObject: the unit square is scaled to the
// requested box and the named resource is painted with Do. The bytes
// behind the name come from the resource provider during document
// assembly.
func (r *Renderer) renderImage(b *strings.Builder, el element.Element) error {
	attrs, err := element.Validate(el.Tag, el.Attrs)
	if err != nil {
		return err
	}
	src, _ := attrs.String("src")
	x, _ := attrs.Number("x")
	y, _ := attrs.Number("y")
	w, _ := attrs.Number("width")
	h, _ := attrs.Number("height")
	writeXObject(b, ResourceName(src), x, y, w, h)
	return nil
}

// renderEmoji places an emoji image resource resolved from its shortcode,
// drawn as a square of the requested size.
func (r *Renderer) renderEmoji(b *strings.Builder, el element.Element) error {
	attrs, err := element.Validate(el.Tag, el.Attrs)
	if err != nil {
		return err
	}
	code, _ := attrs.String("code")
	x, _ := attrs.Number("x")
	y, _ := attrs.Number("y")
	size, _ := attrs.Number("size")
	writeXObject(b, ResourceName(EmojiKey(code)), x, y, size, size)
	return nil
}

func writeXObject(b *strings.Builder, name string, x, y, w, h float64) {
	b.WriteString("q\n")
	b.WriteString(num(w) + " 0 0 " + num(h) + " " + num(x) + " " + num(y) + " cm\n")
	b.WriteString("/" + name + " Do\n")
	b.WriteString("Q")
}

// ResourceName derives the stable content-stream resource name for an
// image key. The renderer and the document assembler must agree on this
// mapping, so it is a pure function of the key.
func ResourceName(key string) string {
	sum := sha256.Sum256([]byte(key))
	return "Im" + hex.EncodeToString(sum[:4])
}

// EmojiKey is the resource key for an emoji shortcode.
func EmojiKey(code string) string {
	return "emoji:" + strings.Trim(code, ":")
}

// ImageKeys walks an element tree and returns the resource keys of every
// image and emoji element in depth-first order, without duplicates.
func ImageKeys(els ...element.Element) []string {
	var keys []string
	seen := make(map[string]bool)
	var walk func(element.Element)
	walk = func(el element.Element) {
		switch el.Tag {
		case element.TagImage:
			if src, ok := el.Attrs.String("src"); ok && !seen[src] {
				seen[src] = true
				keys = append(keys, src)
			}
		case element.TagEmoji:
			if code, ok := el.Attrs.String("code"); ok {
				key := EmojiKey(code)
				if !seen[key] {
					seen[key] = true
					keys = append(keys, key)
				}
			}
		}
		for _, c := range el.Children {
			walk(c)
		}
	}
	for _, el := range els {
		walk(el)
	}
	return keys
}
