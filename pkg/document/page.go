// Package document assembles rendered pages into complete PDF files.
//
// The render package turns individual elements into content-stream
// fragments; this package owns everything above that level: page
// geometry resolution, the web-to-PDF coordinate flip, object
// numbering, the cross-reference table and the trailer. Output is a
// byte-exact PDF 1.4 file with a classic xref table.
package document

import (
	"regexp"
	"strings"

	"github.com/inkpress/inkpress/pkg/element"
	"github.com/inkpress/inkpress/pkg/render"
)

// RenderedPage is a fully rendered page: resolved geometry plus the
// finished content stream and the resources it references.
type RenderedPage struct {
	Width         float64
	Height        float64
	Margins       element.Margins
	ContentStream string
	ElementCount  int
	HasTransforms bool
	Fonts         []string
	Images        []string
}

// fontRefPattern matches the font selection operator emitted by the
// text renderer. The captured group is the family name used in the
// page's resource dictionary.
var fontRefPattern = regexp.MustCompile(`/(\S+) [0-9.]+ Tf`)

// AssemblePage resolves a page's geometry against the document, flips
// its content into PDF coordinate space and renders it into a single
// content stream.
func AssemblePage(d *element.Document, p element.Page, r *render.Renderer) (RenderedPage, error) {
	width, height, margins := d.PageGeometry(p)

	out := RenderedPage{
		Width:   width,
		Height:  height,
		Margins: margins,
		Images:  render.ImageKeys(p.Content...),
	}

	parts := make([]string, 0, len(p.Content))
	for _, el := range p.Content {
		flipped := render.FlipY(el, height)
		frag, err := r.Render(flipped)
		if err != nil {
			return RenderedPage{}, err
		}
		parts = append(parts, frag)
		out.ElementCount += el.Count()
		if el.HasTransforms() {
			out.HasTransforms = true
		}
	}
	out.ContentStream = strings.Join(parts, "\n")
	out.Fonts = scanFonts(out.ContentStream)
	return out, nil
}

// scanFonts extracts the font family names referenced by a content
// stream, in first-use order.
func scanFonts(stream string) []string {
	var fonts []string
	seen := make(map[string]bool)
	for _, m := range fontRefPattern.FindAllStringSubmatch(stream, -1) {
		if name := m[1]; !seen[name] {
			seen[name] = true
			fonts = append(fonts, name)
		}
	}
	return fonts
}
