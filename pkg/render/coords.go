package render

import "github.com/inkpress/inkpress/pkg/element"

// FlipY rewrites an element tree from web coordinates (origin top-left,
// y-down) to PDF coordinates (origin bottom-left, y-up) for a page of the
// given height. The input is never mutated; a rewritten copy is returned.
//
// Per-tag rules:
//
//   - rect: y becomes (H - y) - height (y was the top edge)
//   - circle: cy becomes H - cy
//   - line: y1 and y2 each become H - y
//   - text: y becomes H - y
//   - path: untouched; "d" strings are authored in PDF space
//   - group: only the y component of translate transforms is rewritten;
//     rotate and scale pass through; children are recursed into
//   - anything else: passed through unchanged
//
// Margins deliberately play no part here: the flip uses page height only,
// and margins affect the MediaBox origin during document assembly.
func FlipY(el element.Element, pageHeight float64) element.Element {
	switch el.Tag {
	case element.TagRect:
		return withNumber(el, "y", func(a element.Attrs, y float64) {
			if h, ok := a.Number("height"); ok {
				a["y"] = (pageHeight - y) - h
			}
		})
	case element.TagCircle:
		return withNumber(el, "cy", func(a element.Attrs, cy float64) {
			a["cy"] = pageHeight - cy
		})
	case element.TagLine:
		out := withNumber(el, "y1", func(a element.Attrs, y1 float64) {
			a["y1"] = pageHeight - y1
		})
		return withNumber(out, "y2", func(a element.Attrs, y2 float64) {
			a["y2"] = pageHeight - y2
		})
	case element.TagText, element.TagImage, element.TagEmoji:
		return withNumber(el, "y", func(a element.Attrs, y float64) {
			a["y"] = pageHeight - y
		})
	case element.TagGroup:
		out := el
		out.Attrs = el.Attrs.Clone()
		if ts, ok := out.Attrs.Transforms(); ok {
			flipped := make([]element.Transform, len(ts))
			for i, t := range ts {
				if t.Op == element.OpTranslate && len(t.Args) == 2 {
					t = element.Translate(t.Args[0], pageHeight-t.Args[1])
				}
				flipped[i] = t
			}
			out.Attrs[element.AttrTransforms] = flipped
		}
		if len(el.Children) > 0 {
			out.Children = make([]element.Element, len(el.Children))
			for i, c := range el.Children {
				out.Children[i] = FlipY(c, pageHeight)
			}
		}
		return out
	}
	return el
}

// withNumber copies el's attributes and applies fn when the named
// attribute is numeric; non-numeric or absent values pass through for the
// validator to reject later.
func withNumber(el element.Element, key string, fn func(element.Attrs, float64)) element.Element {
	v, ok := el.Attrs.Number(key)
	if !ok {
		return el
	}
	out := el
	out.Attrs = el.Attrs.Clone()
	fn(out.Attrs, v)
	return out
}
