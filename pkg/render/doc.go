// Package render turns declarative vector-graphics elements into raw PDF
// content-stream operators.
//
// # Overview
//
// The renderer is a pure function over an [element.Element] tree: the same
// input always produces a byte-identical operator string. It composes five
// small engines:
//
//   - Color conversion: "#rrggbb" or named tokens → "r g b" triples
//   - Text encoding: Unicode strings → PDF string literals
//   - Transform composition: ordered transform lists → one affine matrix
//   - Path data parsing: SVG-style "d" strings → PDF path operators
//   - Per-tag operator emission with exhaustive dispatch
//
// # Usage
//
//	r := render.NewRenderer()
//	ops, err := r.Render(element.New(element.TagRect, element.Attrs{
//	    "x": 10.0, "y": 20.0, "width": 100.0, "height": 50.0,
//	    "fill": "#ff0000",
//	}))
//	// ops == "1 0 0 rg\n10 20 100 50 re\nf"
//
// The returned operator string is raw content-stream material; wrapping it
// in a stream object, page dictionary, and cross-reference table is the
// job of the document package.
//
// # Coordinate spaces
//
// Input trees are usually authored in web coordinates (origin top-left,
// y-down). [FlipY] rewrites a tree into PDF coordinates (origin
// bottom-left, y-up) given the page height; path "d" strings are expected
// to be authored in PDF space already and pass through untouched.
//
// # Purity and caching
//
// The only mutable state is the optional color cache, which is a pure
// memo: disabling it never changes output, only speed. Rendering holds no
// other state and is safe for concurrent use when each goroutine owns its
// own cache (or the shared cache is used, which locks internally).
package render
