// Package treeviz renders element trees as Graphviz diagrams for
// inspection and debugging.
//
// The diagram shows the document structure (document → pages →
// elements) rather than the rendered output: each node is one element
// with an optional attribute summary.
package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/inkpress/inkpress/pkg/element"
)

// Options configures tree diagram rendering.
type Options struct {
	// Detailed includes attribute values in node labels.
	// When false, only the element tag is shown.
	Detailed bool
}

// ToDOT converts a document tree to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG] or
// [RenderPNG].
func ToDOT(d *element.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph document {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	id := 0
	next := func() string {
		id++
		return fmt.Sprintf("n%d", id)
	}

	root := next()
	fmt.Fprintf(&buf, "  %s [label=%q, fillcolor=lightblue];\n", root, docLabel(d, opts.Detailed))

	var emit func(parent string, el element.Element)
	emit = func(parent string, el element.Element) {
		n := next()
		fmt.Fprintf(&buf, "  %s [%s];\n", n, strings.Join(nodeAttrs(el, opts.Detailed), ", "))
		fmt.Fprintf(&buf, "  %s -> %s;\n", parent, n)
		for _, c := range el.Children {
			emit(n, c)
		}
	}

	for i, p := range d.Pages {
		pn := next()
		fmt.Fprintf(&buf, "  %s [label=%q, fillcolor=lightgrey];\n", pn, pageLabel(d, p, i, opts.Detailed))
		fmt.Fprintf(&buf, "  %s -> %s;\n", root, pn)
		for _, el := range p.Content {
			emit(pn, el)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func docLabel(d *element.Document, detailed bool) string {
	if !detailed {
		return "document"
	}
	label := fmt.Sprintf("document\n%gx%g", d.Width, d.Height)
	if d.Meta.Title != "" {
		label += "\n" + d.Meta.Title
	}
	return label
}

func pageLabel(d *element.Document, p element.Page, i int, detailed bool) string {
	if !detailed {
		return fmt.Sprintf("page %d", i+1)
	}
	w, h, _ := d.PageGeometry(p)
	return fmt.Sprintf("page %d\n%gx%g", i+1, w, h)
}

func nodeAttrs(el element.Element, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(el, detailed))}
	if el.Tag == element.TagGroup {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

func nodeLabel(el element.Element, detailed bool) string {
	if !detailed {
		return string(el.Tag)
	}
	parts := []string{string(el.Tag)}
	for _, k := range slices.Sorted(maps.Keys(el.Attrs)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, el.Attrs[k]))
	}
	if el.Text != "" {
		parts = append(parts, fmt.Sprintf("%q", el.Text))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT diagram to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT diagram to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
