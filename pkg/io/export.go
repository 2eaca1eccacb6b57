package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/inkpress/inkpress/pkg/element"
)

func (n node) MarshalJSON() ([]byte, error) {
	arr := make([]any, 0, 2+len(n.Children)+1)
	attrs := n.Attrs
	if attrs == nil {
		attrs = map[string]any{}
	}
	arr = append(arr, n.Tag, attrs)
	if n.Text != "" {
		arr = append(arr, n.Text)
	}
	for _, c := range n.Children {
		arr = append(arr, c)
	}
	return json.Marshal(arr)
}

// WriteJSON encodes a document in the wire grammar and writes it to w.
// Geometry and metadata that match the zero defaults are omitted, so a
// freshly imported document round-trips to equivalent output.
func WriteJSON(d *element.Document, w io.Writer) error {
	root := node{Tag: string(element.TagDocument), Attrs: documentAttrs(d)}
	for _, p := range d.Pages {
		root.Children = append(root.Children, pageNode(p))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a document description to a JSON file at path.
func ExportJSON(d *element.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

func documentAttrs(d *element.Document) map[string]any {
	attrs := map[string]any{}
	if d.Width != element.DefaultWidth {
		attrs["width"] = d.Width
	}
	if d.Height != element.DefaultHeight {
		attrs["height"] = d.Height
	}
	if d.Margins != (element.Margins{}) {
		attrs["margins"] = d.Margins
	}
	for k, v := range map[string]string{
		"title":    d.Meta.Title,
		"author":   d.Meta.Author,
		"subject":  d.Meta.Subject,
		"keywords": d.Meta.Keywords,
		"creator":  d.Meta.Creator,
		"producer": d.Meta.Producer,
	} {
		if v != "" {
			attrs[k] = v
		}
	}
	return attrs
}

func pageNode(p element.Page) node {
	attrs := map[string]any{}
	if p.Width != nil {
		attrs["width"] = *p.Width
	}
	if p.Height != nil {
		attrs["height"] = *p.Height
	}
	if p.Margins != nil {
		attrs["margins"] = *p.Margins
	}
	n := node{Tag: string(element.TagPage), Attrs: attrs}
	for _, el := range p.Content {
		n.Children = append(n.Children, elementNode(el))
	}
	return n
}

func elementNode(el element.Element) node {
	n := node{Tag: string(el.Tag), Attrs: el.Attrs, Text: el.Text}
	for _, c := range el.Children {
		n.Children = append(n.Children, elementNode(c))
	}
	return n
}
