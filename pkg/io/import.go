package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/inkpress/inkpress/pkg/element"
	"github.com/inkpress/inkpress/pkg/errors"
)

// node is one element in the wire grammar ["tag", {attrs}, ...children].
type node struct {
	Tag      string
	Attrs    map[string]any
	Text     string
	Children []node
}

func (n *node) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "element must be a JSON array")
	}
	if len(raw) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "element array is empty")
	}
	if err := json.Unmarshal(raw[0], &n.Tag); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "element tag must be a string")
	}

	rest := raw[1:]
	n.Attrs = map[string]any{}
	if len(rest) > 0 && firstByte(rest[0]) == '{' {
		if err := json.Unmarshal(rest[0], &n.Attrs); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s attributes", n.Tag)
		}
		rest = rest[1:]
	}

	for _, c := range rest {
		if firstByte(c) == '"' {
			if err := json.Unmarshal(c, &n.Text); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s text content", n.Tag)
			}
			continue
		}
		var child node
		if err := json.Unmarshal(c, &child); err != nil {
			return err
		}
		n.Children = append(n.Children, child)
	}
	return nil
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// ReadJSON decodes a document description from r.
//
// The top-level element must be a "document"; its children must be
// "page" elements whose children form the page content. Every
// attribute map is validated against the element schema, so the
// returned document is fully normalized: numbers widened to float64,
// transform lists parsed, margin tuples typed.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*element.Document, error) {
	var root node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, err
	}
	return buildDocument(root)
}

// ImportJSON reads a document description from a file at path.
func ImportJSON(path string) (*element.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func buildDocument(n node) (*element.Document, error) {
	if n.Tag != string(element.TagDocument) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"top-level element must be %q, got %q", element.TagDocument, n.Tag)
	}
	attrs, err := element.Validate(element.TagDocument, n.Attrs)
	if err != nil {
		return nil, err
	}

	d := element.NewDocument()
	if w, ok := attrs.Number("width"); ok {
		d.Width = w
	}
	if h, ok := attrs.Number("height"); ok {
		d.Height = h
	}
	if m, ok := attrs["margins"].(element.Margins); ok {
		d.Margins = m
	}
	d.Meta = metadataFrom(attrs)

	for _, c := range n.Children {
		p, err := buildPage(c)
		if err != nil {
			return nil, err
		}
		d.AddPage(p)
	}
	return d, nil
}

func metadataFrom(attrs element.Attrs) element.Metadata {
	str := func(k string) string {
		s, _ := attrs.String(k)
		return s
	}
	return element.Metadata{
		Title:    str("title"),
		Author:   str("author"),
		Subject:  str("subject"),
		Keywords: str("keywords"),
		Creator:  str("creator"),
		Producer: str("producer"),
	}
}

func buildPage(n node) (element.Page, error) {
	if n.Tag != string(element.TagPage) {
		return element.Page{}, errors.New(errors.ErrCodeInvalidInput,
			"document children must be %q elements, got %q", element.TagPage, n.Tag)
	}
	attrs, err := element.Validate(element.TagPage, n.Attrs)
	if err != nil {
		return element.Page{}, err
	}

	var p element.Page
	if w, ok := attrs.Number("width"); ok {
		p.Width = &w
	}
	if h, ok := attrs.Number("height"); ok {
		p.Height = &h
	}
	if m, ok := attrs["margins"].(element.Margins); ok {
		p.Margins = &m
	}
	for _, c := range n.Children {
		el, err := buildElement(c)
		if err != nil {
			return element.Page{}, err
		}
		p.Content = append(p.Content, el)
	}
	return p, nil
}

func buildElement(n node) (element.Element, error) {
	tag := element.Tag(n.Tag)
	attrs, err := element.Validate(tag, n.Attrs)
	if err != nil {
		return element.Element{}, err
	}
	el := element.Element{Tag: tag, Attrs: attrs, Text: n.Text}
	for _, c := range n.Children {
		child, err := buildElement(c)
		if err != nil {
			return element.Element{}, err
		}
		el.Children = append(el.Children, child)
	}
	return el, nil
}
