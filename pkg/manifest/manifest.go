// Package manifest parses TOML document descriptions.
//
// The manifest format mirrors the JSON wire grammar with TOML tables:
//
//	[document]
//	title = "Demo"
//	width = 612
//	height = 792
//
//	[[page]]
//
//	[[page.element]]
//	tag = "rect"
//	x = 10
//	y = 20
//	width = 100
//	height = 50
//	fill = "#ff0000"
//
// Nested elements (group children) use further [[page.element.element]]
// tables. Attribute validation is shared with the JSON importer, so a
// parsed manifest yields the same normalized document tree.
package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/inkpress/inkpress/pkg/element"
	"github.com/inkpress/inkpress/pkg/errors"
)

type manifestFile struct {
	Document documentTable `toml:"document"`
	Pages    []pageTable   `toml:"page"`
}

type documentTable struct {
	Title    string    `toml:"title"`
	Author   string    `toml:"author"`
	Subject  string    `toml:"subject"`
	Keywords string    `toml:"keywords"`
	Creator  string    `toml:"creator"`
	Producer string    `toml:"producer"`
	Width    *float64  `toml:"width"`
	Height   *float64  `toml:"height"`
	Margins  []float64 `toml:"margins"`
}

type pageTable struct {
	Width    *float64         `toml:"width"`
	Height   *float64         `toml:"height"`
	Margins  []float64        `toml:"margins"`
	Elements []map[string]any `toml:"element"`
}

// Parse decodes a TOML document description.
func Parse(data []byte) (*element.Document, error) {
	var mf manifestFile
	if err := toml.Unmarshal(data, &mf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode manifest")
	}

	d := element.NewDocument()
	d.Meta = element.Metadata{
		Title:    mf.Document.Title,
		Author:   mf.Document.Author,
		Subject:  mf.Document.Subject,
		Keywords: mf.Document.Keywords,
		Creator:  mf.Document.Creator,
		Producer: mf.Document.Producer,
	}
	if mf.Document.Width != nil {
		d.Width = *mf.Document.Width
	}
	if mf.Document.Height != nil {
		d.Height = *mf.Document.Height
	}
	if mf.Document.Margins != nil {
		m, err := marginsFrom(mf.Document.Margins)
		if err != nil {
			return nil, err
		}
		d.Margins = m
	}

	for i, pt := range mf.Pages {
		p, err := buildPage(pt)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "page %d", i+1)
		}
		d.AddPage(p)
	}
	return d, nil
}

// Load reads and parses a TOML manifest file at path.
func Load(path string) (*element.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

func buildPage(pt pageTable) (element.Page, error) {
	p := element.Page{Width: pt.Width, Height: pt.Height}
	if pt.Margins != nil {
		m, err := marginsFrom(pt.Margins)
		if err != nil {
			return element.Page{}, err
		}
		p.Margins = &m
	}
	for _, raw := range pt.Elements {
		el, err := buildElement(raw)
		if err != nil {
			return element.Page{}, err
		}
		p.Content = append(p.Content, el)
	}
	return p, nil
}

// buildElement converts one element table into a validated element.
// The "tag", "text", and nested "element" keys are structural; every
// other key is an attribute.
func buildElement(raw map[string]any) (element.Element, error) {
	tag, ok := raw["tag"].(string)
	if !ok || tag == "" {
		return element.Element{}, errors.New(errors.ErrCodeInvalidManifest,
			"element table is missing its tag")
	}
	text, _ := raw["text"].(string)

	var children []element.Element
	if nested, ok := raw["element"].([]map[string]any); ok {
		for _, c := range nested {
			child, err := buildElement(c)
			if err != nil {
				return element.Element{}, err
			}
			children = append(children, child)
		}
	}

	attrs := make(element.Attrs, len(raw))
	for k, v := range raw {
		if k == "tag" || k == "text" || k == "element" {
			continue
		}
		attrs[k] = v
	}
	normalized, err := element.Validate(element.Tag(tag), attrs)
	if err != nil {
		return element.Element{}, err
	}
	return element.Element{Tag: element.Tag(tag), Attrs: normalized, Text: text, Children: children}, nil
}

func marginsFrom(vals []float64) (element.Margins, error) {
	if len(vals) != 4 {
		return element.Margins{}, errors.New(errors.ErrCodeInvalidManifest,
			"margins must be a 4-element [top, right, bottom, left] tuple, got %d values", len(vals))
	}
	return element.Margins{vals[0], vals[1], vals[2], vals[3]}, nil
}
