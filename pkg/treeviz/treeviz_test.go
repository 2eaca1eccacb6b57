package treeviz

import (
	"strings"
	"testing"

	"github.com/inkpress/inkpress/pkg/element"
)

func demoDoc() *element.Document {
	d := element.NewDocument()
	d.Meta.Title = "Demo"
	d.AddPage(element.Page{Content: []element.Element{
		element.New(element.TagRect, element.Attrs{
			"x": 10.0, "y": 20.0, "width": 100.0, "height": 50.0,
		}),
		element.New(element.TagGroup, nil,
			element.NewText(element.Attrs{"x": 0.0, "y": 0.0, "font": "Arial", "size": 12.0}, "hi"),
		),
	}})
	return d
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(demoDoc(), Options{})

	for _, want := range []string{
		"digraph document {",
		`label="document"`,
		`label="page 1"`,
		`label="rect"`,
		`label="group"`,
		`label="text"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// Group children hang off the group node, pages off the document.
	if strings.Count(dot, " -> ") != 4 {
		t.Errorf("expected 4 edges, got %d:\n%s", strings.Count(dot, " -> "), dot)
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT not terminated")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(demoDoc(), Options{Detailed: true})

	if !strings.Contains(dot, "612x792") {
		t.Errorf("detailed labels should include geometry:\n%s", dot)
	}
	if !strings.Contains(dot, "width: 100") {
		t.Errorf("detailed labels should include attributes:\n%s", dot)
	}
	if !strings.Contains(dot, `\"hi\"`) {
		t.Errorf("detailed labels should include text runs:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	d := demoDoc()
	first := ToDOT(d, Options{Detailed: true})
	for i := 0; i < 3; i++ {
		if ToDOT(d, Options{Detailed: true}) != first {
			t.Fatal("DOT output changed between calls")
		}
	}
}
