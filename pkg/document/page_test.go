package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/pkg/element"
	"github.com/inkpress/inkpress/pkg/render"
)

func TestAssemblePage(t *testing.T) {
	d := element.NewDocument()
	p := element.Page{Content: []element.Element{
		element.New(element.TagRect, element.Attrs{
			"x": 10.0, "y": 20.0, "width": 100.0, "height": 50.0, "fill": "#ff0000",
		}),
		element.NewText(element.Attrs{
			"x": 100.0, "y": 100.0, "font": "Arial", "size": 12.0,
		}, "Hello"),
	}}

	rp, err := AssemblePage(d, p, render.NewRenderer())
	require.NoError(t, err)
	require.Equal(t, 612.0, rp.Width)
	require.Equal(t, 792.0, rp.Height)
	require.Equal(t, 2, rp.ElementCount)
	require.False(t, rp.HasTransforms)
	require.Equal(t, []string{"Arial"}, rp.Fonts)
	require.Empty(t, rp.Images)

	// Rect rendered with the flipped y: (792 - 20) - 50 = 722.
	require.Contains(t, rp.ContentStream, "10 722 100 50 re")
	// Text baseline flipped: 792 - 100 = 692.
	require.Contains(t, rp.ContentStream, "100 692 Td")
	// Fragments joined with a single newline.
	require.Equal(t, 1, strings.Count(rp.ContentStream, "f\nBT"))
}

func TestAssemblePageGeometryOverride(t *testing.T) {
	d := element.NewDocument()
	w, h := 200.0, 400.0
	p := element.Page{Width: &w, Height: &h, Content: []element.Element{
		element.New(element.TagCircle, element.Attrs{"cx": 0.0, "cy": 0.0, "r": 5.0}),
	}}

	rp, err := AssemblePage(d, p, render.NewRenderer())
	require.NoError(t, err)
	require.Equal(t, 200.0, rp.Width)

	// The flip uses the page's own height: cy 0 becomes 400, the path
	// starts at the top of the circle.
	require.Contains(t, rp.ContentStream, "0 405 m")
}

func TestAssemblePageCountsNested(t *testing.T) {
	d := element.NewDocument()
	p := element.Page{Content: []element.Element{
		element.New(element.TagGroup,
			element.Attrs{element.AttrTransforms: []element.Transform{element.Translate(10, 10)}},
			element.New(element.TagLine, element.Attrs{"x1": 0.0, "y1": 0.0, "x2": 1.0, "y2": 1.0}),
			element.New(element.TagLine, element.Attrs{"x1": 1.0, "y1": 1.0, "x2": 2.0, "y2": 2.0}),
		),
	}}

	rp, err := AssemblePage(d, p, render.NewRenderer())
	require.NoError(t, err)
	require.Equal(t, 3, rp.ElementCount)
	require.True(t, rp.HasTransforms)
}

func TestScanFonts(t *testing.T) {
	stream := "BT\n/Arial 12 Tf\nET\nBT\n/Times 10.5 Tf\nET\nBT\n/Arial 14 Tf\nET"
	require.Equal(t, []string{"Arial", "Times"}, scanFonts(stream))
	require.Nil(t, scanFonts("10 20 100 50 re\nf"))
}
