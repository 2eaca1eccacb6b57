package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/pkg/element"
	"github.com/inkpress/inkpress/pkg/errors"
	"github.com/inkpress/inkpress/pkg/render"
	"github.com/inkpress/inkpress/pkg/resource"
)

func textPage() element.Page {
	return element.Page{Content: []element.Element{
		element.NewText(element.Attrs{
			"x": 100.0, "y": 100.0, "font": "Arial", "size": 12.0,
		}, "Hello"),
	}}
}

func TestRenderSinglePage(t *testing.T) {
	d := element.NewDocument()
	d.AddPage(textPage())

	pdf, err := Render(d)
	require.NoError(t, err)

	// Catalog, font, content stream, page, pages collection.
	require.Equal(t, 5, strings.Count(pdf, " 0 obj"))
	require.True(t, strings.HasPrefix(pdf, "%PDF-1.4\n"))
	require.True(t, strings.HasSuffix(pdf, "%%EOF"))
	require.Contains(t, pdf, "/Size 6")
	require.Contains(t, pdf, "/Root 1 0 R")
	require.NotContains(t, pdf, "/Info", "empty metadata emits no info object")
	require.Contains(t, pdf, "/BaseFont /Helvetica")
	require.Contains(t, pdf, "/MediaBox [0 0 612 792]")
}

func TestXrefOffsets(t *testing.T) {
	d := element.NewDocument()
	d.Meta.Title = "Offsets"
	d.AddPage(textPage())
	d.AddPage(element.Page{Content: []element.Element{
		element.New(element.TagRect, element.Attrs{
			"x": 0.0, "y": 0.0, "width": 10.0, "height": 10.0,
		}),
	}})

	pdf, err := Render(d)
	require.NoError(t, err)

	// Every xref entry must point at the start of its object.
	entry := regexp.MustCompile(`(\d{10}) 00000 n `)
	matches := entry.FindAllStringSubmatch(pdf, -1)
	require.NotEmpty(t, matches)
	for i, m := range matches {
		off, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		prefix := fmt.Sprintf("%d 0 obj", i+1)
		require.Equal(t, prefix, pdf[off:off+len(prefix)], "object %d", i+1)
	}

	// startxref points at the xref keyword.
	tail := pdf[strings.LastIndex(pdf, "startxref\n")+len("startxref\n"):]
	xrefOff, err := strconv.Atoi(strings.Split(tail, "\n")[0])
	require.NoError(t, err)
	require.Equal(t, "xref\n", pdf[xrefOff:xrefOff+5])
}

func TestContentStreamLength(t *testing.T) {
	d := element.NewDocument()
	d.AddPage(textPage())

	pdf, err := Render(d)
	require.NoError(t, err)

	m := regexp.MustCompile(`<< /Length (\d+) >>\nstream\n`).FindStringSubmatchIndex(pdf)
	require.NotNil(t, m)
	length, _ := strconv.Atoi(pdf[m[2]:m[3]])
	body := pdf[m[1]:strings.Index(pdf, "\nendstream")]
	require.Equal(t, len(body)+1, length)
}

func TestInfoObject(t *testing.T) {
	d := element.NewDocument()
	d.Meta = element.Metadata{Title: "Report", Author: "QA"}
	d.AddPage(textPage())

	pdf, err := Render(d)
	require.NoError(t, err)

	require.Contains(t, pdf, "/Info 6 0 R")
	require.Contains(t, pdf, "/Size 7")
	require.Contains(t, pdf, "/Title (Report)")
	require.Contains(t, pdf, "/Author (QA)")
	require.Contains(t, pdf, "/Creator (inkpress)")
	require.Contains(t, pdf, "/Producer (inkpress)")
}

func TestFontDeduplication(t *testing.T) {
	d := element.NewDocument()
	page := element.Page{Content: []element.Element{
		element.NewText(element.Attrs{"x": 0.0, "y": 10.0, "font": "Arial", "size": 12.0}, "a"),
		element.NewText(element.Attrs{"x": 0.0, "y": 30.0, "font": "Times", "size": 12.0}, "b"),
		element.NewText(element.Attrs{"x": 0.0, "y": 50.0, "font": "Arial", "size": 14.0}, "c"),
	}}
	d.AddPage(page)
	d.AddPage(page)

	pdf, err := Render(d)
	require.NoError(t, err)

	// Two font objects shared across both pages.
	require.Equal(t, 1, strings.Count(pdf, "/BaseFont /Helvetica"))
	require.Equal(t, 1, strings.Count(pdf, "/BaseFont /Times-Roman"))
	require.Contains(t, pdf, "/Arial 2 0 R")
	require.Contains(t, pdf, "/Times 3 0 R")
}

func TestSpacedFontFamily(t *testing.T) {
	d := element.NewDocument()
	d.AddPage(element.Page{Content: []element.Element{
		element.NewText(element.Attrs{
			"x": 72.0, "y": 720.0, "font": "Times New Roman", "size": 12.0,
		}, "Hi"),
	}})

	pdf, err := Render(d)
	require.NoError(t, err)

	// The collapsed resource name flows from the content stream through
	// the font scan into the resource dict and font object.
	require.Contains(t, pdf, "/TimesNewRoman 12 Tf")
	require.Contains(t, pdf, "/TimesNewRoman 2 0 R")
	require.Contains(t, pdf, "/BaseFont /Times-Roman")
	require.NotContains(t, pdf, "/Times New Roman")
}

type stubProvider struct {
	img resource.Image
}

func (s stubProvider) Resolve(string) (resource.Image, error) {
	return s.img, nil
}

func TestImageXObjects(t *testing.T) {
	d := element.NewDocument()
	d.AddPage(element.Page{Content: []element.Element{
		element.New(element.TagImage, element.Attrs{
			"src": "logo.png", "x": 10.0, "y": 10.0, "width": 50.0, "height": 50.0,
		}),
	}})

	provider := stubProvider{img: resource.Image{Pixels: []byte{255, 0, 0}, Width: 1, Height: 1}}
	pdf, err := Render(d, WithProvider(provider))
	require.NoError(t, err)

	require.Contains(t, pdf, "/Subtype /Image")
	require.Contains(t, pdf, "/Filter /FlateDecode")
	require.Contains(t, pdf, "/ColorSpace /DeviceRGB")
	require.Contains(t, pdf, "/XObject << /"+render.ResourceName("logo.png")+" 5 0 R >>")
}

func TestImageWithoutProvider(t *testing.T) {
	d := element.NewDocument()
	d.AddPage(element.Page{Content: []element.Element{
		element.New(element.TagImage, element.Attrs{
			"src": "logo.png", "x": 0.0, "y": 0.0, "width": 1.0, "height": 1.0,
		}),
	}})

	_, err := Render(d)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrCodeResourceLoad))
}

func TestRenderPropagatesElementErrors(t *testing.T) {
	d := element.NewDocument()
	d.AddPage(element.Page{Content: []element.Element{
		element.New("widget", element.Attrs{}),
	}})

	_, err := Render(d)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrCodeUnknownElement))
}
