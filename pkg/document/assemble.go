package document

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"strconv"
	"strings"

	"github.com/inkpress/inkpress/pkg/element"
	"github.com/inkpress/inkpress/pkg/errors"
	"github.com/inkpress/inkpress/pkg/fonts"
	"github.com/inkpress/inkpress/pkg/render"
	"github.com/inkpress/inkpress/pkg/resource"
)

const header = "%PDF-1.4"

// assembler carries the optional collaborators wired in through
// options.
type assembler struct {
	renderer *render.Renderer
	provider resource.Provider
}

// Option configures document assembly.
type Option func(*assembler)

// WithProvider wires a resource provider for image and emoji payloads.
// Documents that reference images fail to assemble without one.
func WithProvider(p resource.Provider) Option {
	return func(a *assembler) {
		a.provider = p
	}
}

// WithRenderer substitutes the element renderer used for page content.
func WithRenderer(r *render.Renderer) Option {
	return func(a *assembler) {
		a.renderer = r
	}
}

// Render turns a document tree into a complete PDF file.
func Render(d *element.Document, opts ...Option) (string, error) {
	a := newAssembler(opts)
	pages := make([]RenderedPage, 0, len(d.Pages))
	for _, p := range d.Pages {
		rp, err := AssemblePage(d, p, a.renderer)
		if err != nil {
			return "", err
		}
		pages = append(pages, rp)
	}
	return a.assemble(d.Meta, pages)
}

// Assemble builds a PDF file from already rendered pages.
func Assemble(meta element.Metadata, pages []RenderedPage, opts ...Option) (string, error) {
	return newAssembler(opts).assemble(meta, pages)
}

func newAssembler(opts []Option) *assembler {
	a := &assembler{renderer: render.NewRenderer(render.WithColorCache(render.NewColorCache()))}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// assemble lays out the object table and serializes the file. Object
// numbering is fixed: the catalog is object 1, followed by one font
// object per distinct family in first-use order, one content stream
// per page, one page object per page, the pages collection, the
// optional info dictionary and finally any image XObjects.
func (a *assembler) assemble(meta element.Metadata, pages []RenderedPage) (string, error) {
	fontOrder, fontObj := numberFonts(pages)

	nFonts := len(fontOrder)
	nPages := len(pages)
	contentObj := func(i int) int { return 2 + nFonts + i }
	pageObj := func(i int) int { return 2 + nFonts + nPages + i }
	pagesObj := 2 + nFonts + 2*nPages
	infoObj := 0
	if !meta.Empty() {
		infoObj = pagesObj + 1
	}

	imageOrder, imageObj, err := a.numberImages(pages, pagesObj, infoObj)
	if err != nil {
		return "", err
	}

	var objects []string
	objects = append(objects, obj(1, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesObj)))
	for _, family := range fontOrder {
		body := fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /%s >>", fonts.BaseFont(family))
		objects = append(objects, obj(fontObj[family], body))
	}
	for i, p := range pages {
		objects = append(objects, streamObj(contentObj(i), "<< /Length %d >>", p.ContentStream))
	}
	for i, p := range pages {
		objects = append(objects, obj(pageObj(i), pageDict(p, pagesObj, contentObj(i), fontObj, imageObj)))
	}
	objects = append(objects, obj(pagesObj, pagesDict(pages, pageObj)))
	if infoObj != 0 {
		objects = append(objects, obj(infoObj, infoDict(meta)))
	}
	for _, key := range imageOrder {
		img, err := a.provider.Resolve(key)
		if err != nil {
			return "", err
		}
		objects = append(objects, imageXObject(imageObj[key], img))
	}

	return serialize(objects, infoObj), nil
}

// numberFonts assigns object numbers to the distinct font families
// used across all pages, in first-use order, starting at object 2.
func numberFonts(pages []RenderedPage) ([]string, map[string]int) {
	var order []string
	objs := make(map[string]int)
	for _, p := range pages {
		for _, family := range p.Fonts {
			if _, ok := objs[family]; !ok {
				objs[family] = 2 + len(order)
				order = append(order, family)
			}
		}
	}
	return order, objs
}

// numberImages assigns object numbers to the distinct image resource
// keys, after every other object in the file.
func (a *assembler) numberImages(pages []RenderedPage, pagesObj, infoObj int) ([]string, map[string]int, error) {
	var order []string
	objs := make(map[string]int)
	base := pagesObj + 1
	if infoObj != 0 {
		base = infoObj + 1
	}
	for _, p := range pages {
		if len(p.Images) > 0 && a.provider == nil {
			return nil, nil, errors.New(errors.ErrCodeResourceLoad,
				"document references images but no resource provider is configured")
		}
		for _, key := range p.Images {
			if _, ok := objs[key]; !ok {
				order = append(order, key)
			}
		}
	}
	for i, key := range order {
		objs[key] = base + i
	}
	return order, objs, nil
}

// pageDict builds a page object body with its media box and resource
// dictionary.
func pageDict(p RenderedPage, parent, content int, fontObj, imageObj map[string]int) string {
	var res strings.Builder
	if len(p.Fonts) > 0 {
		res.WriteString("/Font << ")
		for _, family := range p.Fonts {
			fmt.Fprintf(&res, "/%s %d 0 R ", family, fontObj[family])
		}
		res.WriteString(">> ")
	}
	if len(p.Images) > 0 {
		res.WriteString("/XObject << ")
		for _, key := range p.Images {
			fmt.Fprintf(&res, "/%s %d 0 R ", render.ResourceName(key), imageObj[key])
		}
		res.WriteString(">> ")
	}
	return fmt.Sprintf("<< /Type /Page /Parent %d 0 R /MediaBox [%s %s %s %s] /Resources << %s>> /Contents %d 0 R >>",
		parent,
		num(p.Margins.Left()), num(p.Margins.Bottom()), num(p.Width), num(p.Height),
		res.String(), content)
}

// pagesDict builds the pages collection body.
func pagesDict(pages []RenderedPage, pageObj func(int) int) string {
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", pageObj(i))
	}
	return fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))
}

// infoDict builds the document information dictionary. Creator and
// producer default to the generator identifier when unset.
func infoDict(meta element.Metadata) string {
	creator, producer := meta.Creator, meta.Producer
	if creator == "" {
		creator = element.Identifier
	}
	if producer == "" {
		producer = element.Identifier
	}
	var b strings.Builder
	b.WriteString("<<")
	for _, f := range []struct{ key, val string }{
		{"Title", meta.Title},
		{"Author", meta.Author},
		{"Subject", meta.Subject},
		{"Keywords", meta.Keywords},
		{"Creator", creator},
		{"Producer", producer},
	} {
		if f.val != "" {
			fmt.Fprintf(&b, " /%s %s", f.key, render.EncodeText(f.val))
		}
	}
	b.WriteString(" >>")
	return b.String()
}

// imageXObject builds an image XObject with zlib-compressed RGB
// samples.
func imageXObject(n int, img resource.Image) string {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(img.Pixels)
	zw.Close()
	dict := fmt.Sprintf("<< /Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /FlateDecode /Length %%d >>",
		img.Width, img.Height)
	return streamObj(n, dict, buf.String())
}

// obj wraps an object body in its number and endobj keyword.
func obj(n int, body string) string {
	return fmt.Sprintf("%d 0 obj\n%s\nendobj", n, body)
}

// streamObj wraps stream data in an object. dictFormat must contain a
// single %d verb for the /Length entry, which counts the stream bytes
// plus the newline before endstream.
func streamObj(n int, dictFormat, data string) string {
	dict := fmt.Sprintf(dictFormat, len(data)+1)
	return obj(n, fmt.Sprintf("%s\nstream\n%s\nendstream", dict, data))
}

// serialize lays the objects into the file body and appends the xref
// table and trailer. Offsets count bytes from the start of the file.
func serialize(objects []string, infoObj int) string {
	offsets := make([]int, len(objects))
	running := len(header) + 1
	for i, o := range objects {
		offsets[i] = running
		running += len(o) + 1
	}

	var xref strings.Builder
	fmt.Fprintf(&xref, "xref\n0 %d\n", len(objects)+1)
	xref.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&xref, "%010d 00000 n \n", off)
	}

	var trailer strings.Builder
	fmt.Fprintf(&trailer, "trailer\n<<\n/Size %d\n/Root 1 0 R\n", len(objects)+1)
	if infoObj != 0 {
		fmt.Fprintf(&trailer, "/Info %d 0 R\n", infoObj)
	}
	fmt.Fprintf(&trailer, ">>\nstartxref\n%d\n%%%%EOF", running)

	return header + "\n" + strings.Join(objects, "\n") + "\n" + xref.String() + trailer.String()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
