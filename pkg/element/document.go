package element

// Document geometry defaults (US Letter in PDF points) and the identifier
// written into generated files.
const (
	DefaultWidth  = 612.0
	DefaultHeight = 792.0

	// Identifier is the fixed creator/producer string stamped into the
	// Info dictionary of generated documents.
	Identifier = "inkpress"
)

// Metadata holds document-level metadata for the PDF Info dictionary.
// A zero Metadata produces no Info object at all.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
}

// Empty reports whether no metadata field is set.
func (m Metadata) Empty() bool {
	return m == Metadata{}
}

// Margins are ordered [top, right, bottom, left], in PDF points.
type Margins [4]float64

// Top, Right, Bottom, Left accessors for the margin tuple.
func (m Margins) Top() float64    { return m[0] }
func (m Margins) Right() float64  { return m[1] }
func (m Margins) Bottom() float64 { return m[2] }
func (m Margins) Left() float64   { return m[3] }

// Page is one page of a document. Width, Height, and Margins inherit from
// the document when nil; a page-level value overrides the document value
// as a whole unit (margins are never merged component-wise).
type Page struct {
	Width   *float64
	Height  *float64
	Margins *Margins
	Content []Element
}

// Document is a complete renderable document: metadata, default page
// geometry, and an ordered list of pages.
type Document struct {
	Meta    Metadata
	Width   float64
	Height  float64
	Margins Margins
	Pages   []Page
}

// NewDocument creates a document with default geometry (612x792, zero
// margins) and no pages.
func NewDocument() *Document {
	return &Document{Width: DefaultWidth, Height: DefaultHeight}
}

// AddPage appends a page to the document.
func (d *Document) AddPage(p Page) {
	d.Pages = append(d.Pages, p)
}

// PageGeometry resolves a page's effective width, height, and margins by
// applying document defaults for any attribute the page does not supply.
func (d *Document) PageGeometry(p Page) (width, height float64, margins Margins) {
	width, height, margins = d.Width, d.Height, d.Margins
	if p.Width != nil {
		width = *p.Width
	}
	if p.Height != nil {
		height = *p.Height
	}
	if p.Margins != nil {
		margins = *p.Margins
	}
	return width, height, margins
}
