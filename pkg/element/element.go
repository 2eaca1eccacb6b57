// Package element defines the declarative element tree that inkpress renders
// into PDF content streams.
//
// An element is a tagged node with an attribute map and ordered children:
//
//	["rect", {"x": 10, "y": 20, "width": 100, "height": 50, "fill": "#ff0000"}]
//	["group", {"transforms": [["translate", [100, 100]]]}, ...children]
//	["text", {"x": 72, "y": 720, "font": "Arial", "size": 12}, "Hello"]
//
// The tag set is closed: rect, circle, line, text, path, group, plus the
// optional image and emoji extensions, and the document/page structural
// tags. Unknown tags are a rendering error, never silently skipped.
//
// Elements are immutable value trees owned by their parent; a literal tree
// cannot contain cycles, so no indirection or arena is needed.
package element

// Tag identifies an element kind. The set is closed; rendering dispatches
// over it with an exhaustive switch.
type Tag string

// Element tags.
const (
	TagRect     Tag = "rect"
	TagCircle   Tag = "circle"
	TagLine     Tag = "line"
	TagText     Tag = "text"
	TagPath     Tag = "path"
	TagGroup    Tag = "group"
	TagDocument Tag = "document"
	TagPage     Tag = "page"
	TagImage    Tag = "image"
	TagEmoji    Tag = "emoji"
)

// Known reports whether t is a member of the closed tag set.
func (t Tag) Known() bool {
	switch t {
	case TagRect, TagCircle, TagLine, TagText, TagPath, TagGroup,
		TagDocument, TagPage, TagImage, TagEmoji:
		return true
	}
	return false
}

// Attrs is an element's attribute map. Values are float64 numbers, strings
// (colors, font names, path data), or []Transform for group transforms.
type Attrs map[string]any

// Element is one node of the declarative tree. For text elements the
// content lives in Text and Children is empty; for every other tag Text is
// empty.
type Element struct {
	Tag      Tag
	Attrs    Attrs
	Children []Element
	Text     string
}

// New creates an element with the given tag, attributes, and children.
func New(tag Tag, attrs Attrs, children ...Element) Element {
	return Element{Tag: tag, Attrs: attrs, Children: children}
}

// NewText creates a text element with string content.
func NewText(attrs Attrs, content string) Element {
	return Element{Tag: TagText, Attrs: attrs, Text: content}
}

// Number returns the named attribute as a float64. Integer-typed values
// (as produced by TOML decoding or literal Go maps) are widened.
func (a Attrs) Number(key string) (float64, bool) {
	v, ok := a[key]
	if !ok {
		return 0, false
	}
	return asNumber(v)
}

// String returns the named attribute as a string.
func (a Attrs) String(key string) (string, bool) {
	v, ok := a[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Transforms returns the "transforms" attribute, if present.
func (a Attrs) Transforms() ([]Transform, bool) {
	v, ok := a[AttrTransforms]
	if !ok {
		return nil, false
	}
	ts, ok := v.([]Transform)
	return ts, ok
}

// Clone returns a copy of the attribute map. Transform slices are copied;
// scalar values are shared (they are immutable).
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		if ts, ok := v.([]Transform); ok {
			cp := make([]Transform, len(ts))
			copy(cp, ts)
			out[k] = cp
			continue
		}
		out[k] = v
	}
	return out
}

// AttrTransforms is the attribute key holding a group's transform list.
const AttrTransforms = "transforms"

// Count returns the total number of elements in the tree rooted at e,
// including e itself.
func (e Element) Count() int {
	n := 1
	for _, c := range e.Children {
		n += c.Count()
	}
	return n
}

// HasTransforms reports whether any group in the tree rooted at e carries
// a non-empty transform list.
func (e Element) HasTransforms() bool {
	if ts, ok := e.Attrs.Transforms(); ok && len(ts) > 0 {
		return true
	}
	for _, c := range e.Children {
		if c.HasTransforms() {
			return true
		}
	}
	return false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
