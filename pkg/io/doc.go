// Package io reads and writes document descriptions as JSON.
//
// The wire format is a nested array grammar: every element is
//
//	["tag", {attrs}, ...children]
//
// where children are further element arrays, except for text elements
// whose single child is the text run itself:
//
//	["text", {"x": 100, "y": 100, "font": "Arial", "size": 12}, "Hello"]
//
// The top-level element must be a "document", its children "page"
// elements. Attributes are validated and normalized during import, so
// a decoded document is ready for rendering and a re-exported one is
// deterministic.
package io
