// Package fonts maps document font family names onto the PDF base-14
// fonts.
//
// Generated documents reference fonts by the family name used in the
// element tree (e.g. "Arial"); the document assembler resolves each name
// to a standard base font that every PDF viewer ships, so no font data is
// ever embedded.
package fonts

import "strings"

// baseFonts maps family names to base-14 font names. Lookups are
// case-sensitive by family name.
var baseFonts = map[string]string{
	"Arial":           "Helvetica",
	"Helvetica":       "Helvetica",
	"Times":           "Times-Roman",
	"Times New Roman": "Times-Roman",
	"Courier":         "Courier",
}

// resourceFonts indexes baseFonts by resource name, so families that
// were collapsed for content-stream emission still resolve.
var resourceFonts = func() map[string]string {
	m := make(map[string]string, len(baseFonts))
	for family, base := range baseFonts {
		m[ResourceName(family)] = base
	}
	return m
}()

// DefaultBase is the base font used for unrecognized family names.
const DefaultBase = "Helvetica"

// ResourceName returns the content-stream resource name for a family.
// PDF name objects cannot contain whitespace, so spaced family names
// collapse ("Times New Roman" becomes "TimesNewRoman").
func ResourceName(family string) string {
	return strings.ReplaceAll(family, " ", "")
}

// BaseFont resolves a font family name to its base-14 font name. Both
// the spelled family and its collapsed resource name resolve.
// Unrecognized names fall back to Helvetica.
func BaseFont(family string) string {
	if base, ok := baseFonts[family]; ok {
		return base
	}
	if base, ok := resourceFonts[family]; ok {
		return base
	}
	return DefaultBase
}

// Known reports whether the family name has an explicit base-font
// mapping.
func Known(family string) bool {
	_, ok := baseFonts[family]
	return ok
}
