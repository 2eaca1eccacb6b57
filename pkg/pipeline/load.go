package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkpress/inkpress/pkg/element"
	docio "github.com/inkpress/inkpress/pkg/io"
	"github.com/inkpress/inkpress/pkg/manifest"
)

// Load decodes a document description into a normalized element tree.
// The source format is taken from the options, the input file
// extension, or sniffed from the payload, in that order.
func Load(opts Options) (*element.Document, error) {
	data := opts.Description
	if opts.Input != "" {
		var err error
		data, err = os.ReadFile(opts.Input)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", opts.Input, err)
		}
	}

	switch sourceFormat(opts, data) {
	case SourceTOML:
		return manifest.Parse(data)
	default:
		return docio.ReadJSON(bytes.NewReader(data))
	}
}

// sourceFormat resolves the description format. JSON descriptions
// always start with the document array; anything else is TOML.
func sourceFormat(opts Options, data []byte) string {
	if opts.SourceFormat != "" {
		return opts.SourceFormat
	}
	switch strings.ToLower(filepath.Ext(opts.Input)) {
	case ".json":
		return SourceJSON
	case ".toml":
		return SourceTOML
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' && !looksLikeTOMLTable(trimmed) {
		return SourceJSON
	}
	return SourceTOML
}

// looksLikeTOMLTable distinguishes a TOML table header from a JSON
// array: a JSON document array always begins with a quoted tag.
func looksLikeTOMLTable(data []byte) bool {
	for _, c := range data[1:] {
		switch c {
		case ' ', '\t', '\r', '\n', '[':
			continue
		case '"':
			return false
		default:
			return true
		}
	}
	return true
}
