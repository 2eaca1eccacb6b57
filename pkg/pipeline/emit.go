package pipeline

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/inkpress/inkpress/pkg/document"
	"github.com/inkpress/inkpress/pkg/element"
	docio "github.com/inkpress/inkpress/pkg/io"
	"github.com/inkpress/inkpress/pkg/render"
	"github.com/inkpress/inkpress/pkg/resource"
)

// Emit renders a document into every requested output format.
func Emit(d *element.Document, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := emitOne(d, format, opts)
		if err != nil {
			return nil, fmt.Errorf("emit %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func emitOne(d *element.Document, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatPDF:
		assembleOpts, err := assembleOptions(opts)
		if err != nil {
			return nil, err
		}
		pdf, err := document.Render(d, assembleOpts...)
		if err != nil {
			return nil, err
		}
		return []byte(pdf), nil

	case FormatStream:
		return emitStreams(d)

	case FormatJSON:
		var buf bytes.Buffer
		if err := docio.WriteJSON(d, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, ValidateFormat(format)
}

// emitStreams renders each page's content stream, separated by PDF
// comment lines marking the page boundaries.
func emitStreams(d *element.Document) ([]byte, error) {
	r := render.NewRenderer()
	parts := make([]string, 0, len(d.Pages))
	for i, p := range d.Pages {
		rp, err := document.AssemblePage(d, p, r)
		if err != nil {
			return nil, err
		}
		parts = append(parts, fmt.Sprintf("%% page %d\n%s", i+1, rp.ContentStream))
	}
	return []byte(strings.Join(parts, "\n")), nil
}

// assembleOptions builds the resource provider for PDF assembly. A
// ResourceDir naming an http(s) URL fetches resources from that host;
// anything else is treated as a local directory.
func assembleOptions(opts Options) ([]document.Option, error) {
	if opts.ResourceDir == "" {
		return nil, nil
	}

	if strings.HasPrefix(opts.ResourceDir, "http://") || strings.HasPrefix(opts.ResourceDir, "https://") {
		var httpOpts []resource.HTTPOption
		if opts.Placeholders {
			httpOpts = append(httpOpts, resource.WithHTTPPolicy(resource.PolicyPlaceholder))
		}
		provider, err := resource.NewHTTPProvider(opts.ResourceDir, httpOpts...)
		if err != nil {
			return nil, err
		}
		return []document.Option{document.WithProvider(provider)}, nil
	}

	var dirOpts []resource.DirOption
	if opts.Placeholders {
		dirOpts = append(dirOpts, resource.WithPolicy(resource.PolicyPlaceholder))
	}
	return []document.Option{
		document.WithProvider(resource.NewDirProvider(opts.ResourceDir, dirOpts...)),
	}, nil
}
