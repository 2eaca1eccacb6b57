// Package pkg provides the core libraries for the inkpress document renderer.
//
// # Overview
//
// Inkpress turns declarative vector-graphics documents into complete
// PDF files. The pkg directory is organized into these areas:
//
//  1. [element] - Document model (pages, shapes, text, groups, transforms)
//  2. [render] - Content stream generation (paths, colors, coordinates)
//  3. [document] - PDF assembly (objects, xref table, trailer)
//  4. [io] / [manifest] - Input surfaces (JSON wire format, TOML manifests)
//  5. [pipeline] - Orchestration (load, assemble, emit) with caching
//  6. [resource] - Image and emoji payload providers (directory, HTTP)
//  7. [cache] / [httputil] - Artifact and payload caching, retries
//  8. [treeviz] - Element tree visualization (DOT, SVG, PNG)
//
// # Architecture
//
// The typical data flow through inkpress:
//
//	JSON/TOML description
//	         |
//	    [io] or [manifest] (parse and validate the element tree)
//	         |
//	    [render] (per-element PDF content stream fragments)
//	         |
//	    [document] (object numbering, xref, byte-exact PDF)
//	         |
//	    PDF/stream/JSON output
//
// # Quick Start
//
// Render a document description end to end:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "report.json",
//	    Formats: []string{"pdf"},
//	})
//	os.WriteFile("report.pdf", result.Artifacts["pdf"], 0o644)
package pkg
