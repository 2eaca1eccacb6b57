// Package pipeline provides the core rendering pipeline for Inkpress.
//
// This package implements the complete load → assemble → emit pipeline
// that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode a document description (JSON or TOML) into an
//     element tree
//  2. Assemble: Resolve page geometry and render content streams
//  3. Emit: Produce output artifacts (PDF, raw streams, normalized JSON)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Description: body,
//	    Formats:     []string{"pdf"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf := result.Artifacts["pdf"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/inkpress/inkpress/pkg/cache"
	"github.com/inkpress/inkpress/pkg/element"
	"github.com/inkpress/inkpress/pkg/errors"
)

// Format constants for output artifacts.
const (
	// FormatPDF is a complete PDF file.
	FormatPDF = "pdf"
	// FormatStream is the raw per-page content streams, for debugging
	// operator output without the surrounding file structure.
	FormatStream = "stream"
	// FormatJSON is the normalized document description round-tripped
	// through validation.
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:    true,
	FormatStream: true,
	FormatJSON:   true,
}

// Source format constants for document descriptions.
const (
	SourceJSON = "json"
	SourceTOML = "toml"
)

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of Description or Input must be set.
	Description  []byte `json:"description,omitempty"`
	Input        string `json:"input,omitempty"`
	SourceFormat string `json:"source_format,omitempty"` // json or toml; detected when empty

	// Emit options
	Formats      []string `json:"formats,omitempty"`
	ResourceDir  string   `json:"resource_dir,omitempty"`
	Placeholders bool     `json:"placeholders,omitempty"` // substitute gray pixels for missing images
	Refresh      bool     `json:"refresh,omitempty"`      // bypass the artifact cache

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded, normalized element tree.
	Document *element.Document

	// DocHash is the content hash of the normalized document.
	DocHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PageCount    int
	ElementCount int
	LoadTime     time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits per stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: pdf, stream, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Description) == 0 && o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "a document description or input path is required")
	}
	if len(o.Description) > 0 && o.Input != "" {
		return errors.New(errors.ErrCodeInvalidInput, "description and input path are mutually exclusive")
	}
	if o.SourceFormat != "" && o.SourceFormat != SourceJSON && o.SourceFormat != SourceTOML {
		return errors.New(errors.ErrCodeInvalidInput, "invalid source format: %q", o.SourceFormat)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}
