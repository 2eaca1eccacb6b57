package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkpress/inkpress/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output       string // output file path (or base path for multiple formats)
	formats      []string
	resources    string // directory for image and emoji payloads
	placeholders bool   // substitute gray pixels for missing images
	noCache      bool
	refresh      bool
}

// renderCommand creates the render command for producing PDF files
// and debug artifacts from document descriptions.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document description to PDF",
		Long: `Render a JSON or TOML document description into output artifacts.

The input format is detected from the file extension or payload. The
default output is a complete PDF file next to the input; --format can
add raw content streams (stream) or the normalized description (json).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): pdf (default), stream, json (comma-separated)")
	cmd.Flags().StringVar(&opts.resources, "resources", "", "directory containing image and emoji payloads")
	cmd.Flags().BoolVar(&opts.placeholders, "placeholders", false, "substitute placeholders for missing images")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	logger := loggerFromContext(cmd.Context())
	logger.Infof("Rendering %s", input)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	sp := newSpinnerWithContext(cmd.Context(), "Rendering "+input)
	sp.Start()
	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Input:        input,
		Formats:      opts.formats,
		ResourceDir:  opts.resources,
		Placeholders: opts.placeholders,
		Refresh:      opts.refresh,
		Logger:       logger,
	})
	sp.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d page(s)", result.Stats.PageCount))

	printStats(result.Stats.PageCount, result.Stats.ElementCount, result.CacheInfo.RenderHit)

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := outputPath(base, format, opts.output, len(opts.formats))
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// parseFormats parses the --format flag into a slice of output
// formats. If empty, defaults to ["pdf"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPDF}
	}
	return strings.Split(s, ",")
}

// formatExt maps output formats onto file extensions.
var formatExt = map[string]string{
	pipeline.FormatPDF:    "pdf",
	pipeline.FormatStream: "stream",
	pipeline.FormatJSON:   "json",
}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input. If
// output has a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	for _, known := range formatExt {
		if ext == known {
			return strings.TrimSuffix(output, "."+ext)
		}
	}
	return output
}

// outputPath builds the path for one artifact. A single format with an
// explicit --output writes exactly there; everything else derives
// base.format names.
func outputPath(base, format, output string, formatCount int) string {
	if output != "" && formatCount == 1 {
		return output
	}
	return base + "." + formatExt[format]
}
