package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkpress/inkpress/pkg/pipeline"
	"github.com/inkpress/inkpress/pkg/treeviz"
)

// treeCommand creates the tree command for visualizing a document's
// element structure.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Visualize a document's element tree",
		Long: `Visualize the element structure of a document description as a
Graphviz diagram. The diagram shows the tree shape (document, pages,
elements), not the rendered output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd, args[0], output, format, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults next to input)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot (default), svg, png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include attribute values in node labels")

	return cmd
}

func (c *CLI) runTree(cmd *cobra.Command, input, output, format string, detailed bool) error {
	logger := loggerFromContext(cmd.Context())

	d, err := pipeline.Load(pipeline.Options{Input: input})
	if err != nil {
		return err
	}
	logger.Infof("Loaded document: %d page(s)", len(d.Pages))

	dot := treeviz.ToDOT(d, treeviz.Options{Detailed: detailed})

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		logger.Info("Rendering tree SVG")
		data, err = treeviz.RenderSVG(dot)
	case "png":
		logger.Info("Rendering tree PNG")
		data, err = treeviz.RenderPNG(dot)
	default:
		return fmt.Errorf("unknown format: %s (must be 'dot', 'svg', or 'png')", format)
	}
	if err != nil {
		return err
	}

	if output == "" {
		output = basePath("", input) + "." + format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printFile(output)
	return nil
}
