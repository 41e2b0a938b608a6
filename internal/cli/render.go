package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/injectograph/injectograph/pkg/digraph"
	"github.com/injectograph/injectograph/pkg/errors"
	"github.com/injectograph/injectograph/pkg/pipeline"
	"github.com/injectograph/injectograph/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file path (or base path for multiple formats)
	formats   []string // output formats: json, dot, svg, png, mermaid
	detailed  bool     // include node kinds in diagram labels
	direction string   // filter direction applied before rendering
	entries   []string // filter entry points applied before rendering
}

// renderCommand creates the render command for generating diagrams from a
// previously built graph file.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a dependency graph as a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, c.config.Formats)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, mermaid, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include node kinds in labels")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "filter direction before rendering: downstream, upstream, both")
	cmd.Flags().StringSliceVarP(&opts.entries, "entry", "e", nil, "filter entry point before rendering (repeatable)")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats,
// falling back to the config file and then to SVG.
func parseFormats(s string, fromConfig []string) []string {
	if s != "" {
		return strings.Split(s, ",")
	}
	if len(fromConfig) > 0 {
		return fromConfig
	}
	return []string{pipeline.FormatSVG}
}

// validateFormats checks that all requested formats are supported.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !pipeline.ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'json', 'dot', 'svg', 'png', or 'mermaid')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output ends
// in a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func (c *CLI) runRender(input string, opts renderOpts) error {
	g, err := render.ReadGraphFile(input)
	if err != nil {
		return err
	}
	c.Logger.Infof("Loaded graph: %d nodes, %d edges", len(g.Nodes), len(g.Edges))

	if opts.direction != "" || len(opts.entries) > 0 {
		direction := digraph.Direction(opts.direction)
		if direction == "" {
			direction = pipeline.DefaultDirection
		}
		g, err = digraph.Filter(g, direction, opts.entries)
		if err != nil {
			return err
		}
		c.Logger.Infof("Filtered to %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}

	if len(opts.formats) == 1 && opts.output != "" {
		return c.renderAndWrite(g, opts.formats[0], opts.output, opts)
	}
	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		if err := c.renderAndWrite(g, format, base+"."+format, opts); err != nil {
			return err
		}
	}
	return nil
}

// renderAndWrite renders one format and writes it to path.
func (c *CLI) renderAndWrite(g digraph.Graph, format, path string, opts renderOpts) error {
	var data []byte
	var err error
	switch format {
	case pipeline.FormatJSON:
		data, err = render.MarshalGraph(g)
	case pipeline.FormatDOT:
		data = []byte(render.ToDOT(g, render.DOTOptions{Detailed: opts.detailed}))
	case pipeline.FormatMermaid:
		data = []byte(render.ToMermaid(g))
	case pipeline.FormatSVG:
		data, err = render.RenderSVG(render.ToDOT(g, render.DOTOptions{Detailed: opts.detailed}))
	case pipeline.FormatPNG:
		data, err = render.RenderPNG(render.ToDOT(g, render.DOTOptions{Detailed: opts.detailed}))
	default:
		err = errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	c.Logger.Debugf("Generated %s: %d bytes", format, len(data))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Generated %s", format)
	printFile(path)
	return nil
}
