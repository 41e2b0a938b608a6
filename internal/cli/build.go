package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/injectograph/injectograph/pkg/digraph"
	"github.com/injectograph/injectograph/pkg/pipeline"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output      string   // output file path
	direction   string   // traversal direction for filtering
	entries     []string // entry point node IDs
	interactive bool     // pick entry points in a TUI
	refresh     bool     // bypass the cache
	noCache     bool     // disable the cache entirely
}

// buildCommand creates the build command.
// It reads class declarations from a JSON file, constructs the dependency
// graph, optionally filters it to the sub-graph reachable from entry
// points, and writes the graph as JSON.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [declarations.json]",
		Short: "Build a dependency graph from class declarations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with .graph.json)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "traversal direction: downstream (default), upstream, both")
	cmd.Flags().StringSliceVarP(&opts.entries, "entry", "e", nil, "entry point node ID (repeatable)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick entry points interactively")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even if a cached graph exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, input string, opts buildOpts) error {
	ctx := cmd.Context()
	prog := newProgress(c.Logger)

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}

	direction := opts.direction
	if direction == "" {
		direction = c.config.Direction
	}
	entries := opts.entries
	if len(entries) == 0 {
		entries = c.config.Entries
	}

	if opts.interactive {
		full, err := runner.Graph(ctx, data, pipeline.Options{Refresh: opts.refresh})
		if err != nil {
			return err
		}
		entries, err = pickEntries(full)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			printInfo("No entry points selected, keeping the full graph")
		}
	}

	result, err := runner.Execute(ctx, data, pipeline.Options{
		Direction: digraph.Direction(direction),
		Entries:   entries,
		Formats:   []string{pipeline.FormatJSON},
		Refresh:   opts.refresh,
		CacheTTL:  c.config.CacheTTL.value(),
	})
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".graph.json"
	}
	if err := os.WriteFile(output, result.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	prog.done(fmt.Sprintf("Built graph with %d nodes", len(result.Graph.Nodes)))
	printSuccess("Graph written")
	printFile(output)
	printStats(len(result.Graph.Nodes), len(result.Graph.Edges), len(result.Graph.CircularDependencies), result.GraphCached)
	if len(result.Graph.CircularDependencies) > 0 {
		printWarning("%d circular dependency chains detected", len(result.Graph.CircularDependencies))
	}
	printNextStep("Render it", fmt.Sprintf("%s render %s -f svg", appName, output))
	return nil
}
