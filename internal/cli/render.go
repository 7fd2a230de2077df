package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/editor"
	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/graph"
	"github.com/matzehuels/flowboard/pkg/pipeline"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

// defaultBase names outputs when rendering the built-in demo graph.
const defaultBase = "flowboard"

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output      string   // output file (one format) or base path (several)
	vizType     string   // "canvas" or "nodelink"
	formats     []string // svg, json, png, pdf, dot
	theme       string   // canvas theme
	selectID    uint64   // node to draw selected, 0 for none
	hoverID     uint64   // node to draw hovered, 0 for none
	width       float64  // minimum canvas width
	height      float64  // minimum canvas height
	scale       float64  // png scale factor
	detailed    bool     // nodelink: add id and type under labels
	interactive bool     // embed hover styling in canvas SVG
	inspector   bool     // draw the inspector panel for the selected node
	noCache     bool     // skip the artifact cache entirely
	refresh     bool     // re-render even when cached
	watch       bool     // re-render whenever the seed file changes
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{vizType: errors.VizCanvas}

	cmd := &cobra.Command{
		Use:   "render [seed.json]",
		Short: "Render a workflow graph to SVG, JSON, PNG, PDF or DOT",
		Long: `Render a workflow graph snapshot. Without a seed file the built-in
four-node demo graph is rendered.

Canvas output mirrors the editor view (selection, hover, inspector). Nodelink
output goes through Graphviz with nodes pinned at their canvas positions.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if opts.vizType != errors.VizNodelink && slices.Contains(opts.formats, errors.FormatDOT) {
				opts.vizType = errors.VizNodelink
			}
			c.applyRenderDefaults(cmd, &opts)

			var input string
			if len(args) == 1 {
				input = args[0]
			}
			if opts.watch && input == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--watch needs a seed file")
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			cat := c.config().BuildCatalog()
			if err := runRender(ctx, runner, cat, input, &opts); err != nil {
				if !opts.watch {
					return err
				}
				printError("%s", errors.UserMessage(err))
			}
			if !opts.watch {
				return nil
			}

			printInfo("Watching %s %s", StyleHighlight.Render(input), StyleDim.Render("(ctrl+c to stop)"))
			return watchFile(ctx, input, func() {
				if err := runRender(ctx, runner, cat, input, &opts); err != nil {
					printError("%s", errors.UserMessage(err))
				}
			})
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", opts.vizType, "visualization type: canvas, nodelink")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "canvas theme: dark, light")
	cmd.Flags().Uint64Var(&opts.selectID, "select", 0, "draw node ID as selected")
	cmd.Flags().Uint64Var(&opts.hoverID, "hover", 0, "draw node ID as hovered")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "minimum frame width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "minimum frame height")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node ids and types (nodelink)")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "embed hover styling in SVG (canvas)")
	cmd.Flags().BoolVar(&opts.inspector, "inspector", false, "draw the inspector for the selected node (canvas)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render cached artifacts")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the seed file changes")

	return cmd
}

// applyRenderDefaults fills flags the user left unset from the [render]
// config section.
func (c *CLI) applyRenderDefaults(cmd *cobra.Command, opts *renderOpts) {
	rc := c.config().Render
	if !cmd.Flags().Changed("theme") {
		opts.theme = rc.Theme
	}
	if !cmd.Flags().Changed("width") {
		opts.width = rc.Width
	}
	if !cmd.Flags().Changed("height") {
		opts.height = rc.Height
	}
	if !cmd.Flags().Changed("scale") {
		opts.scale = rc.Scale
	}
}

func (o *renderOpts) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		VizType:     o.vizType,
		Formats:     o.formats,
		Theme:       o.theme,
		Width:       o.width,
		Height:      o.height,
		Interactive: o.interactive,
		Inspector:   o.inspector,
		Detailed:    o.detailed,
		Scale:       o.scale,
		Refresh:     o.refresh,
	}
}

// runRender loads the seed, applies the selection flags, renders every
// requested format and writes the artifacts next to the seed (or to
// --output).
func runRender(ctx context.Context, runner *pipeline.Runner, cat *catalog.Catalog, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	snap, err := loadSeed(input)
	if err != nil {
		return err
	}
	s := editor.New(cat, editor.WithSeed(snap))
	logger.Debug("seed loaded", "input", input, "nodes", len(snap.Nodes), "connections", len(snap.Connections))

	if opts.selectID != 0 && !s.Apply(editor.Click(workflow.NodeID(opts.selectID))).Changed {
		printWarning("No node %d to select", opts.selectID)
	}
	if opts.hoverID != 0 && !s.Apply(editor.Enter(workflow.NodeID(opts.hoverID))).Changed {
		printWarning("No node %d to hover", opts.hoverID)
	}

	popts := opts.pipelineOptions()
	popts.Logger = logger

	var spin *spinner
	if slices.ContainsFunc(opts.formats, slowFormat) || opts.vizType == errors.VizNodelink {
		spin = newSpinner(ctx, "Rendering...")
		spin.Start()
	}
	res, err := runner.Execute(ctx, s, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(res, popts.Formats, basePath(opts.output, input), opts.output)
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered %s", describe(len(paths), "artifact")))
	printSuccess("Rendered %s", popts.VizType)
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.AllHit())
	return nil
}

func slowFormat(f string) bool { return f == errors.FormatPNG || f == errors.FormatPDF }

// loadSeed reads the snapshot at path. An empty path means the demo graph.
func loadSeed(path string) (graph.Snapshot, error) {
	if path == "" {
		return graph.DefaultSeed(), nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return graph.Snapshot{}, err
	}
	return graph.ReadFile(path)
}

// basePath derives the output base from the output and input paths. An
// empty output means the input without its extension. A known format
// extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return defaultBase
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if knownFormat(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func knownFormat(f string) bool {
	return slices.Contains(errors.Formats(errors.VizCanvas), f) || slices.Contains(errors.Formats(errors.VizNodelink), f)
}

// outputPath names the file for one format. A single format written to an
// explicit --output uses that path unchanged. Derived JSON names get a
// ".diagram" infix so they never overwrite a seed of the same base name.
func outputPath(base, output, format string, n int) string {
	if n == 1 && output != "" {
		return output
	}
	if format == errors.FormatJSON {
		return base + ".diagram.json"
	}
	return base + "." + format
}

// writeArtifacts writes each format in order and returns the paths written.
func writeArtifacts(res *pipeline.Result, formats []string, base, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := outputPath(base, output, f, len(formats))
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, res.Artifacts[f], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
