package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tubemap/pkg/pipeline"
)

// defaultOutput is the base name of rendered files when --output is not set.
const defaultOutput = "tubemap"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	data          dataFlags
	lines         []string // selected lines; empty means the configured initial lines
	all           bool     // select every line in the catalog
	formats       []string // output formats; empty means the configured formats
	output        string   // output file (single format) or base path
	width         float64  // canvas width, 0 for the configured width
	height        float64  // canvas height, 0 for the configured height
	noCache       bool     // bypass the artifact cache
	refresh       bool     // ignore cached artifacts but store the new ones
	hideDistances bool     // omit segment length labels
}

// renderCommand creates the render command, a one-shot refresh written to
// files.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	var linesStr, formatsStr string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a map of the selected lines",
		Long: `Render draws the selected lines once and writes the map in every requested
format. Without --lines or --all the initial lines from the config are drawn.

Line names contain spaces, so separate them with commas only:

  tubemap render --lines "Central,Waterloo & City" -f svg,png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.lines = parseList(linesStr)
			opts.formats = parseFormats(formatsStr)
			if opts.all && len(opts.lines) > 0 {
				return fmt.Errorf("--all and --lines are mutually exclusive")
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), &opts)
		},
	}

	opts.data.register(cmd)
	cmd.Flags().StringVarP(&linesStr, "lines", "l", "", "lines to draw (comma-separated)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "draw every line")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg, png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height in pixels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVar(&opts.hideDistances, "hide-distances", false, "omit segment length labels")

	return cmd
}

// runRender loads the network, executes one refresh and writes the artifacts.
// Progress goes to errw, the summary to w.
func (c *CLI) runRender(ctx context.Context, w, errw io.Writer, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	n, err := c.loadNetwork(ctx, opts.data)
	if err != nil {
		return err
	}

	popts := c.pipelineOptions(ctx)
	switch {
	case opts.all:
		popts.Lines = n.Catalog().Names()
	case len(opts.lines) > 0:
		popts.Lines = opts.lines
	default:
		popts.Lines = slices.Clone(c.Config.Lines.Initial)
	}
	if len(opts.formats) > 0 {
		popts.Formats = opts.formats
	}
	if opts.width > 0 {
		popts.Width = opts.width
	}
	if opts.height > 0 {
		popts.Height = opts.height
	}
	if opts.hideDistances {
		popts.Map.HideEdgeLabels = true
	}
	popts.Refresh = opts.refresh
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, n, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	logger.Debug("rendering", "lines", popts.Lines, "formats", popts.Formats)
	spinner := newSpinner(ctx, errw, fmt.Sprintf("Rendering %d lines...", len(popts.Lines)))
	spinner.Start()
	res, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	for _, name := range res.Stats.Unknown {
		printWarning(w, "Unknown line %q ignored", name)
	}

	paths := outputPaths(opts.output, popts.Formats)
	for _, format := range popts.Formats {
		if err := writeOutput(paths[format], res.Artifacts[format]); err != nil {
			return err
		}
		logger.Debug("wrote artifact", "format", format, "bytes", len(res.Artifacts[format]))
	}

	printSuccess(w, "Rendered %s", describeLines(popts.Lines, n.Catalog().Len()))
	printStats(w, res.Stats, res.CacheInfo.RenderHit)
	for _, format := range popts.Formats {
		printFile(w, paths[format])
	}
	return nil
}

// outputPaths maps each format to its file. A single format is written to
// output as given (or tubemap.<format>); several formats share output as a
// base path with a known extension stripped.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, defaulting to
// defaultOutput.
func basePath(output string) string {
	if output == "" {
		return defaultOutput
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.ValidFormats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// describeLines summarizes a selection for status output.
func describeLines(lines []string, total int) string {
	switch {
	case len(lines) == 0:
		return "an empty map"
	case len(lines) == total && total > 1:
		return fmt.Sprintf("all %d lines", total)
	case len(lines) <= 3:
		return strings.Join(lines, ", ")
	default:
		return fmt.Sprintf("%d lines", len(lines))
	}
}
