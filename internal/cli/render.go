package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command.
// Flags override the config file only when set explicitly.
type renderFlags struct {
	output  string  // output file path (or base path for multiple outputs)
	formats string  // comma-separated output formats
	width   float64 // available width in pixels
	engine  string  // native or graphviz
	theme   string  // TOML theme file
	legend  bool    // draw the legend strip
	scale   float64 // PNG resolution multiplier
	noCache bool    // bypass the cache entirely
	refresh bool    // recompute but still write the cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [tree.json]",
		Short: "Render a decision tree to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a decision tree to one or more output formats.

The input is a tree document ({"nodes": [...], "edges": [...]}); use "-" to
read it from standard input. With a single format the output goes to -o, or
to <input>.<format>. With several formats -o is a base path and each format
gets its own extension.

Scenes and artifacts are cached locally (or in Redis when configured).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.renderOptions(cmd, flags)
			if err != nil {
				return err
			}
			return c.runRender(cmd, args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().Float64Var(&flags.width, "width", pipeline.DefaultWidth, "available width in pixels")
	cmd.Flags().StringVar(&flags.engine, "engine", pipeline.DefaultEngine, "layout engine: native, graphviz")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "TOML colour theme file")
	cmd.Flags().BoolVar(&flags.legend, "legend", false, "draw the node/branch legend")
	cmd.Flags().Float64Var(&flags.scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached results")

	return cmd
}

// renderOptions merges explicitly set flags over the configured defaults.
func (c *CLI) renderOptions(cmd *cobra.Command, flags renderFlags) (pipeline.Options, error) {
	opts := c.pipelineOptions()
	f := cmd.Flags()
	if f.Changed("format") {
		opts.Formats = parseFormats(flags.formats)
	}
	if f.Changed("width") {
		opts.Width = flags.width
	}
	if f.Changed("engine") {
		opts.Engine = flags.engine
	}
	if f.Changed("legend") {
		opts.Legend = flags.legend
	}
	if f.Changed("scale") {
		opts.Scale = flags.scale
	}
	opts.Refresh = flags.refresh

	th, err := c.loadTheme(flags.theme)
	if err != nil {
		return opts, err
	}
	opts.Theme = th

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	if flags.output != "" {
		if err := apperr.ValidateOutputPath(flags.output); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// runRender loads the tree, runs the pipeline and writes every artifact.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts pipeline.Options, flags renderFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	t, issues, err := c.loadTree(cmd, input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := startSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	result, err := runner.Execute(ctx, t, opts)
	if err != nil {
		spin.fail("Render failed")
		return err
	}
	spin.stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Single format from stdin without -o streams to stdout.
	if input == stdinPath && flags.output == "" && len(opts.Formats) == 1 {
		_, err := cmd.OutOrStdout().Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(flags.output, input, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}
	prog.done("Rendered " + input)

	p := newPrinter(cmd)
	p.success("Render complete")
	for _, format := range opts.Formats {
		p.file(paths[format])
	}
	p.treeStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	if len(issues) > 0 {
		p.warning("%d structural issue(s) in input; drawn as given", len(issues))
	}
	return nil
}

// outputPaths maps each format to its output file.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinPath {
			return "tree"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	// Strip known format extensions from output path
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// openOutput opens path for writing; an empty path is standard output.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

