package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sketchflow/sketchflow/pkg/pipeline"
)

// generateCommand creates the generate command for rendering manifests.
//
// Default settings:
//   - format: excalidraw (importable scene JSON)
//   - caching: enabled, keyed on manifest content and layout options
func (c *CLI) generateCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "generate [manifest.toml]",
		Short: "Render a manifest to diagram artifacts",
		Long: `Render a TOML manifest to one or more diagram artifacts.

The excalidraw format produces a scene file that can be opened directly
in the Excalidraw editor. The dot, svg, and png formats produce a
node-link projection of the same diagram for structural review. The
json format dumps the assembled element document.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ManifestPath = args[0]
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): excalidraw (default), json, dot, svg, png (comma-separated)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "override the manifest title")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include ids and positions in node-link labels")
	cmd.Flags().Float64Var(&opts.HGap, "h-gap", 0, "horizontal spacing between columns")
	cmd.Flags().Float64Var(&opts.VGap, "v-gap", 0, "vertical spacing between rows")
	cmd.Flags().Float64Var(&opts.ShapeWidth, "shape-width", 0, "shape width")
	cmd.Flags().Float64Var(&opts.ShapeHeight, "shape-height", 0, "shape height")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", 0, "raster scale for png output")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runGenerate executes the pipeline and writes the artifacts.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s...", opts.ManifestPath))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	printSuccess("Generated %s", result.Document.Title)
	printStats(result.Stats.BlockCount, result.Stats.ElementCount,
		result.CacheInfo.DocumentHit && result.CacheInfo.RenderHit)

	return writeArtifacts(result.Artifacts, opts.Formats, opts.ManifestPath, output)
}

// writeArtifacts writes each rendered format to disk. With one format
// the output flag names the file directly; with several it is a base
// path and files get format extensions.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	if len(formats) == 1 {
		format := formats[0]
		path := output
		if path == "" {
			path = basePath("", input) + "." + format
		}
		return writeArtifact(path, artifacts[format])
	}

	base := basePath(output, input)
	for _, format := range formats {
		if err := writeArtifact(base+"."+format, artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input. If
// output carries a known format extension, that extension is stripped.
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
