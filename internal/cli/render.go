package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/marbles/pkg/errors"
	mio "github.com/matzehuels/marbles/pkg/io"
	"github.com/matzehuels/marbles/pkg/pipeline"
)

// stdinBase names outputs when the trace came from standard input.
const stdinBase = "marbles"

// renderCommand creates the render command for writing diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		vizType    string
		output     string
		scale      float64
		title      string
		detailed   bool
		shared     optionFlags
	)

	cmd := &cobra.Command{
		Use:   "render [trace.json|-]",
		Short: "Render a trace as a marble diagram",
		Long: `Render a trace as a marble diagram.

The trace is a JSON execution record of a reactive pipeline; "-" reads it
from standard input. A trace that cannot be decoded still renders, as an
empty diagram, and a warning says why.

Formats: svg (default), png, pdf, json (drawing primitives, written as
<base>.layout.json), html (diagram plus explanation), dot (chain view only). PDF output, and PNG in the chain
view, need rsvg-convert on PATH.`,
		Example: `  marbles render trace.json
  marbles render trace.json -f svg,html -o out/diagram
  cat trace.json | marbles render - -o - > diagram.svg
  marbles render trace.json -t chain -f dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolveOptions(cmd, &shared)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("format") {
				opts.Formats = parseFormats(formatsStr)
			}
			if flags.Changed("type") {
				opts.VizType = vizType
			}
			if flags.Changed("scale") {
				opts.Scale = scale
			}
			opts.Title = title
			opts.Detailed = detailed
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (single format), base path (multiple), or "-" for stdout`)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, html, dot (comma-separated)")
	cmd.Flags().StringVarP(&vizType, "type", "t", pipeline.DefaultVizType, "visualization type: marble, chain")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().StringVar(&title, "title", "", "HTML report title")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include operator class and value count (chain)")
	shared.register(cmd)

	return cmd
}

// runRender generates every requested artifact and writes it out. With
// output "-" the single artifact goes to stdout instead of a file.
func (c *CLI) runRender(ctx context.Context, stdout io.Writer, input string, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)
	toStdout := output == mio.Stdin
	if toStdout && len(opts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "writing to stdout needs exactly one format, got %d", len(opts.Formats))
	}

	raw, err := c.readInput(input)
	if err != nil {
		return err
	}
	logger.Debugf("Read %d bytes from %s", len(raw), input)

	runner := c.newRunner()
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s diagram...", opts.VizType))
	spinner.Start()

	result, err := runner.Generate(ctx, raw, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if toStdout {
		_, err := stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, outputBase(output, input), output)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", plural(result.Stats.StageCount, "stage")))

	if result.DecodeErr != nil {
		printWarning("Trace could not be decoded: %s", errors.UserMessage(result.DecodeErr))
		printDetail("The diagram was rendered without stages")
	}
	printSuccess("Diagram complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats)
	if result.Stats.StageCount > 0 {
		printNewline()
		printNextStep("Explain", appName+" explain "+input)
	}
	return nil
}

// outputBase derives the base path shared by every artifact. A known format
// extension on output is stripped; with no output the input name is used.
func outputBase(output, input string) string {
	if output == "" {
		if input == mio.Stdin {
			return stdinBase
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactPath returns where one format is written. An explicit output path
// is used as-is when it is the only artifact. The layout export is named
// <base>.layout.json so it never lands on a <base>.json trace.
func artifactPath(base, output, format string, single bool) string {
	if single && output != "" {
		return output
	}
	if format == pipeline.FormatJSON {
		return base + ".layout.json"
	}
	return base + "." + format
}

// samePath reports whether a and b name the same file.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// writeArtifacts writes the artifacts in format order and returns their paths.
// It refuses to write over the input trace.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, base, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "no %s artifact was produced", format)
		}
		path := artifactPath(base, output, format, len(formats) == 1)
		if err := errors.ValidateOutputPath(path); err != nil {
			return nil, err
		}
		if input != mio.Stdin && samePath(path, input) {
			return nil, errors.New(errors.ErrCodeInvalidPath,
				"%s output would overwrite the input trace %s (use -o to choose another path)", format, input)
		}
		if err := writeFile(path, data); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	out, err := createFile(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

// createFile creates path, and its parent directories, for writing.
func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
