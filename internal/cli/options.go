package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/marbles/pkg/marble"
	"github.com/matzehuels/marbles/pkg/pipeline"
)

// optionFlags are the generation settings shared by render, explain and
// inspect. A flag only overrides the configuration when it was set.
type optionFlags struct {
	shapes        string
	marker        string
	legacyKeys    bool
	noErrors      bool
	noAlternation bool
	noStructured  bool
}

func (f *optionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.shapes, "shapes", "", "marble shapes in alternation order: circle, square (comma-separated)")
	cmd.Flags().StringVar(&f.marker, "marker", marble.DefaultRemapMarker, "operator class substring that switches marble shape")
	cmd.Flags().BoolVar(&f.legacyKeys, "legacy-keys", false, "split stage keys on every comma")
	cmd.Flags().BoolVar(&f.noErrors, "no-error-signals", false, "draw error stages like emitting ones")
	cmd.Flags().BoolVar(&f.noAlternation, "no-alternation", false, "always use the first marble shape")
	cmd.Flags().BoolVar(&f.noStructured, "no-structured", false, "show object values inline")
}

// resolveOptions layers the flags that were set on top of the loaded configuration.
func (c *CLI) resolveOptions(cmd *cobra.Command, f *optionFlags) (pipeline.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("shapes") {
		shapes, err := marble.ParseShapes(parseList(f.shapes))
		if err != nil {
			return pipeline.Options{}, err
		}
		cfg.Shapes = marble.Strings(shapes)
	}
	if flags.Changed("marker") {
		cfg.RemapMarker = f.marker
	}
	if flags.Changed("legacy-keys") {
		cfg.LegacyKeys = f.legacyKeys
	}
	if flags.Changed("no-error-signals") {
		cfg.Features.ErrorSignals = !f.noErrors
	}
	if flags.Changed("no-alternation") {
		cfg.Features.ShapeAlternation = !f.noAlternation
	}
	if flags.Changed("no-structured") {
		cfg.Features.StructuredValues = !f.noStructured
	}

	if err := cfg.Validate(); err != nil {
		return pipeline.Options{}, err
	}
	opts := cfg.PipelineOptions()
	opts.Logger = loggerFromContext(cmd.Context())
	return opts, nil
}

// parseList splits a comma-separated flag value, dropping blanks.
func parseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
