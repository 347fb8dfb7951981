// Package cli implements the marbles command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/marbles/pkg/buildinfo"
	"github.com/matzehuels/marbles/pkg/config"
	mio "github.com/matzehuels/marbles/pkg/io"
	"github.com/matzehuels/marbles/pkg/observability"
	"github.com/matzehuels/marbles/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "marbles"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the default config file location.
	ConfigPath string

	// Stdin is read when a command's input is "-". Defaults to os.Stdin.
	Stdin io.Reader
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Stdin:  os.Stdin,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Marbles draws marble diagrams from reactive pipeline traces",
		Long:         `Marbles turns an execution trace of a reactive pipeline into a marble diagram: one box per stage, a timeline per stage, the values each stage emitted, and an explanation of every operator.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetPipelineHooks(observability.LogHooks{Logger: c.Logger})
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/marbles/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.explainCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Helpers
// =============================================================================

// loadConfig returns the effective configuration for this invocation.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// readInput reads the raw trace at path, or from Stdin when path is "-".
func (c *CLI) readInput(path string) ([]byte, error) {
	if path == mio.Stdin {
		in := c.Stdin
		if in == nil {
			in = os.Stdin
		}
		return mio.ReadTrace(in)
	}
	return mio.ImportTrace(path)
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so the configured formats apply.
func parseFormats(s string) []string {
	return parseList(s)
}
