package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/notegraph/pkg/buildinfo"
	"github.com/matzehuels/notegraph/pkg/errors"
	"github.com/matzehuels/notegraph/pkg/observability"
	"github.com/matzehuels/notegraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "notegraph"

	// configFileName is looked up in the working directory when --config is not given.
	configFileName = appName + ".toml"
)

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

	// configPath is bound to the --config flag.
	configPath string

	// config holds option defaults loaded from the config file.
	config pipeline.Options

	// metricsPath is bound to the --metrics-file flag.
	metricsPath string
	metrics     *observability.Metrics

	// out receives status output.
	out io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
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
		Short:        "Notegraph lays out linked notes as a radial graph",
		Long:         `Notegraph is a CLI tool for turning a collection of linked notes into a deterministic radial graph layout and rendering it as SVG, PNG, PDF or Graphviz DOT.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.writeMetrics()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./"+configFileName+" or $XDG_CONFIG_HOME/"+appName+"/config.toml)")
	root.PersistentFlags().StringVar(&c.metricsPath, "metrics-file", "", "write Prometheus metrics in text format to this file after the command")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file, attaches the logger to the command context
// and installs logging hooks.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, path, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))

	hooks := &logHooks{logger: c.Logger}
	if c.metricsPath == "" {
		observability.SetPipelineHooks(hooks)
		observability.SetWatchHooks(hooks)
		return nil
	}
	if err := errors.ValidatePath(c.metricsPath); err != nil {
		return fmt.Errorf("--metrics-file: %w", err)
	}
	c.metrics = observability.NewMetrics()
	observability.SetPipelineHooks(observability.MultiPipeline(hooks, c.metrics))
	observability.SetWatchHooks(observability.MultiWatch(hooks, c.metrics))
	return nil
}

// writeMetrics writes collected metrics when --metrics-file is set.
func (c *CLI) writeMetrics() error {
	if c.metrics == nil {
		return nil
	}
	if err := c.metrics.WriteFile(c.metricsPath); err != nil {
		return fmt.Errorf("write metrics %s: %w", c.metricsPath, err)
	}
	c.Logger.Debug("wrote metrics", "path", c.metricsPath)
	return nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/notegraph/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. A directory input
// "vault/" yields the sibling base "vault".
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		input = filepath.Clean(input)
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where the artifact for format is written. A single
// format with an explicit output path is written there as is. Layout JSON gets
// a ".layout.json" suffix so it never overwrites a JSON notes file.
func outputPath(format, input, output string, single bool) string {
	if single && output != "" {
		return output
	}
	base := basePath(output, input)
	if format == pipeline.FormatJSON {
		return base + ".layout.json"
	}
	return base + "." + format
}

// parseFormats parses a comma-separated format string into a slice.
// Whitespace around entries is ignored. An empty string yields nil so the
// configured or default formats apply.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// checkOutput validates an -o value. An empty value selects the default
// path next to the input.
func checkOutput(output string) error {
	if output == "" {
		return nil
	}
	return errors.ValidatePath(output)
}

// writeArtifacts writes every rendered format to disk in the order given by
// formats and returns the written paths.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	formats = slices.Compact(slices.Clone(formats))
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(format, input, output, len(formats) == 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// trimLayoutSuffix maps "notes.layout.json" to "notes.json" so outputs
// derived from a layout file are named after the notes file.
func trimLayoutSuffix(path string) string {
	const suffix = ".layout.json"
	if strings.HasSuffix(path, suffix) {
		return strings.TrimSuffix(path, suffix) + ".json"
	}
	return path
}
