package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/notegraph/pkg/errors"
	"github.com/matzehuels/notegraph/pkg/pipeline"
)

// loadConfig reads option defaults from a TOML file. An explicit path must
// exist. Without one, ./notegraph.toml and then the XDG config file are tried
// and a missing file is not an error. The returned path is the file that was
// read, or empty.
func loadConfig(explicit string) (pipeline.Options, string, error) {
	var opts pipeline.Options

	path := explicit
	if path == "" {
		path = findConfig()
		if path == "" {
			return opts, "", nil
		}
	}

	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return opts, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return opts, "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return opts, "", errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return opts, "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if opts.Engine != "" {
		if err := pipeline.ValidateEngine(opts.Engine); err != nil {
			return opts, "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
		}
	}
	return opts, path, nil
}

// findConfig returns the first config file that exists, or "".
func findConfig() string {
	candidates := []string{configFileName}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "config.toml"))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// =============================================================================
// Option Flags
// =============================================================================

// optionFlags are the pipeline flags shared by layout, render, visualize and
// watch. Only flags the user set override the config file.
type optionFlags struct {
	width      float64
	height     float64
	nodeRadius float64
	query      string
	tag        string
	formats    string
	engine     string
	arrows     bool
	scale      float64
	background string
	maxLabel   int
	hideLoops  bool
}

// registerLayout adds viewport and filter flags.
func (f *optionFlags) registerLayout(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "frame width")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "frame height")
	cmd.Flags().Float64Var(&f.nodeRadius, "node-radius", pipeline.DefaultNodeRadius, "node circle radius")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "only lay out notes whose title, content or tags contain this text")
	cmd.Flags().StringVar(&f.tag, "tag", "", "only lay out notes carrying this tag")
}

// registerRender adds output flags.
func (f *optionFlags) registerRender(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVar(&f.engine, "engine", pipeline.DefaultEngine, "svg engine: canvas (default), graphviz")
	cmd.Flags().BoolVar(&f.arrows, "arrows", false, "draw arrowheads (graphviz engine)")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "png resolution multiplier")
	cmd.Flags().StringVar(&f.background, "background", "", "background colour (default: transparent)")
	cmd.Flags().IntVar(&f.maxLabel, "max-label", 0, "truncate labels to this many characters (0 keeps them whole)")
	cmd.Flags().BoolVar(&f.hideLoops, "hide-self-loops", false, "do not draw links from a note to itself")

	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("engine", completeEngines)
}

// apply overlays the flags the user set on base.
func (f *optionFlags) apply(cmd *cobra.Command, base pipeline.Options) pipeline.Options {
	opts := base
	opts.Formats = append([]string(nil), base.Formats...)
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}

	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("node-radius") {
		opts.NodeRadius = f.nodeRadius
	}
	if changed("query") {
		opts.Query = f.query
	}
	if changed("tag") {
		opts.Tag = f.tag
	}
	if changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if changed("engine") {
		opts.Engine = f.engine
	}
	if changed("arrows") {
		opts.Arrows = f.arrows
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	if changed("background") {
		opts.Style.Background = f.background
	}
	if changed("max-label") {
		opts.MaxLabel = f.maxLabel
	}
	if changed("hide-self-loops") {
		opts.HideSelfLoops = f.hideLoops
	}
	return opts
}

// options builds validated pipeline options from config and flags.
func (c *CLI) options(cmd *cobra.Command, f *optionFlags) (pipeline.Options, error) {
	opts := f.apply(cmd, c.config)
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}
