// Package pipeline provides the layout and render pipeline for notegraph.
//
// This package implements the complete import → layout → render pipeline used
// by every CLI command. By centralizing this logic, all entry points agree on
// defaults, validation, and output formats.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Import: Read notes from a JSON or YAML file (optional, see [Runner.ExecuteFile])
//  2. Layout: Filter the notes and compute radial positions with [radial.Compute]
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	}
//	result, err := runner.ExecuteFile(ctx, "notes.json", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l := pipeline.Layout(ctx, notes, opts)
//	artifacts, err := pipeline.Render(ctx, graph.FromRadial(l, opts.NodeRadius), opts)
//
// [radial.Compute]: github.com/matzehuels/notegraph/pkg/radial.Compute
package pipeline

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/notegraph/pkg/errors"
	"github.com/matzehuels/notegraph/pkg/graph"
	"github.com/matzehuels/notegraph/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for all commands
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultNodeRadius is the default node circle radius in pixels.
	DefaultNodeRadius = graph.DefaultNodeRadius

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultEngine is the default SVG producer.
	DefaultEngine = EngineCanvas
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Engine constants select how SVG is produced.
const (
	EngineCanvas   = "canvas"
	EngineGraphviz = "graphviz"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidEngines is the set of supported SVG engines.
var ValidEngines = map[string]bool{
	EngineCanvas:   true,
	EngineGraphviz: true,
}

// validate is a singleton validator instance.
var validate = validator.New()

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// The struct tags allow loading it from a TOML config file.
type Options struct {
	// Layout options
	Width      float64 `toml:"width" json:"width,omitempty" validate:"gt=0"`
	Height     float64 `toml:"height" json:"height,omitempty" validate:"gt=0"`
	NodeRadius float64 `toml:"node_radius" json:"node_radius,omitempty" validate:"gt=0"`
	Query      string  `toml:"query" json:"query,omitempty"`
	Tag        string  `toml:"tag" json:"tag,omitempty"`

	// Render options
	Formats []string     `toml:"formats" json:"formats,omitempty" validate:"min=1,dive,oneof=svg png pdf json dot"`
	Engine  string       `toml:"engine" json:"engine,omitempty" validate:"oneof=canvas graphviz"`
	Style   render.Style `toml:"style" json:"style,omitempty"`
	Arrows  bool         `toml:"arrows" json:"arrows,omitempty"`
	Scale   float64      `toml:"scale" json:"scale,omitempty" validate:"gt=0,lte=10"`

	// MaxLabel truncates node labels to this many runes; zero keeps them whole.
	MaxLabel      int  `toml:"max_label" json:"max_label,omitempty" validate:"gte=0"`
	HideSelfLoops bool `toml:"hide_self_loops" json:"hide_self_loops,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-" json:"-" validate:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Notes are the notes that were laid out, after filtering.
	Notes int

	// Layout is the serialized layout.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Dropped    int
	ImportTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that an engine name is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid engine: %q (must be one of: canvas, graphviz)", engine)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills every unset field with its default.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.NodeRadius == 0 {
		o.NodeRadius = DefaultNodeRadius
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.Style = o.Style.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options against their constraints.
// Call SetDefaults first; zero values are rejected.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// formatValidationError converts validator errors to coded errors, reporting
// the first failing field.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !stderrors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}

	e := validationErrs[0]
	field := e.StructField()
	switch {
	case strings.HasPrefix(field, "Formats"):
		if e.Tag() == "oneof" {
			return ValidateFormat(fmt.Sprint(e.Value()))
		}
		return errors.New(errors.ErrCodeInvalidFormat, "at least one output format is required")
	case field == "Engine":
		return ValidateEngine(fmt.Sprint(e.Value()))
	}

	switch e.Tag() {
	case "required":
		return errors.New(errors.ErrCodeInvalidInput, "%s: field is required", field)
	case "gte":
		return errors.New(errors.ErrCodeInvalidInput, "%s: must be at least %s, got %v", field, e.Param(), e.Value())
	case "gt":
		return errors.New(errors.ErrCodeInvalidInput, "%s: must be greater than %s, got %v", field, e.Param(), e.Value())
	case "lte":
		return errors.New(errors.ErrCodeInvalidInput, "%s: must not exceed %s, got %v", field, e.Param(), e.Value())
	default:
		return errors.New(errors.ErrCodeInvalidInput, "%s: validation failed (%s)", field, e.Tag())
	}
}
