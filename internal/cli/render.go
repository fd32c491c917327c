package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/notegraph/pkg/pipeline"
)

// renderCommand creates the render command, which lays out and renders a
// notes file in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		flags  optionFlags
	)

	cmd := &cobra.Command{
		Use:   "render [notes.json|notes.yaml|dir]",
		Short: "Lay out and render a notes file",
		Long: `Lay out and render a notes file.

This is a shortcut for 'layout' followed by 'visualize'. Every requested
format is rendered concurrently; png and pdf are converted from the svg and
require rsvg-convert.

Outputs are written next to the input unless -o is given. With a single
format, -o names the file; with several, it is used as the base path.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNotesFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.registerLayout(cmd)
	flags.registerRender(cmd)

	return cmd
}

// runRender executes the full pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string) error {
	if err := checkOutput(output); err != nil {
		return err
	}
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	result, err := c.newRunner().ExecuteFile(ctx, input, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d notes", result.Notes)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount)
	return nil
}
