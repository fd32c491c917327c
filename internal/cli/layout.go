package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/notegraph/pkg/graph"
	"github.com/matzehuels/notegraph/pkg/pipeline"
)

// layoutCommand creates the layout command for computing radial layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  optionFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [notes.json|notes.yaml|dir]",
		Short: "Compute a radial layout from a notes file",
		Long: `Compute a radial layout from a notes file.

The layout command reads notes (JSON, YAML or a directory of Markdown
files), places them evenly on a circle
in file order and writes the positions and resolved links as a layout.json
file (same format as 'render -f json'). The layout can be rendered to
SVG/PNG/PDF with the 'visualize' command.

Links to notes that do not exist are ignored.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNotesFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.registerLayout(cmd)

	return cmd
}

// runLayout loads the notes, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	if err := checkOutput(output); err != nil {
		return err
	}
	opts.Formats = []string{pipeline.FormatJSON}

	prog := newProgress(c.Logger)
	result, err := c.newRunner().ExecuteFile(ctx, input, opts)
	if err != nil {
		return fmt.Errorf("layout %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Laid out %d notes", result.Notes))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}

	if err := graph.WriteLayoutFile(result.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
