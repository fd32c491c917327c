package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/notegraph/pkg/errors"
	"github.com/matzehuels/notegraph/pkg/graph"
	"github.com/matzehuels/notegraph/pkg/pipeline"
)

// inspectCommand creates the inspect command for browsing a layout in the terminal.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags optionFlags
		at    string
	)

	cmd := &cobra.Command{
		Use:   "inspect [notes.json|notes.yaml|dir|layout.json]",
		Short: "Browse node positions and links interactively",
		Long: `Browse node positions and links interactively.

Accepts a notes file, which is laid out first, or a layout produced by
'layout' (any file ending in .layout.json).

--at x,y starts with the node drawn at that point selected, for example a
point clicked in the rendered SVG.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNotesFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), args[0], opts, at)
		},
	}

	flags.registerLayout(cmd)
	cmd.Flags().StringVar(&at, "at", "", "select the node at this point (x,y in layout pixels)")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, opts pipeline.Options, at string) error {
	l, err := c.loadLayout(ctx, input, opts)
	if err != nil {
		return err
	}

	m, err := selectAt(NewNodeListModel(l), at)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}

// loadLayout reads a stored layout, or imports notes and lays them out.
func (c *CLI) loadLayout(ctx context.Context, input string, opts pipeline.Options) (graph.Layout, error) {
	if strings.HasSuffix(input, ".layout.json") {
		return graph.ReadLayoutFile(input)
	}
	runner := c.newRunner()
	notes, _, err := runner.Import(ctx, input)
	if err != nil {
		return graph.Layout{}, err
	}
	return graph.FromRadial(runner.ComputeLayout(ctx, notes, opts), opts.NodeRadius), nil
}

// selectAt applies an --at value to m. An empty value leaves m unchanged.
func selectAt(m NodeListModel, at string) (NodeListModel, error) {
	if at == "" {
		return m, nil
	}
	xs, ys, ok := strings.Cut(at, ",")
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if !ok || errX != nil || errY != nil {
		return m, errors.New(errors.ErrCodeInvalidInput, "--at: want x,y, got %q", at)
	}
	m, hit := m.SelectAt(x, y)
	if !hit {
		return m, errors.New(errors.ErrCodeNotFound, "no node at %s", at)
	}
	return m, nil
}
