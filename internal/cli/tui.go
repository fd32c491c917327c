package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/notegraph/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Key bindings
// =============================================================================

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Follow key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
	Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
	Follow: key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "follow link")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Follow, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Follow, k.Help, k.Quit},
	}
}

// =============================================================================
// NodeListModel - Interactive layout browser
// =============================================================================

// NodeListModel is the bubbletea model for browsing a computed layout.
// The table lists nodes in layout order; the pane below it shows the
// selected node's links in both directions.
type NodeListModel struct {
	Layout graph.Layout
	Cursor int
	Height int
	Offset int

	help     help.Model
	outgoing map[string][]string
	incoming map[string][]string
	index    map[string]int
}

// NewNodeListModel creates a new node list model.
func NewNodeListModel(l graph.Layout) NodeListModel {
	m := NodeListModel{
		Layout:   l,
		Height:   15,
		help:     help.New(),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		index:    make(map[string]int, len(l.Nodes)),
	}
	for i, n := range l.Nodes {
		if _, ok := m.index[n.ID]; !ok {
			m.index[n.ID] = i
		}
	}
	for _, e := range l.Edges {
		m.outgoing[e.Source] = append(m.outgoing[e.Source], e.Target)
		m.incoming[e.Target] = append(m.incoming[e.Target], e.Source)
	}
	return m
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m = m.moveTo(m.Cursor - 1)
		case key.Matches(msg, keys.Down):
			m = m.moveTo(m.Cursor + 1)
		case key.Matches(msg, keys.Top):
			m = m.moveTo(0)
		case key.Matches(msg, keys.Bottom):
			m = m.moveTo(len(m.Layout.Nodes) - 1)
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, keys.Follow):
			// Follow the first outgoing link.
			if n, ok := m.selected(); ok {
				if targets := m.outgoing[n.ID]; len(targets) > 0 {
					m = m.moveTo(m.index[targets[0]])
				}
			}
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
		m = m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo places the cursor at i, clamped to the node list, and scrolls the
// window so the cursor stays visible.
func (m NodeListModel) moveTo(i int) NodeListModel {
	if i >= len(m.Layout.Nodes) {
		i = len(m.Layout.Nodes) - 1
	}
	if i < 0 {
		i = 0
	}
	m.Cursor = i
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

// SelectAt moves the cursor to the node drawn at (x, y) in layout
// coordinates. The node circle is the hit area. It reports whether a node
// was hit; on a miss the model is returned unchanged.
func (m NodeListModel) SelectAt(x, y float64) (NodeListModel, bool) {
	r := m.Layout.NodeRadius
	if r <= 0 {
		r = graph.DefaultNodeRadius
	}
	id, ok := m.Layout.ToRadial().NodeAt(x, y, r)
	if !ok {
		return m, false
	}
	return m.moveTo(m.index[string(id)]), true
}

func (m NodeListModel) selected() (graph.Node, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Layout.Nodes) {
		return graph.Node{}, false
	}
	return m.Layout.Nodes[m.Cursor], true
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout"))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %.0f×%.0f  centre (%.1f, %.1f)  radius %.1f",
		m.Layout.Width, m.Layout.Height, m.Layout.CenterX, m.Layout.CenterY, m.Layout.Radius)))
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	b.WriteString("\n\n")

	if len(m.Layout.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("  no notes"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Layout.Nodes) {
		end = len(m.Layout.Nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Layout.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			n.ID,
			n.Title,
			fmt.Sprintf("%.1f", n.X),
			fmt.Sprintf("%.1f", n.Y),
			fmt.Sprintf("%d", len(m.outgoing[n.ID])),
			fmt.Sprintf("%d", len(m.incoming[n.ID])),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Title", "X", "Y", "Out", "In").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col >= 3 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Layout.Nodes))))
	b.WriteString("\n\n")

	if n, ok := m.selected(); ok {
		b.WriteString(listSelectedStyle.Render(n.DisplayLabel()))
		b.WriteString("\n")
		b.WriteString("  " + listDimStyle.Render("links to    ") + m.linkList(m.outgoing[n.ID]) + "\n")
		b.WriteString("  " + listDimStyle.Render("linked from ") + m.linkList(m.incoming[n.ID]) + "\n")
	}

	return b.String()
}

// linkList renders ids with their titles, or a dash when empty.
func (m NodeListModel) linkList(ids []string) string {
	if len(ids) == 0 {
		return listDimStyle.Render("—")
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		label := id
		if idx, ok := m.index[id]; ok {
			label = m.Layout.Nodes[idx].DisplayLabel()
		}
		parts[i] = StyleLink.Render(label)
	}
	return strings.Join(parts, listDimStyle.Render(", "))
}
