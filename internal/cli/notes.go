package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/notegraph/pkg/errors"
	noteio "github.com/matzehuels/notegraph/pkg/io"
	"github.com/matzehuels/notegraph/pkg/note"
)

// addCommand creates the add command, which appends a note to a notes file.
func (c *CLI) addCommand() *cobra.Command {
	var (
		n     note.Note
		tags  []string
		links []string
	)

	cmd := &cobra.Command{
		Use:   "add [notes.json|notes.yaml]",
		Short: "Append a note to a notes file",
		Long: `Append a note to a notes file.

The file is created if it does not exist. Without --id the note gets the next
free sequential id. Links can be given with --link or written in the content
as [[id]].`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range tags {
				n.Tags = append(n.Tags, note.Tag(t))
			}
			for _, l := range links {
				n.Links = append(n.Links, note.ID(l))
			}
			return c.runAdd(args[0], n)
		},
	}

	cmd.Flags().StringVar((*string)(&n.ID), "id", "", "note id (default: next sequential id)")
	cmd.Flags().StringVarP(&n.Title, "title", "t", "", "note title (required)")
	cmd.Flags().StringVarP(&n.Content, "content", "c", "", "note body; [[id]] references become links")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag (repeatable)")
	cmd.Flags().StringSliceVar(&links, "link", nil, "id of a linked note (repeatable)")

	return cmd
}

func (c *CLI) runAdd(path string, n note.Note) error {
	store, err := openStore(path)
	if err != nil {
		return err
	}
	if n.ID != "" {
		if _, err := store.Get(n.ID); err == nil {
			return errors.New(errors.ErrCodeInvalidNoteID, "note %q already exists", n.ID)
		}
	}

	stored, err := store.Put(n)
	if err != nil {
		return err
	}
	if err := saveStore(store, path); err != nil {
		return err
	}

	printSuccess("Added note %s", StyleHighlight.Render(string(stored.ID)))
	printFile(path)
	return nil
}

// noteEdit holds the fields given to edit. Nil fields are left unchanged.
type noteEdit struct {
	title   *string
	content *string
	tags    []note.Tag
	links   []note.ID
	setTags bool
	setLink bool
}

// apply returns n with the edit applied.
func (e noteEdit) apply(n note.Note) note.Note {
	if e.title != nil {
		n.Title = *e.title
	}
	if e.content != nil {
		n.Content = *e.content
	}
	if e.setTags {
		n.Tags = e.tags
	}
	if e.setLink {
		n.Links = e.links
	}
	return n
}

// editCommand creates the edit command, which updates a note in place.
func (c *CLI) editCommand() *cobra.Command {
	var (
		title, content string
		tags, links    []string
	)

	cmd := &cobra.Command{
		Use:   "edit [notes.json|notes.yaml] [id]",
		Short: "Update a note in a notes file",
		Long: `Update a note in a notes file.

Only the given fields change. --tag and --link replace the whole tag or link
list; pass --tag= or --link= to clear it. The note keeps its id and position.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var e noteEdit
			flags := cmd.Flags()
			if flags.Changed("title") {
				e.title = &title
			}
			if flags.Changed("content") {
				e.content = &content
			}
			if flags.Changed("tag") {
				e.setTags = true
				for _, t := range tags {
					e.tags = append(e.tags, note.Tag(t))
				}
			}
			if flags.Changed("link") {
				e.setLink = true
				for _, l := range links {
					e.links = append(e.links, note.ID(l))
				}
			}
			return c.runEdit(args[0], note.ID(args[1]), e)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "new body; [[id]] references become links")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag (repeatable, replaces existing tags)")
	cmd.Flags().StringSliceVar(&links, "link", nil, "id of a linked note (repeatable, replaces existing links)")

	return cmd
}

func (c *CLI) runEdit(path string, id note.ID, e noteEdit) error {
	notes, err := noteio.ImportFile(path)
	if err != nil {
		return err
	}
	store, err := note.NewMemoryStore(notes...)
	if err != nil {
		return err
	}
	n, err := store.Get(id)
	if err != nil {
		return err
	}
	if _, err := store.Put(e.apply(n)); err != nil {
		return err
	}
	if err := saveStore(store, path); err != nil {
		return err
	}
	printSuccess("Updated note %s", StyleHighlight.Render(string(id)))
	printFile(path)
	return nil
}

// removeCommand creates the remove command, which deletes a note by id.
func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [notes.json|notes.yaml] [id]",
		Short: "Delete a note from a notes file",
		Long: `Delete a note from a notes file.

Links from other notes to the removed note are left in place; they are
ignored by the layout like any link to an unknown note.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRemove(args[0], note.ID(args[1]))
		},
	}
}

func (c *CLI) runRemove(path string, id note.ID) error {
	notes, err := noteio.ImportFile(path)
	if err != nil {
		return err
	}
	store, err := note.NewMemoryStore(notes...)
	if err != nil {
		return err
	}
	if err := store.Delete(id); err != nil {
		return err
	}
	if err := saveStore(store, path); err != nil {
		return err
	}
	printSuccess("Removed note %s", StyleHighlight.Render(string(id)))
	return nil
}

// listCommand creates the list command, which prints the notes of a file.
func (c *CLI) listCommand() *cobra.Command {
	var query, tag string

	cmd := &cobra.Command{
		Use:   "list [notes.json|notes.yaml|dir]",
		Short: "List the notes in a notes file",
		Long: `List the notes in a notes file.

--query matches case-insensitively against title, content and tags. --tag
keeps only notes carrying that exact tag. Links to notes that do not exist
are shown dimmed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList(args[0], query, tag)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "search text")
	cmd.Flags().StringVar(&tag, "tag", "", "exact tag")

	return cmd
}

func (c *CLI) runList(path, query, tag string) error {
	notes, err := noteio.ImportFile(path)
	if err != nil {
		return err
	}
	known := make(map[note.ID]bool, len(notes))
	for _, n := range notes {
		known[n.ID] = true
	}

	selected := note.Filter(notes, query, tag)
	if len(selected) == 0 {
		printInfo("No matching notes")
		return nil
	}

	fmt.Fprintln(c.out, notesTable(selected, known))
	printDetail("%d of %d notes", len(selected), len(notes))
	return nil
}

// notesTable renders notes as a bordered table.
func notesTable(notes []note.Note, known map[note.ID]bool) string {
	rows := make([][]string, len(notes))
	for i, n := range notes {
		tags := make([]string, len(n.Tags))
		for j, t := range n.Tags {
			tags[j] = string(t)
		}
		links := make([]string, 0, len(n.Links))
		for _, id := range n.AllLinks() {
			if known[id] {
				links = append(links, string(id))
			} else {
				links = append(links, StyleDim.Render(string(id)))
			}
		}
		rows[i] = []string{string(n.ID), n.Title, strings.Join(tags, ", "), strings.Join(links, ", ")}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Title", "Tags", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

// openStore loads a notes file into a store. A missing file yields an empty
// store so that add can create it.
func openStore(path string) (*note.MemoryStore, error) {
	if _, err := noteio.DetectFormat(path); err != nil {
		return nil, err
	}
	notes, err := noteio.ImportFile(path)
	if err != nil && !errors.Is(err, errors.ErrCodeFileNotFound) {
		return nil, err
	}
	return note.NewMemoryStore(notes...)
}

// saveStore writes every note of s back to path.
func saveStore(s *note.MemoryStore, path string) error {
	notes, err := s.List()
	if err != nil {
		return err
	}
	return noteio.ExportFile(notes, path)
}
