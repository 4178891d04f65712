// Package render turns tasks into terminal text: a flat table or a board
// with one column per status. Nothing here touches the task file.
package render

import (
	"strconv"
	"strings"

	"tasklist/internal/storage"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"golang.org/x/term"
)

const (
	// DefaultWidth is assumed when the terminal width cannot be detected.
	DefaultWidth = 100

	MinColumnWidth = 16
	MaxColumnWidth = 48

	// EmptyNotice replaces the table or board when there is nothing to show.
	EmptyNotice = "No tasks found."

	DefaultTitle = "My Tasks"

	columnChrome = 3 // padding on both sides plus the divider
	cellGap      = "  "
	minDescWidth = 20
	ellipsis     = "…"
)

// Options controls a single rendering.
type Options struct {
	Title  string  // project title; DefaultTitle when empty
	Width  int     // terminal width; DefaultWidth when <= 0
	Styles *Styles // nil means the default theme
}

func (o Options) title() string {
	if strings.TrimSpace(o.Title) == "" {
		return DefaultTitle
	}
	return o.Title
}

func (o Options) width() int {
	if o.Width <= 0 {
		return DefaultWidth
	}
	return o.Width
}

func (o Options) styles() *Styles {
	if o.Styles == nil {
		return NewStyles(nil)
	}
	return o.Styles
}

// TerminalWidth reports the width of the terminal behind fd, or DefaultWidth
// if fd is not a terminal.
func TerminalWidth(fd uintptr) int {
	w, _, err := term.GetSize(int(fd))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// ColumnWidth returns the content width of one board column for a terminal
// termWidth cells wide.
func ColumnWidth(termWidth int) int {
	if termWidth <= 0 {
		termWidth = DefaultWidth
	}
	w := termWidth/len(storage.Statuses) - columnChrome
	switch {
	case w < MinColumnWidth:
		return MinColumnWidth
	case w > MaxColumnWidth:
		return MaxColumnWidth
	}
	return w
}

// Column is the tasks of one status, in read order.
type Column struct {
	Status storage.Status
	Tasks  []storage.Task
}

// GroupByStatus partitions tasks into one column per status, in board order.
// Relative order within a column is the input order.
func GroupByStatus(tasks []storage.Task) []Column {
	cols := make([]Column, len(storage.Statuses))
	index := make(map[storage.Status]int, len(storage.Statuses))
	for i, st := range storage.Statuses {
		cols[i].Status = st
		index[st] = i
	}
	for _, t := range tasks {
		i, ok := index[t.Status]
		if !ok {
			i = index[storage.StatusNotStarted]
		}
		cols[i].Tasks = append(cols[i].Tasks, t)
	}
	return cols
}

// Table renders the flat view: title, rule, then one row per task with the
// description word-wrapped to the space left by the other columns.
func Table(tasks []storage.Task, opts Options) string {
	st := opts.styles()
	if len(tasks) == 0 {
		return st.NoticeStyle.Render(EmptyNotice) + "\n"
	}

	idW := runewidth.StringWidth("ID")
	for _, t := range tasks {
		if w := len(strconv.Itoa(t.ID)); w > idW {
			idW = w
		}
	}
	statusW := runewidth.StringWidth("STATUS")
	for _, s := range storage.Statuses {
		if w := runewidth.StringWidth(s.Label()); w > statusW {
			statusW = w
		}
	}
	tsW := len(storage.TimestampLayout)
	gaps := 3 * len(cellGap)

	descW := opts.width() - idW - statusW - tsW - gaps
	if descW < minDescWidth {
		descW = minDescWidth
	}
	total := idW + statusW + descW + tsW + gaps

	var b strings.Builder
	writeHeader(&b, opts.title(), total, st)

	head := runewidth.FillRight("ID", idW) + cellGap +
		runewidth.FillRight("STATUS", statusW) + cellGap +
		runewidth.FillRight("DESCRIPTION", descW) + cellGap +
		"UPDATED"
	b.WriteString(st.MutedStyle.Render(head))
	b.WriteString("\n")

	blankID := strings.Repeat(" ", idW)
	blankStatus := strings.Repeat(" ", statusW)
	for _, t := range tasks {
		lines := wrapDescription(t.Description, descW)
		for i, line := range lines {
			var row string
			if i == 0 {
				row = st.IDStyle.Render(runewidth.FillLeft(strconv.Itoa(t.ID), idW)) + cellGap +
					st.StatusStyle(t.Status).Render(runewidth.FillRight(t.Status.Label(), statusW)) + cellGap +
					st.TextStyle.Render(runewidth.FillRight(line, descW)) + cellGap +
					st.MutedStyle.Render(t.Timestamp)
			} else {
				row = blankID + cellGap + blankStatus + cellGap + st.TextStyle.Render(line)
			}
			b.WriteString(strings.TrimRight(row, " "))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Board renders the kanban view: one column per status with a heading and
// one card per task.
func Board(tasks []storage.Task, opts Options) string {
	st := opts.styles()
	if len(tasks) == 0 {
		return st.NoticeStyle.Render(EmptyNotice) + "\n"
	}

	colW := ColumnWidth(opts.width())
	cols := GroupByStatus(tasks)

	blocks := make([]string, len(cols))
	for i, col := range cols {
		lines := []string{
			st.HeadingStyle.Render(runewidth.FillRight(col.Status.Heading(), colW)),
			st.RuleStyle.Render(strings.Repeat("─", colW)),
		}
		for _, t := range col.Tasks {
			lines = append(lines, renderCard(t, colW, st)...)
		}

		style := st.ColumnStyle
		if i == len(cols)-1 {
			style = style.BorderRight(false)
		}
		blocks[i] = style.Render(strings.Join(lines, "\n"))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)

	var b strings.Builder
	writeHeader(&b, opts.title(), lipgloss.Width(board), st)
	b.WriteString(board)
	b.WriteString("\n")
	return b.String()
}

// CardLine returns the first line of a board card, unstyled: the id, a space
// and the description truncated so the whole line fits in width cells.
func CardLine(t storage.Task, width int) string {
	prefix, text := cardParts(t, width)
	return prefix + text
}

func cardParts(t storage.Task, width int) (prefix, text string) {
	id := strconv.Itoa(t.ID)
	prefix = id + " "
	avail := width - runewidth.StringWidth(prefix)
	if avail < 1 {
		// No room left for text; the id alone is cut to the column.
		return runewidth.Truncate(id, width, ellipsis), ""
	}
	return prefix, runewidth.Truncate(t.Description, avail, ellipsis)
}

func renderCard(t storage.Task, width int, st *Styles) []string {
	prefix, text := cardParts(t, width)
	lines := []string{st.IDStyle.Render(prefix) + st.TextStyle.Render(text)}
	if t.Timestamp != "" {
		lines = append(lines, st.MutedStyle.Render(runewidth.Truncate(t.Timestamp, width, ellipsis)))
	}
	return lines
}

func writeHeader(b *strings.Builder, title string, width int, st *Styles) {
	b.WriteString(st.TitleStyle.Render("Project: " + title))
	b.WriteString("\n")
	b.WriteString(st.RuleStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
}

// wrapDescription word-wraps d to width, hard-wrapping words that are longer
// than a whole line.
func wrapDescription(d string, width int) []string {
	wrapped := wrap.String(wordwrap.String(d, width), width)
	return strings.Split(wrapped, "\n")
}
