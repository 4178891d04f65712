package ui

import (
	"fmt"
	"strconv"
	"strings"

	"tasklist/internal/storage"

	"github.com/mattn/go-runewidth"
)

// noSelection is the cursor value of an empty list.
const noSelection = -1

// TaskList is the cursor-over-tasks part of the session.
type TaskList struct {
	tasks  []storage.Task
	cursor int
	width  int
	height int
	styles *Styles
}

// NewTaskList creates an empty list with no selection.
func NewTaskList(styles *Styles) *TaskList {
	return &TaskList{cursor: noSelection, styles: styles}
}

// SetSize sets the area available to View.
func (l *TaskList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// SetTasks replaces the tasks and keeps the cursor in range: an empty list
// has no selection, a cursor past the end moves to the last task, and a
// non-empty list with no selection selects the first task.
func (l *TaskList) SetTasks(tasks []storage.Task) {
	l.tasks = tasks
	switch {
	case len(tasks) == 0:
		l.cursor = noSelection
	case l.cursor >= len(tasks):
		l.cursor = len(tasks) - 1
	case l.cursor < 0:
		l.cursor = 0
	}
}

// Tasks returns the listed tasks.
func (l *TaskList) Tasks() []storage.Task {
	return l.tasks
}

// Len returns the number of tasks.
func (l *TaskList) Len() int {
	return len(l.tasks)
}

// Cursor returns the selected index, or -1 when nothing is selected.
func (l *TaskList) Cursor() int {
	return l.cursor
}

// Selected returns the selected task.
func (l *TaskList) Selected() (storage.Task, bool) {
	if l.cursor < 0 || l.cursor >= len(l.tasks) {
		return storage.Task{}, false
	}
	return l.tasks[l.cursor], true
}

// Down moves the cursor one row, wrapping from the last row to the first.
func (l *TaskList) Down() {
	if len(l.tasks) == 0 {
		return
	}
	l.cursor = (l.cursor + 1) % len(l.tasks)
}

// Up moves the cursor one row, wrapping from the first row to the last.
func (l *TaskList) Up() {
	if len(l.tasks) == 0 {
		return
	}
	if l.cursor <= 0 {
		l.cursor = len(l.tasks) - 1
		return
	}
	l.cursor--
}

// First selects the first task.
func (l *TaskList) First() {
	if len(l.tasks) > 0 {
		l.cursor = 0
	}
}

// Last selects the last task.
func (l *TaskList) Last() {
	if len(l.tasks) > 0 {
		l.cursor = len(l.tasks) - 1
	}
}

// Stats returns the number of done tasks and the total.
func (l *TaskList) Stats() (done, total int) {
	for _, t := range l.tasks {
		if t.Status == storage.StatusDone {
			done++
		}
	}
	return done, len(l.tasks)
}

// View renders the visible window of rows around the cursor.
func (l *TaskList) View(addKey string) string {
	if len(l.tasks) == 0 {
		return l.styles.NoticeStyle.Render(fmt.Sprintf("  No tasks yet. Press '%s' to add one.", addKey)) + "\n"
	}

	maxRows := l.height
	if maxRows < 3 {
		maxRows = 5
	}
	start := 0
	if l.cursor >= maxRows {
		start = l.cursor - maxRows + 1
	}

	idW := 0
	for _, t := range l.tasks {
		idW = max(idW, len(strconv.Itoa(t.ID)))
	}
	statusW := 0
	for _, st := range storage.Statuses {
		statusW = max(statusW, runewidth.StringWidth(st.Label()))
	}

	// Layout: [cursor][space][id][space][status][space][description]
	textW := l.width - 2 - idW - 1 - statusW - 1
	if textW < 10 {
		textW = 10
	}

	var b strings.Builder
	for i := start; i < len(l.tasks) && i < start+maxRows; i++ {
		t := l.tasks[i]
		id := runewidth.FillLeft(strconv.Itoa(t.ID), idW)
		label := runewidth.FillRight(t.Status.Label(), statusW)
		text := runewidth.Truncate(t.Description, textW, "…")

		var line string
		if i == l.cursor {
			line = l.styles.CursorStyle.Render(">") + " " +
				l.styles.TaskSelectedStyle.Render(id+" "+label+" "+text)
		} else {
			line = "  " + l.styles.IDStyle.Render(id) + " " +
				l.styles.Styles.StatusStyle(t.Status).Render(label) + " " +
				l.styles.TextStyle.Render(text)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if hidden := len(l.tasks) - (start + maxRows); hidden > 0 {
		b.WriteString(l.styles.StatLabelStyle.Render(fmt.Sprintf("  … %d more", hidden)))
		b.WriteString("\n")
	}
	return b.String()
}
