package render

import (
	"strings"
	"testing"

	"tasklist/internal/storage"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// setupTest pins an uncolored profile so output can be compared as text.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

func sampleTasks() []storage.Task {
	return []storage.Task{
		{ID: 1, Status: storage.StatusNotStarted, Description: "Buy milk", Timestamp: "2024-05-01 09:00"},
		{ID: 2, Status: storage.StatusInProgress, Description: "Write report", Timestamp: "2024-05-01 10:00"},
		{ID: 3, Status: storage.StatusDone, Description: "Call mom", Timestamp: "2024-05-01 11:00"},
		{ID: 4, Status: storage.StatusNotStarted, Description: "Walk dog", Timestamp: "2024-05-01 12:00"},
	}
}

func TestGroupByStatus(t *testing.T) {
	cols := GroupByStatus(sampleTasks())

	if len(cols) != 3 {
		t.Fatalf("len(cols) = %d, want 3", len(cols))
	}
	wantSizes := []int{2, 1, 1}
	wantStatus := []storage.Status{storage.StatusNotStarted, storage.StatusInProgress, storage.StatusDone}
	for i, col := range cols {
		if col.Status != wantStatus[i] {
			t.Errorf("cols[%d].Status = %v, want %v", i, col.Status, wantStatus[i])
		}
		if len(col.Tasks) != wantSizes[i] {
			t.Errorf("len(cols[%d].Tasks) = %d, want %d", i, len(col.Tasks), wantSizes[i])
		}
	}
	if cols[0].Tasks[0].ID != 1 || cols[0].Tasks[1].ID != 4 {
		t.Errorf("NotStarted order = %v, want read order [1 4]", cols[0].Tasks)
	}
}

func TestGroupByStatus_Empty(t *testing.T) {
	cols := GroupByStatus(nil)
	for _, col := range cols {
		if len(col.Tasks) != 0 {
			t.Errorf("column %v not empty", col.Status)
		}
	}
}

func TestColumnWidth(t *testing.T) {
	tests := []struct {
		term int
		want int
	}{
		{term: 0, want: 30},   // fallback 100 -> 33 - 3
		{term: 100, want: 30},
		{term: 20, want: MinColumnWidth},
		{term: 400, want: MaxColumnWidth},
		{term: 81, want: 24},
	}
	for _, tt := range tests {
		if got := ColumnWidth(tt.term); got != tt.want {
			t.Errorf("ColumnWidth(%d) = %d, want %d", tt.term, got, tt.want)
		}
	}
}

func TestCardLine_FitsColumn(t *testing.T) {
	long := storage.Task{ID: 123, Description: strings.Repeat("very long description ", 10)}
	wide := storage.Task{ID: 7, Description: strings.Repeat("寿司", 30)}
	short := storage.Task{ID: 5, Description: "short"}

	for _, width := range []int{MinColumnWidth, 24, MaxColumnWidth} {
		for _, task := range []storage.Task{long, wide, short} {
			line := CardLine(task, width)
			if w := runewidth.StringWidth(line); w > width {
				t.Errorf("CardLine(%d, width %d) = %q has width %d", task.ID, width, line, w)
			}
		}
	}

	huge := storage.Task{ID: 12345678901234567, Description: "does not fit"}
	for _, width := range []int{MinColumnWidth, 18, 19} {
		if w := runewidth.StringWidth(CardLine(huge, width)); w > width {
			t.Errorf("CardLine(huge id, width %d) has width %d", width, w)
		}
	}

	if got := CardLine(short, 24); got != "5 short" {
		t.Errorf("CardLine(short) = %q, want untruncated", got)
	}
	if got := CardLine(long, 24); !strings.HasSuffix(got, "…") || !strings.HasPrefix(got, "123 ") {
		t.Errorf("CardLine(long) = %q, want id prefix and ellipsis", got)
	}
}

func TestTable(t *testing.T) {
	setupTest(t)

	out := Table(sampleTasks(), Options{Title: "Home", Width: 100})
	lines := strings.Split(out, "\n")

	if lines[0] != "Project: Home" {
		t.Errorf("first line = %q, want project title", lines[0])
	}
	if !strings.HasPrefix(lines[1], "───") {
		t.Errorf("second line = %q, want a rule", lines[1])
	}
	for _, want := range []string{"Buy milk", "🚀 Not Started", "⏳ In Progress", "✅ Done", "2024-05-01 11:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Buy milk") > strings.Index(out, "Walk dog") {
		t.Error("rows not in read order")
	}
}

func TestTable_DefaultTitle(t *testing.T) {
	setupTest(t)

	out := Table(sampleTasks()[:1], Options{})
	if !strings.HasPrefix(out, "Project: My Tasks\n") {
		t.Errorf("table = %q, want default title", out)
	}
}

func TestTable_WrapsLongDescription(t *testing.T) {
	setupTest(t)

	task := storage.Task{ID: 1, Status: storage.StatusDone, Description: strings.Repeat("word ", 30), Timestamp: "2024-05-01 09:00"}
	out := Table([]storage.Task{task}, Options{Width: 60})

	rows := strings.Split(strings.TrimRight(out, "\n"), "\n")[3:]
	if len(rows) < 2 {
		t.Fatalf("description not wrapped:\n%s", out)
	}
	for _, row := range rows {
		if w := runewidth.StringWidth(row); w > 60 {
			t.Errorf("row width %d exceeds 60: %q", w, row)
		}
	}
}

func TestBoard(t *testing.T) {
	setupTest(t)

	out := Board(sampleTasks(), Options{Title: "Home", Width: 100})

	if !strings.HasPrefix(out, "Project: Home\n") {
		t.Errorf("board = %q, want project title first", out)
	}
	for _, want := range []string{"NOT STARTED", "IN PROGRESS", "DONE", "1 Buy milk", "2 Write report", "3 Call mom", "4 Walk dog", "2024-05-01 12:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("board missing %q:\n%s", want, out)
		}
	}

	// Headings appear left to right in status order.
	headingLine := strings.Split(out, "\n")[2]
	ns, ip, done := strings.Index(headingLine, "NOT STARTED"), strings.Index(headingLine, "IN PROGRESS"), strings.Index(headingLine, "DONE")
	if !(ns < ip && ip < done) {
		t.Errorf("heading order wrong: %q", headingLine)
	}
}

func TestBoard_TruncatesCards(t *testing.T) {
	setupTest(t)

	task := storage.Task{ID: 9, Status: storage.StatusInProgress, Description: strings.Repeat("x", 200)}
	out := Board([]storage.Task{task}, Options{Width: 20})

	if !strings.Contains(out, "9 "+strings.Repeat("x", MinColumnWidth-3)+"…") {
		t.Errorf("card not truncated to %d cells:\n%s", MinColumnWidth, out)
	}
}

func TestEmptyNotice(t *testing.T) {
	setupTest(t)

	for name, out := range map[string]string{
		"table": Table(nil, Options{}),
		"board": Board([]storage.Task{}, Options{}),
	} {
		if strings.TrimSpace(out) != EmptyNotice {
			t.Errorf("%s of no tasks = %q, want %q", name, out, EmptyNotice)
		}
	}
}
