package storage

import (
	"errors"
	"testing"
)

func TestParseTaskLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   Task
		wantOK bool
	}{
		{
			name:   "current format",
			line:   "3\t⏳ In Progress\tWrite docs\t2024-05-01 08:30",
			want:   Task{ID: 3, Status: StatusInProgress, Description: "Write docs", Timestamp: "2024-05-01 08:30"},
			wantOK: true,
		},
		{
			name:   "current format keeps commas",
			line:   "4\t✅ Done\tmilk, eggs, bread\t2024-05-01 08:30",
			want:   Task{ID: 4, Status: StatusDone, Description: "milk, eggs, bread", Timestamp: "2024-05-01 08:30"},
			wantOK: true,
		},
		{
			name:   "tab without timestamp",
			line:   "5\t✅ Done\tShip",
			want:   Task{ID: 5, Status: StatusDone, Description: "Ship"},
			wantOK: true,
		},
		{
			name:   "legacy comma",
			line:   "1,Done,Old task",
			want:   Task{ID: 1, Status: StatusDone, Description: "Old task"},
			wantOK: true,
		},
		{
			name:   "legacy comma in description",
			line:   "2,Not Started,a, b, c",
			want:   Task{ID: 2, Status: StatusNotStarted, Description: "a, b, c"},
			wantOK: true,
		},
		{
			name:   "legacy comma with tab in description",
			line:   "3,✅ Done,alpha\tbeta",
			want:   Task{ID: 3, Status: StatusDone, Description: "alpha beta"},
			wantOK: true,
		},
		{
			name:   "unknown status",
			line:   "6\tblocked\tWait",
			want:   Task{ID: 6, Status: StatusNotStarted, Description: "Wait"},
			wantOK: true,
		},
		{
			name:   "status by name",
			line:   "7\tin_progress\tGo",
			want:   Task{ID: 7, Status: StatusInProgress, Description: "Go"},
			wantOK: true,
		},
		{
			name:   "trailing CR",
			line:   "8\t✅ Done\tCRLF\t2024-05-01 08:30\r",
			want:   Task{ID: 8, Status: StatusDone, Description: "CRLF", Timestamp: "2024-05-01 08:30"},
			wantOK: true,
		},
		{name: "blank", line: "   "},
		{name: "header", line: "#max_id=4"},
		{name: "comment", line: "# note"},
		{name: "too few fields", line: "1\tDone"},
		{name: "non-numeric id", line: "one\t✅ Done\tx"},
		{name: "zero id", line: "0\t✅ Done\tx"},
		{name: "empty description", line: "1\t✅ Done\t\t2024-05-01 08:30"},
		{name: "empty legacy description", line: "1,Done, "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTaskLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParseTaskLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseTaskLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestFormatTaskLine(t *testing.T) {
	task := Task{ID: 12, Status: StatusDone, Description: "Pay rent", Timestamp: "2024-06-01 12:00"}
	want := "12\t✅ Done\tPay rent\t2024-06-01 12:00"
	if got := FormatTaskLine(task); got != want {
		t.Errorf("FormatTaskLine() = %q, want %q", got, want)
	}

	back, ok := ParseTaskLine(FormatTaskLine(task))
	if !ok || back != task {
		t.Errorf("ParseTaskLine(FormatTaskLine()) = %+v, %v", back, ok)
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		line   string
		want   int
		wantOK bool
	}{
		{"#max_id=0", 0, true},
		{"#max_id=17", 17, true},
		{"  #max_id=3  ", 3, true},
		{"#max_id=", 0, false},
		{"#max_id=-1", 0, false},
		{"#max_id=abc", 0, false},
		{"# max_id=3", 0, false},
		{"1\t✅ Done\tx\t", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseHeader(tt.line)
		if ok != tt.wantOK || got.MaxID != tt.want {
			t.Errorf("ParseHeader(%q) = %d, %v, want %d, %v", tt.line, got.MaxID, ok, tt.want, tt.wantOK)
		}
	}

	if got := FormatHeader(Metadata{MaxID: 8}); got != "#max_id=8" {
		t.Errorf("FormatHeader() = %q", got)
	}
}

func TestParseFile_FirstHeaderWins(t *testing.T) {
	fc := parseFile("#max_id=5\n1\t✅ Done\tA\t\n#max_id=99\n")
	if !fc.hasMeta || fc.meta.MaxID != 5 {
		t.Errorf("meta = %+v, hasMeta = %v", fc.meta, fc.hasMeta)
	}
	if fc.maxID() != 5 {
		t.Errorf("maxID() = %d, want 5", fc.maxID())
	}
}

func TestStatusConversions(t *testing.T) {
	for _, st := range Statuses {
		if got := StatusFromLabel(st.Label()); got != st {
			t.Errorf("StatusFromLabel(%q) = %v, want %v", st.Label(), got, st)
		}
		if got, err := ParseStatusName(st.Name()); err != nil || got != st {
			t.Errorf("ParseStatusName(%q) = %v, %v", st.Name(), got, err)
		}
	}

	if got, err := ParseStatusName("In-Progress"); err != nil || got != StatusInProgress {
		t.Errorf("ParseStatusName(In-Progress) = %v, %v", got, err)
	}
	if _, err := ParseStatusName("blocked"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseStatusName(blocked) error = %v, want ErrInvalidInput", err)
	}
	if got := StatusFromLabel("done"); got != StatusDone {
		t.Errorf("StatusFromLabel(done) = %v", got)
	}
	if got := Status(9).Heading(); got != "NOT STARTED" {
		t.Errorf("out-of-range Heading() = %q", got)
	}
}
