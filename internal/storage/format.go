package storage

import (
	"fmt"
	"strconv"
	"strings"
)

// TimestampLayout is the layout of Task.Timestamp.
const TimestampLayout = "2006-01-02 15:04"

const (
	headerPrefix = "#max_id="
	commentMark  = "#"

	fieldSep  = "\t" // current delimiter
	legacySep = ","  // delimiter of the original format
)

// lineFormat is one historical task line layout.
type lineFormat struct {
	name  string
	parse func(line string) (Task, bool)
}

// lineFormats are tried in order; the first one that yields a valid record
// wins. Tab goes first: a current line whose description contains commas must
// never be split on them, while a legacy comma line has no tab to split on.
var lineFormats = []lineFormat{
	{name: "tab", parse: parseTabLine},
	{name: "comma", parse: parseCommaLine},
}

// ParseTaskLine decodes one task line. It reports false for blank lines,
// comment/header lines and lines no known format accepts.
func ParseTaskLine(line string) (Task, bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, commentMark) {
		return Task{}, false
	}
	for _, f := range lineFormats {
		if t, ok := f.parse(line); ok {
			return t, true
		}
	}
	return Task{}, false
}

// FormatTaskLine encodes a task in the current format.
func FormatTaskLine(t Task) string {
	return strings.Join([]string{
		strconv.Itoa(t.ID),
		t.Status.Label(),
		t.Description,
		t.Timestamp,
	}, fieldSep)
}

// ParseHeader decodes a "#max_id=<n>" line.
func ParseHeader(line string) (Metadata, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, headerPrefix) {
		return Metadata{}, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, headerPrefix)))
	if err != nil || n < 0 {
		return Metadata{}, false
	}
	return Metadata{MaxID: n}, true
}

// FormatHeader encodes the metadata header line.
func FormatHeader(m Metadata) string {
	return fmt.Sprintf("%s%d", headerPrefix, m.MaxID)
}

// id\tstatus\tdescription[\ttimestamp]
func parseTabLine(line string) (Task, bool) {
	fields := strings.SplitN(line, fieldSep, 4)
	if len(fields) < 3 {
		return Task{}, false
	}
	t, ok := newParsedTask(fields[0], fields[1], fields[2])
	if !ok {
		return Task{}, false
	}
	if len(fields) == 4 {
		t.Timestamp = strings.TrimSpace(fields[3])
	}
	return t, true
}

// id,status,description where the description runs to the end of the line.
// Tabs in a legacy description become spaces so the row survives being
// rewritten in the tab format.
func parseCommaLine(line string) (Task, bool) {
	fields := strings.SplitN(line, legacySep, 3)
	if len(fields) < 3 {
		return Task{}, false
	}
	return newParsedTask(fields[0], fields[1], strings.ReplaceAll(fields[2], fieldSep, " "))
}

func newParsedTask(idField, statusField, descField string) (Task, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(idField))
	if err != nil || id <= 0 {
		return Task{}, false
	}
	desc := strings.TrimSpace(descField)
	if desc == "" {
		return Task{}, false
	}
	return Task{
		ID:          id,
		Status:      StatusFromLabel(statusField),
		Description: desc,
	}, true
}

// fileContents is the decoded form of a whole task file.
type fileContents struct {
	meta    Metadata
	hasMeta bool
	tasks   []Task
	skipped []int // 1-based line numbers that could not be decoded
}

// parseFile decodes a whole task file. It never fails: bad lines are
// recorded in skipped and otherwise ignored.
func parseFile(data string) fileContents {
	var fc fileContents
	for i, line := range strings.Split(data, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, commentMark):
			if m, ok := ParseHeader(trimmed); ok && !fc.hasMeta {
				fc.meta = m
				fc.hasMeta = true
			}
			continue
		}
		t, ok := ParseTaskLine(line)
		if !ok {
			fc.skipped = append(fc.skipped, i+1)
			continue
		}
		fc.tasks = append(fc.tasks, t)
	}
	return fc
}

// maxID returns the id counter to allocate from: the header value, raised
// to the largest present id if the header lags behind (or is missing).
func (fc fileContents) maxID() int {
	max := 0
	if fc.hasMeta {
		max = fc.meta.MaxID
	}
	for _, t := range fc.tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}

// validateDescription trims d and checks it can be stored on one line.
func validateDescription(d string) (string, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return "", fmt.Errorf("%w: task description is required", ErrInvalidInput)
	}
	if strings.ContainsAny(d, "\t\r\n") {
		return "", fmt.Errorf("%w: task description must not contain tabs or line breaks", ErrInvalidInput)
	}
	return d, nil
}
