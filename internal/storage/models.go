package storage

import (
	"fmt"
	"strings"
)

// Status is the workflow state of a task.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusDone
)

// Statuses lists every status in board order.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusDone}

// statusInfo is one row of the status table.
type statusInfo struct {
	label   string // canonical display label, also the persisted token
	name    string // command-line name
	heading string // board column heading
}

// statusTable is the single source for status <-> text conversions.
var statusTable = map[Status]statusInfo{
	StatusNotStarted: {label: "🚀 Not Started", name: "not_started", heading: "NOT STARTED"},
	StatusInProgress: {label: "⏳ In Progress", name: "in_progress", heading: "IN PROGRESS"},
	StatusDone:       {label: "✅ Done", name: "done", heading: "DONE"},
}

// Label returns the canonical display label. It is also what gets persisted.
func (s Status) Label() string {
	if info, ok := statusTable[s]; ok {
		return info.label
	}
	return statusTable[StatusNotStarted].label
}

// Name returns the command-line name (e.g. "in_progress").
func (s Status) Name() string {
	if info, ok := statusTable[s]; ok {
		return info.name
	}
	return statusTable[StatusNotStarted].name
}

// Heading returns the board column heading (e.g. "IN PROGRESS").
func (s Status) Heading() string {
	if info, ok := statusTable[s]; ok {
		return info.heading
	}
	return statusTable[StatusNotStarted].heading
}

func (s Status) String() string {
	return s.Label()
}

// StatusFromLabel maps a persisted token back to a Status.
// Besides the canonical label it accepts the label without its icon and the
// command-line name. Anything else is StatusNotStarted.
func StatusFromLabel(token string) Status {
	token = strings.TrimSpace(token)
	for _, st := range Statuses {
		info := statusTable[st]
		if token == info.label || token == info.name || strings.EqualFold(token, plainLabel(info.label)) {
			return st
		}
	}
	return StatusNotStarted
}

// ParseStatusName parses a command-line status name strictly.
func ParseStatusName(name string) (Status, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", "_")
	for _, st := range Statuses {
		if statusTable[st].name == name {
			return st, nil
		}
	}
	return StatusNotStarted, fmt.Errorf("%w: unknown status %q (want not_started, in_progress or done)", ErrInvalidInput, name)
}

// plainLabel drops the leading icon from a label.
func plainLabel(label string) string {
	if i := strings.IndexByte(label, ' '); i >= 0 {
		return label[i+1:]
	}
	return label
}

// Task is one entry of the task list.
type Task struct {
	ID          int
	Status      Status
	Description string
	Timestamp   string // TimestampLayout, local time of creation or last update
}

// Metadata is the store-wide header.
type Metadata struct {
	MaxID int // highest id ever allocated
}
