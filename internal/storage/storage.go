package storage

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"tasklist/internal/fsutil"
)

// Storage handles all file I/O for one task file.
type Storage struct {
	path   string
	logger *log.Logger
	now    func() time.Time // injectable clock for deterministic tests
}

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

// Option configures a Storage.
type Option func(*Storage)

// WithLogger sets the logger used for migration and skipped-line reports.
func WithLogger(l *log.Logger) Option {
	return func(s *Storage) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNowFunc overrides the clock used for task timestamps.
func WithNowFunc(now func() time.Time) Option {
	return func(s *Storage) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Storage for the task file at path, creating the parent
// directory and an empty file if they do not exist yet.
func New(path string, opts ...Option) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: task file path is required", ErrInvalidInput)
	}

	s := &Storage{
		path:   path,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), dataDirPerm); err != nil {
		return nil, ioErr("create directory for", path, err)
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the task file path.
func (s *Storage) Path() string {
	return s.path
}

// Now returns the current time according to the storage clock.
func (s *Storage) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Ensure creates the task file empty if it does not exist. Existing content
// is never touched.
func (s *Storage) Ensure() error {
	if err := fsutil.EnsureFile(s.path, dataFilePerm); err != nil {
		return ioErr("create", s.path, err)
	}
	return nil
}

// ReadMetadata returns the file header. The bool is false for a file that
// has no header yet (empty or legacy).
func (s *Storage) ReadMetadata() (Metadata, bool, error) {
	fc, err := s.load()
	if err != nil {
		return Metadata{}, false, err
	}
	return fc.meta, fc.hasMeta, nil
}

// LoadTasks returns every valid task in file order. A missing file is an
// empty list.
func (s *Storage) LoadTasks() ([]Task, error) {
	fc, err := s.load()
	if err != nil {
		return nil, err
	}
	return fc.tasks, nil
}

// AddTask appends a task with the next never-used id.
func (s *Storage) AddTask(description string) (*Task, error) {
	desc, err := validateDescription(description)
	if err != nil {
		return nil, err
	}

	fc, err := s.load()
	if err != nil {
		return nil, err
	}

	maxID := s.resolveMaxID(fc)
	if maxID == math.MaxInt {
		return nil, fmt.Errorf("%w: task ids exhausted at %d", ErrInvalidInput, maxID)
	}

	task := Task{
		ID:          maxID + 1,
		Status:      StatusNotStarted,
		Description: desc,
		Timestamp:   s.timestamp(),
	}
	tasks := append(fc.tasks, task)

	if err := s.save(Metadata{MaxID: task.ID}, tasks); err != nil {
		return nil, err
	}
	s.logger.Debug("task added", "id", task.ID)
	return &task, nil
}

// UpdateTask sets the status of task id and, when description is non-nil,
// replaces its description. The timestamp is refreshed.
func (s *Storage) UpdateTask(id int, status Status, description *string) (*Task, error) {
	if _, ok := statusTable[status]; !ok {
		return nil, fmt.Errorf("%w: unknown status %d", ErrInvalidInput, int(status))
	}
	var desc string
	if description != nil {
		d, err := validateDescription(*description)
		if err != nil {
			return nil, err
		}
		desc = d
	}

	fc, err := s.load()
	if err != nil {
		return nil, err
	}

	idx := indexOf(fc.tasks, id)
	if idx < 0 {
		return nil, notFound(id)
	}
	maxID := s.resolveMaxID(fc)

	task := fc.tasks[idx]
	task.Status = status
	if description != nil {
		task.Description = desc
	}
	task.Timestamp = s.timestamp()
	fc.tasks[idx] = task

	if err := s.save(Metadata{MaxID: maxID}, fc.tasks); err != nil {
		return nil, err
	}
	s.logger.Debug("task updated", "id", id, "status", status.Name())
	return &task, nil
}

// DeleteTask removes task id. Its id is never handed out again.
func (s *Storage) DeleteTask(id int) (*Task, error) {
	fc, err := s.load()
	if err != nil {
		return nil, err
	}

	idx := indexOf(fc.tasks, id)
	if idx < 0 {
		return nil, notFound(id)
	}
	// Resolved before removal so deleting the highest id does not lower it.
	maxID := s.resolveMaxID(fc)

	removed := fc.tasks[idx]
	remaining := make([]Task, 0, len(fc.tasks)-1)
	remaining = append(remaining, fc.tasks[:idx]...)
	remaining = append(remaining, fc.tasks[idx+1:]...)

	if err := s.save(Metadata{MaxID: maxID}, remaining); err != nil {
		return nil, err
	}
	s.logger.Debug("task deleted", "id", id)
	return &removed, nil
}

func (s *Storage) load() (fileContents, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileContents{}, nil
		}
		return fileContents{}, ioErr("read", s.path, err)
	}

	fc := parseFile(string(data))
	for _, line := range fc.skipped {
		s.logger.Debug("skipping malformed line", "path", s.path, "line", line)
	}
	return fc, nil
}

// resolveMaxID returns the counter to allocate from and reports a legacy
// file that is about to gain its header.
func (s *Storage) resolveMaxID(fc fileContents) int {
	maxID := fc.maxID()
	if !fc.hasMeta {
		s.logger.Info("migrating task file to current format", "path", s.path, "max_id", maxID)
	} else if maxID > fc.meta.MaxID {
		s.logger.Warn("header max_id behind stored ids", "path", s.path, "header", fc.meta.MaxID, "max_id", maxID)
	}
	return maxID
}

// save rewrites the whole file: header first, then one line per task.
func (s *Storage) save(meta Metadata, tasks []Task) error {
	err := fsutil.WriteFileAtomic(s.path, dataFilePerm, func(w io.Writer) error {
		if _, err := fmt.Fprintln(w, FormatHeader(meta)); err != nil {
			return err
		}
		for _, t := range tasks {
			if _, err := fmt.Fprintln(w, FormatTaskLine(t)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ioErr("write", s.path, err)
	}
	return nil
}

func (s *Storage) timestamp() string {
	return s.Now().Local().Format(TimestampLayout)
}

func indexOf(tasks []Task, id int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
