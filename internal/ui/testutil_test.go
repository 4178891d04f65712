package ui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tasklist/internal/config"
	"tasklist/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors so views can be compared as plain text.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStorage creates a Storage on a file in a temporary directory.
func createTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	now := time.Date(2025, 1, 2, 15, 4, 0, 0, time.Local)
	store, err := storage.New(filepath.Join(t.TempDir(), "tasks"), storage.WithNowFunc(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	return store
}

// seedTasks adds tasks with the given descriptions.
func seedTasks(t *testing.T, store *storage.Storage, descs ...string) {
	t.Helper()
	for _, d := range descs {
		if _, err := store.AddTask(d); err != nil {
			t.Fatalf("AddTask(%q) error = %v", d, err)
		}
	}
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

func newTestApp(t *testing.T, store TaskStore) *App {
	t.Helper()
	app := NewApp(store, createTestStyles(), &AppConfig{Title: "Test"})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app
}

// Key message helpers.

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc       = tea.KeyMsg{Type: tea.KeyEsc}
	keyUp        = tea.KeyMsg{Type: tea.KeyUp}
	keyDown      = tea.KeyMsg{Type: tea.KeyDown}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
	keyCtrlC     = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// press sends each message to app in order.
func press(app *App, msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = app.Update(m)
	}
	return cmd
}

// typeText sends s one rune at a time.
func typeText(app *App, s string) {
	for _, r := range s {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// fakeStore wraps a real store and can be told to fail.
type fakeStore struct {
	TaskStore
	loadErr   error
	addErr    error
	updateErr error
	deleteErr error
	calls     int
}

var errInjected = errors.New("disk on fire")

func (f *fakeStore) LoadTasks() ([]storage.Task, error) {
	f.calls++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.TaskStore.LoadTasks()
}

func (f *fakeStore) AddTask(desc string) (*storage.Task, error) {
	f.calls++
	if f.addErr != nil {
		return nil, f.addErr
	}
	return f.TaskStore.AddTask(desc)
}

func (f *fakeStore) UpdateTask(id int, st storage.Status, desc *string) (*storage.Task, error) {
	f.calls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.TaskStore.UpdateTask(id, st, desc)
}

func (f *fakeStore) DeleteTask(id int) (*storage.Task, error) {
	f.calls++
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return f.TaskStore.DeleteTask(id)
}
