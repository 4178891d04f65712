// Package ui provides the interactive task session.
// This file contains the main App model: a task list with a cursor, an input
// line for new tasks and a delete confirmation, driven by the Bubble Tea loop.
package ui

import (
	"context"
	"fmt"
	"strings"

	"tasklist/internal/config"
	"tasklist/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TaskStore is the part of the task store the session uses.
type TaskStore interface {
	LoadTasks() ([]storage.Task, error)
	AddTask(description string) (*storage.Task, error)
	UpdateTask(id int, status storage.Status, description *string) (*storage.Task, error)
	DeleteTask(id int) (*storage.Task, error)
}

// Mode is the state of the session.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddingTask
	ModeConfirmDelete
)

func (m Mode) String() string {
	switch m {
	case ModeAddingTask:
		return "adding"
	case ModeConfirmDelete:
		return "confirm-delete"
	default:
		return "normal"
	}
}

// AppConfig holds user configuration for the session.
type AppConfig struct {
	Keys  *config.KeysConfig
	Title string
}

// listChrome is the number of lines View draws around the task rows.
const listChrome = 8

// App is the interactive session model.
//
// Store calls run synchronously inside Update, so every mutation and the
// reload that follows it finish before the next message is handled.
type App struct {
	store     TaskStore
	styles    *Styles
	title     string
	list      *TaskList
	input     textinput.Model
	help      *HelpOverlay
	mode      Mode
	pendingID int
	showHelp  bool
	width     int
	height    int
	status    string
	statusErr bool
	quitting  bool

	keys        KeyMap
	inputKeys   InputKeyMap
	confirmKeys ConfirmKeyMap
}

// NewApp creates the session and loads the tasks once. A load failure is
// shown as the status message.
func NewApp(store TaskStore, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	if styles == nil {
		styles = NewStylesFromTheme(nil)
	}
	title := cfg.Title
	if strings.TrimSpace(title) == "" {
		title = config.Default().Title
	}

	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.Prompt = ""

	keys := NewKeyMap(cfg.Keys)
	inputKeys := NewInputKeyMap(cfg.Keys)
	confirmKeys := NewConfirmKeyMap(cfg.Keys)

	a := &App{
		store:       store,
		styles:      styles,
		title:       title,
		list:        NewTaskList(styles),
		input:       ti,
		help:        NewHelpOverlay(styles, keys, inputKeys, confirmKeys),
		mode:        ModeNormal,
		keys:        keys,
		inputKeys:   inputKeys,
		confirmKeys: confirmKeys,
	}
	a.reload()
	return a
}

// Init implements tea.Model. Everything is loaded in NewApp.
func (a *App) Init() tea.Cmd {
	return nil
}

// Mode returns the current state.
func (a *App) Mode() Mode {
	return a.mode
}

// Status returns the transient message and whether it is an error.
func (a *App) Status() (string, bool) {
	return a.status, a.statusErr
}

// List returns the task list.
func (a *App) List() *TaskList {
	return a.list
}

// PendingID returns the id awaiting delete confirmation.
func (a *App) PendingID() int {
	return a.pendingID
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Cursor blink and other input internals.
	if a.mode == ModeAddingTask {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.clearStatus()

	if msg.String() == "ctrl+c" {
		a.quitting = true
		return a, tea.Quit
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.mode {
	case ModeAddingTask:
		return a.updateAdding(msg)
	case ModeConfirmDelete:
		a.updateConfirm(msg)
		return a, nil
	}
	return a.updateNormal(msg)
}

func (a *App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true

	case key.Matches(msg, a.keys.Down):
		a.list.Down()

	case key.Matches(msg, a.keys.Up):
		a.list.Up()

	case key.Matches(msg, a.keys.Top):
		a.list.First()

	case key.Matches(msg, a.keys.Bottom):
		a.list.Last()

	case key.Matches(msg, a.keys.Add):
		a.mode = ModeAddingTask
		a.input.Reset()
		return a, a.input.Focus()

	case key.Matches(msg, a.keys.Delete):
		if t, ok := a.list.Selected(); ok {
			a.pendingID = t.ID
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.NotStarted):
		a.setSelectedStatus(storage.StatusNotStarted)

	case key.Matches(msg, a.keys.InProgress):
		a.setSelectedStatus(storage.StatusInProgress)

	case key.Matches(msg, a.keys.Done):
		a.setSelectedStatus(storage.StatusDone)

	case key.Matches(msg, a.keys.Reload):
		if a.reload() {
			a.SetStatus(fmt.Sprintf("Reloaded %d tasks", a.list.Len()), false)
		}
	}
	return a, nil
}

func (a *App) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.inputKeys.Confirm):
		desc := strings.TrimSpace(a.input.Value())
		a.exitAdding()
		if desc == "" {
			return a, nil
		}
		task, err := a.store.AddTask(desc)
		if err != nil {
			a.setError(err)
			return a, nil
		}
		if a.reload() {
			a.list.Last()
		}
		a.SetStatus(fmt.Sprintf("Added task %d", task.ID), false)
		return a, nil

	case key.Matches(msg, a.inputKeys.Cancel):
		a.exitAdding()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) updateConfirm(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, a.confirmKeys.Accept):
		id := a.pendingID
		a.mode = ModeNormal
		a.pendingID = 0
		if _, err := a.store.DeleteTask(id); err != nil {
			a.setError(err)
			return
		}
		if a.reload() {
			a.SetStatus(fmt.Sprintf("Deleted task %d", id), false)
		}

	case key.Matches(msg, a.confirmKeys.Reject):
		a.mode = ModeNormal
		a.pendingID = 0
	}
}

func (a *App) exitAdding() {
	a.mode = ModeNormal
	a.input.Reset()
	a.input.Blur()
}

func (a *App) setSelectedStatus(st storage.Status) {
	t, ok := a.list.Selected()
	if !ok {
		return
	}
	if _, err := a.store.UpdateTask(t.ID, st, nil); err != nil {
		a.setError(err)
		return
	}
	if a.reload() {
		a.SetStatus(fmt.Sprintf("Task %d is now %s", t.ID, st.Label()), false)
	}
}

// reload re-reads the store and re-clamps the cursor. It reports false and
// keeps the current list if the read fails.
func (a *App) reload() bool {
	tasks, err := a.store.LoadTasks()
	if err != nil {
		a.setError(err)
		return false
	}
	a.list.SetTasks(tasks)
	return true
}

func (a *App) updateLayout() {
	a.list.SetSize(a.width-4, a.height-listChrome)
	a.help.SetSize(a.width, a.height)
	if w := a.width - 16; w > 10 {
		a.input.Width = w
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if a.showHelp {
		return a.help.View()
	}

	var b strings.Builder
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	ruleWidth := a.width
	if ruleWidth <= 0 || ruleWidth > 80 {
		ruleWidth = min(80, max(ruleWidth, 40))
	}
	b.WriteString(a.styles.RuleStyle.Render(strings.Repeat("─", ruleWidth)))
	b.WriteString("\n")

	b.WriteString(a.list.View(a.keys.Add.Help().Key))

	switch a.mode {
	case ModeAddingTask:
		b.WriteString("\n")
		b.WriteString(a.styles.InputPromptStyle.Render("New task: ") + a.input.View())
		b.WriteString("\n")
	case ModeConfirmDelete:
		b.WriteString("\n")
		b.WriteString(a.renderConfirmDelete())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.renderHelpBar())
	return b.String()
}

func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render("Project: " + a.title)
	done, total := a.list.Stats()
	if total == 0 {
		return title
	}
	return title + "  " + a.styles.StatLabelStyle.Render(fmt.Sprintf("%d/%d done", done, total))
}

func (a *App) renderConfirmDelete() string {
	desc := ""
	for _, t := range a.list.Tasks() {
		if t.ID == a.pendingID {
			desc = t.Description
			break
		}
	}
	prompt := fmt.Sprintf("Delete task %d", a.pendingID)
	if desc != "" {
		prompt += fmt.Sprintf(" %q", desc)
	}
	prompt += "?"
	return a.styles.ConfirmStyle.Render(prompt + "\n" + a.renderBindings(a.confirmKeys.ShortHelp()))
}

// renderHelpBar shows the status message if there is one, otherwise the
// bindings of the current mode.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	switch a.mode {
	case ModeAddingTask:
		return a.renderBindings(a.inputKeys.ShortHelp())
	case ModeConfirmDelete:
		return a.renderBindings(a.confirmKeys.ShortHelp())
	}
	return a.renderBindings(a.keys.ShortHelp())
}

func (a *App) renderBindings(bindings []key.Binding) string {
	pairs := make([]string, 0, len(bindings)*2)
	for _, binding := range bindings {
		if !binding.Enabled() {
			continue
		}
		h := binding.Help()
		pairs = append(pairs, h.Key, h.Desc)
	}
	return a.styles.RenderHelp(pairs...)
}

// SetStatus sets the message shown in place of the help bar until the next
// key press.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

func (a *App) setError(err error) {
	a.SetStatus("Error: "+err.Error(), true)
}

func (a *App) clearStatus() {
	a.status = ""
	a.statusErr = false
}

// Run starts the Bubble Tea program on the alternate screen and blocks until
// the session quits or ctx is cancelled.
func Run(ctx context.Context, store TaskStore, styles *Styles, cfg *AppConfig) error {
	app := NewApp(store, styles, cfg)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
