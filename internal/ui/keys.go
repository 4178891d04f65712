// Package ui provides the interactive task session.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and customization.
package ui

import (
	"strings"

	"tasklist/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// =============================================================================
// Normal mode
// =============================================================================

// KeyMap defines the keys of the task list in normal mode.
type KeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	Add        key.Binding
	Delete     key.Binding
	NotStarted key.Binding
	InProgress key.Binding
	Done       key.Binding
	Reload     key.Binding
}

// DefaultKeyMap returns the default normal mode key bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(&config.KeysConfig{})
}

// NewKeyMap creates normal mode key bindings from config.
func NewKeyMap(cfg *config.KeysConfig) KeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Top, "g", "home")...),
			key.WithHelp("g", "first"),
		),
		Bottom: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Bottom, "G", "end")...),
			key.WithHelp("G", "last"),
		),
		Add: key.NewBinding(
			key.WithKeys(parseKeys(cfg.AddTask, "n")...),
			key.WithHelp("n", "new task"),
		),
		Delete: key.NewBinding(
			key.WithKeys(parseKeys(cfg.DeleteTask, "d")...),
			key.WithHelp("d", "delete"),
		),
		NotStarted: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NotStarted, "1")...),
			key.WithHelp("1", "not started"),
		),
		InProgress: key.NewBinding(
			key.WithKeys(parseKeys(cfg.InProgress, "2")...),
			key.WithHelp("2", "in progress"),
		),
		Done: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Done, "3")...),
			key.WithHelp("3", "done"),
		),
		Reload: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Reload, "r")...),
			key.WithHelp("r", "reload"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer (implements help.KeyMap).
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Delete, k.NotStarted, k.InProgress, k.Done, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay (implements help.KeyMap).
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Add, k.Delete, k.Reload},
		{k.NotStarted, k.InProgress, k.Done},
		{k.Help, k.Quit},
	}
}

// =============================================================================
// Input mode (adding a task)
// =============================================================================

// InputKeyMap defines keys for text input mode.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultInputKeyMap returns the default input key bindings.
func DefaultInputKeyMap() InputKeyMap {
	return NewInputKeyMap(&config.KeysConfig{})
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Confirm, "enter")...),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Cancel, "esc")...),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k InputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k InputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Confirm, k.Cancel}}
}

// =============================================================================
// Delete confirmation
// =============================================================================

// ConfirmKeyMap defines keys for the delete confirmation prompt.
type ConfirmKeyMap struct {
	Accept key.Binding
	Reject key.Binding
}

// DefaultConfirmKeyMap returns the default confirmation key bindings.
func DefaultConfirmKeyMap() ConfirmKeyMap {
	return NewConfirmKeyMap(&config.KeysConfig{})
}

// NewConfirmKeyMap creates confirmation key bindings from config.
func NewConfirmKeyMap(cfg *config.KeysConfig) ConfirmKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return ConfirmKeyMap{
		Accept: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Accept, "y", "Y", "enter")...),
			key.WithHelp("y", "delete"),
		),
		Reject: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Reject, "n", "N", "esc")...),
			key.WithHelp("n", "keep"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k ConfirmKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Reject}
}

// FullHelp implements help.KeyMap.
func (k ConfirmKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Accept, k.Reject}}
}
