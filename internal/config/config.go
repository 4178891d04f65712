// Package config handles configuration loading and defaults for tasklist.
// Configuration is loaded from XDG-compliant paths (typically ~/.config/tasklist/config.yaml).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileEnv names the environment variable that overrides Config.File.
const FileEnv = "TASKLIST_FILE"

// Config represents the application configuration.
type Config struct {
	// File is the task file (~ is expanded). Default: ~/.tasklist
	File string `yaml:"file,omitempty"`

	// Title is shown as "Project: <title>" above the flat list
	Title string `yaml:"title,omitempty"`

	// Kanban makes the board the default view of `show`
	Kanban bool `yaml:"kanban,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts of the interactive session
	Keys KeysConfig `yaml:"keys,omitempty"`
}

// ThemeConfig defines color settings.
type ThemeConfig struct {
	// Primary color for focused elements (hex, e.g., "#FF5733")
	Primary string `yaml:"primary,omitempty"`

	// Accent color for highlights (hex)
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty"`

	// Text color (hex)
	Text string `yaml:"text,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "j,down"
type KeysConfig struct {
	Quit string `yaml:"quit,omitempty"` // default: "q,ctrl+c"
	Help string `yaml:"help,omitempty"` // default: "?"

	// Navigation keys
	Up     string `yaml:"up,omitempty"`     // default: "k,up"
	Down   string `yaml:"down,omitempty"`   // default: "j,down"
	Top    string `yaml:"top,omitempty"`    // default: "g,home"
	Bottom string `yaml:"bottom,omitempty"` // default: "G,end"

	// Task keys
	AddTask    string `yaml:"add_task,omitempty"`    // default: "n"
	DeleteTask string `yaml:"delete_task,omitempty"` // default: "d"
	NotStarted string `yaml:"not_started,omitempty"` // default: "1"
	InProgress string `yaml:"in_progress,omitempty"` // default: "2"
	Done       string `yaml:"done,omitempty"`        // default: "3"
	Reload     string `yaml:"reload,omitempty"`      // default: "r"

	// Input and confirmation keys
	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"
	Accept  string `yaml:"accept,omitempty"`  // default: "y,Y,enter"
	Reject  string `yaml:"reject,omitempty"`  // default: "n,N,esc"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		File:  defaultFile(),
		Title: "My Tasks",
		Theme: ThemeConfig{
			Primary: "#7C3AED", // Violet
			Accent:  "#10B981", // Emerald
			Muted:   "#6B7280", // Gray
			Text:    "",        // Terminal default
		},
	}
}

// defaultFile returns the default task file path.
func defaultFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tasklist"
	}
	return filepath.Join(home, ".tasklist")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tasklist")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tasklist")
}

// Path returns the path to the config file, or "" if it cannot be determined.
func Path() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	path := Path()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; without it booleans are not merged

	cfg.mergeFromYAML(&userCfg, &doc)
	return cfg, nil
}

// mergeNonEmpty applies non-empty string values from other to c.
// Booleans are left to mergeFromYAML, which can see whether they were set.
func (c *Config) mergeNonEmpty(other *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&c.File, other.File)
	set(&c.Title, other.Title)

	set(&c.Theme.Primary, other.Theme.Primary)
	set(&c.Theme.Accent, other.Theme.Accent)
	set(&c.Theme.Muted, other.Theme.Muted)
	set(&c.Theme.Text, other.Theme.Text)

	k, o := &c.Keys, other.Keys
	set(&k.Quit, o.Quit)
	set(&k.Help, o.Help)
	set(&k.Up, o.Up)
	set(&k.Down, o.Down)
	set(&k.Top, o.Top)
	set(&k.Bottom, o.Bottom)
	set(&k.AddTask, o.AddTask)
	set(&k.DeleteTask, o.DeleteTask)
	set(&k.NotStarted, o.NotStarted)
	set(&k.InProgress, o.InProgress)
	set(&k.Done, o.Done)
	set(&k.Reload, o.Reload)
	set(&k.Confirm, o.Confirm)
	set(&k.Cancel, o.Cancel)
	set(&k.Accept, o.Accept)
	set(&k.Reject, o.Reject)
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	if yamlHasPath(doc, "kanban") {
		c.Kanban = other.Kanban
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := n.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// ResolveFile returns the task file to use: $TASKLIST_FILE if set, else
// c.File, else the default. A leading ~ is expanded.
func (c *Config) ResolveFile() string {
	if env := strings.TrimSpace(os.Getenv(FileEnv)); env != "" {
		return ExpandHome(env)
	}
	if c.File != "" {
		return ExpandHome(c.File)
	}
	return defaultFile()
}

// ExpandHome expands a leading "~" or "~/" to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}

	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
