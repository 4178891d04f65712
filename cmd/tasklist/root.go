package main

import (
	"fmt"
	"io"
	"os"

	"tasklist/internal/config"
	"tasklist/internal/render"
	"tasklist/internal/storage"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// debugEnv turns on debug logging when set to "1".
const debugEnv = "TASKLIST_DEBUG"

// cli holds state shared by every subcommand. It is filled in by the
// root command's PersistentPreRunE.
type cli struct {
	out    io.Writer
	errOut io.Writer

	file    string
	kanban  bool
	verbose bool

	cfg    *config.Config
	logger *log.Logger
	path   string
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:   "tasklist",
		Short: "A small task tracker for your terminal",
		Long: `tasklist keeps an ordered list of tasks in a plain text file.

Run without a subcommand to print the current tasks.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetVersionTemplate(fmt.Sprintf("tasklist version %s\n  commit: %s\n  built:  %s\n", version, commit, date))

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.file, "file", "f", "", "task file to use (overrides config and $"+config.FileEnv+")")
	pf.BoolVarP(&c.kanban, "kanban", "k", false, "show tasks as a kanban board")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "print extra information")

	rootCmd.AddCommand(
		newAddCmd(c),
		newUpdateCmd(c),
		newShowCmd(c),
		newDeleteCmd(c),
		newTUICmd(c),
	)

	return rootCmd
}

// setup loads configuration, builds the logger and resolves the task file.
func (c *cli) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config %s: %w", config.Path(), err)
	}
	c.cfg = cfg
	c.logger = newLogger(c.errOut, c.verbose)

	c.path = cfg.ResolveFile()
	if c.file != "" {
		c.path = config.ExpandHome(c.file)
	}
	c.logger.Infof("Using tasklist file: %s", c.path)
	return nil
}

// openStore opens the resolved task file, creating it if needed.
func (c *cli) openStore(logger *log.Logger) (*storage.Storage, error) {
	return storage.New(c.path, storage.WithLogger(logger))
}

// useKanban reports whether the board view was requested, falling back to
// the configured default when --kanban was not given.
func (c *cli) useKanban(cmd *cobra.Command) bool {
	if f := cmd.Flags().Lookup("kanban"); f != nil && f.Changed {
		return c.kanban
	}
	return c.cfg.Kanban
}

func (c *cli) renderOptions() render.Options {
	return render.Options{
		Title: c.cfg.Title,
		Width: outputWidth(c.out),
	}
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.InfoLevel
	}
	if os.Getenv(debugEnv) == "1" {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "tasklist",
		Level:  level,
	})
}

// outputWidth returns the terminal width when w is a terminal.
func outputWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		return render.TerminalWidth(f.Fd())
	}
	return render.DefaultWidth
}
