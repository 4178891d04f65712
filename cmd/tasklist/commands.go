package main

import (
	"fmt"
	"io"
	"strings"

	"tasklist/internal/render"
	"tasklist/internal/storage"
	"tasklist/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newAddCmd(c *cli) *cobra.Command {
	var desc string
	cmd := &cobra.Command{
		Use:     "add [description...]",
		Aliases: []string{"a"},
		Short:   "Add a new task",
		Example: `  tasklist add -d "Buy milk"
  tasklist add Call the plumber`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if desc == "" {
				desc = strings.Join(args, " ")
			}
			store, err := c.openStore(c.logger)
			if err != nil {
				return err
			}
			task, err := store.AddTask(desc)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, successStyle.Render(fmt.Sprintf("Added task %d: %s", task.ID, task.Description)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&desc, "description", "d", "", "task description")
	return cmd
}

func newUpdateCmd(c *cli) *cobra.Command {
	var (
		id     int
		status string
		desc   string
	)
	cmd := &cobra.Command{
		Use:     "update",
		Aliases: []string{"u"},
		Short:   "Change the status or description of a task",
		Example: `  tasklist update -i 3 -s in_progress
  tasklist update -i 3 -s done -d "Buy oat milk"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := storage.ParseStatusName(status)
			if err != nil {
				return err
			}
			var newDesc *string
			if cmd.Flags().Changed("description") {
				newDesc = &desc
			}
			store, err := c.openStore(c.logger)
			if err != nil {
				return err
			}
			task, err := store.UpdateTask(id, st, newDesc)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, successStyle.Render(fmt.Sprintf("Updated task %d: %s", task.ID, task.Status.Label())),
				dimStyle.Render(task.Description))
			return nil
		},
	}
	cmd.Flags().IntVarP(&id, "id", "i", 0, "id of the task to update")
	cmd.Flags().StringVarP(&status, "status", "s", "", "new status: not_started, in_progress or done")
	cmd.Flags().StringVarP(&desc, "description", "d", "", "new description")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func newShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Aliases: []string{"ls", "list"},
		Short:   "Print all tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd)
		},
	}
}

func (c *cli) runShow(cmd *cobra.Command) error {
	store, err := c.openStore(c.logger)
	if err != nil {
		return err
	}
	tasks, err := store.LoadTasks()
	if err != nil {
		return err
	}

	opts := c.renderOptions()
	if c.useKanban(cmd) {
		_, err = io.WriteString(c.out, render.Board(tasks, opts))
	} else {
		_, err = io.WriteString(c.out, render.Table(tasks, opts))
	}
	return err
}

func newDeleteCmd(c *cli) *cobra.Command {
	var id int
	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Example: `  tasklist delete -i 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore(c.logger)
			if err != nil {
				return err
			}
			task, err := store.DeleteTask(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, successStyle.Render(fmt.Sprintf("Deleted task %d:", task.ID)),
				boldStyle.Render(task.Description))
			return nil
		},
	}
	cmd.Flags().IntVarP(&id, "id", "i", 0, "id of the task to delete")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newTUICmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "tui",
		Aliases: []string{"interactive", "i"},
		Short:   "Browse and edit tasks interactively",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Log lines would corrupt the alternate screen.
			store, err := c.openStore(log.New(io.Discard))
			if err != nil {
				return err
			}
			return ui.Run(cmd.Context(), store, ui.NewStyles(c.cfg), &ui.AppConfig{
				Keys:  &c.cfg.Keys,
				Title: c.cfg.Title,
			})
		},
	}
}
