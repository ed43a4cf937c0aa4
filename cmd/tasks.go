package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/internal/meetstore"
	"github.com/cadencehq/cadence/internal/outwriter"
	"github.com/cadencehq/cadence/schema"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// tasksCmd manages per-contact action items.
var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage per-contact action items",
	Long: `Manage action items assigned to contacts.

Completion state feeds the per-person completion rates in
'cadence insights'; open tasks past their due date count as overdue.

Subcommands:
  list - Show all tasks
  add  - Add a task for a contact
  done - Mark a task complete

Examples:
  # Add a follow-up with a due date
  cadence tasks add --contact-id <id> --title "Send growth plan" --due 2026-09-15

  # Complete it
  cadence tasks done <task-id>`,
}

// tasksListCmd lists all tasks.
var tasksListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show all tasks",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := meetstore.Manager.Get()
		if store == nil {
			contract.LogFatal("Cannot list tasks", errors.New("meeting store is not initialized"))
		}
		tasks, err := store.Tasks().ListTasks(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot list tasks", err)
		}
		if err := outwriter.WriteTaskList(tasks, cfg); err != nil {
			contract.LogFatal("Cannot write tasks", err)
		}
	},
}

// tasksAddCmd adds a single task.
var tasksAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Add a task for a contact",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executeTaskAdd(); err != nil {
			contract.LogFatal("Cannot add task", err)
		}
	},
}

// tasksDoneCmd marks a task complete.
var tasksDoneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task complete",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The positional here is a task id, not an input path.
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		store := meetstore.Manager.Get()
		if store == nil {
			contract.LogFatal("Cannot complete task", errors.New("meeting store is not initialized"))
		}
		if err := store.Tasks().CompleteTask(rootCtx, args[0]); err != nil {
			contract.LogFatal("Cannot complete task", err)
		}
		fmt.Printf("Task %s marked done\n", args[0])
	},
}

func executeTaskAdd() error {
	contactID := viper.GetString("contact-id")
	title := viper.GetString("title")
	if contactID == "" {
		return errors.New("--contact-id is required")
	}
	if title == "" {
		return errors.New("--title is required")
	}

	store := meetstore.Manager.Get()
	if store == nil {
		return errors.New("meeting store is not initialized")
	}

	task := schema.Task{
		ID:        uuid.NewString(),
		ContactID: contactID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	if due := viper.GetString("due"); due != "" {
		t, err := time.Parse("2006-01-02", due)
		if err != nil {
			return fmt.Errorf("invalid due date '%s' (expected YYYY-MM-DD): %w", due, err)
		}
		task.DueAt = t
	}

	if err := store.Tasks().AddTask(rootCtx, task); err != nil {
		return err
	}

	fmt.Printf("Added task %q (%s)\n", task.Title, task.ID)
	return nil
}
