package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LoveFromCodes/todo-list/internal/output"
)

// Activity log actions written by done. The reminder daemon reads the
// last action for a task to learn whether a completion asked to keep its
// pending reminder.
const (
	actionDone     = "done"
	actionDoneKeep = "done-keep-reminder"
)

var doneCmd = &cobra.Command{
	Use:     "done ID",
	Aliases: []string{"complete"},
	Short:   "Mark a task as completed",
	Long: `Marks a task as completed, stamping its completion time. A pending
reminder for the task is cancelled unless --keep-reminder is given.
Use --reopen to clear the completion instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	doneCmd.Flags().Bool("keep-reminder", false, "keep the pending reminder despite completion")
	doneCmd.Flags().Bool("reopen", false, "reopen a completed task")
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	t, err := findTask(st, args[0])
	if err != nil {
		return err
	}

	reopen, _ := cmd.Flags().GetBool("reopen")
	keepReminder, _ := cmd.Flags().GetBool("keep-reminder")

	action := actionDone
	if reopen {
		t.Reopen()
		action = "reopen"
	} else {
		t.Complete()
		if keepReminder {
			action = actionDoneKeep
		}
	}

	if err := st.Update(t); err != nil {
		return err
	}

	logActivity(cfg, action, t.ID, t.Title)
	exportSnapshot(cfg, st)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	if reopen {
		output.Messagef(os.Stdout, "Reopened task %s: %s", output.ShortID(t), t.Title)
	} else {
		output.Messagef(os.Stdout, "Completed task %s: %s", output.ShortID(t), t.Title)
		if keepReminder && t.DueDate != nil {
			output.Messagef(os.Stdout, "  Reminder kept for %s", t.DueDate.Format("2006-01-02 15:04"))
		}
	}
	return nil
}
