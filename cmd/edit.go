package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LoveFromCodes/todo-list/internal/output"
	"github.com/LoveFromCodes/todo-list/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a task",
	Long: `Updates fields of an existing task. Changing or removing the due date
reschedules or cancels the task's reminder accordingly.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "new title")
	editCmd.Flags().StringP("priority", "p", "", "new priority (normal, important)")
	editCmd.Flags().String("due", "", "new due date (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")")
	editCmd.Flags().Bool("clear-due", false, "remove the due date")
	editCmd.Flags().StringP("note", "n", "", "new note text")
	editCmd.Flags().Bool("clear-note", false, "remove the note")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	if err := applyEditFlags(cmd, t); err != nil {
		return err
	}

	if err := st.Update(t); err != nil {
		return err
	}

	logActivity(cfg, "edit", t.ID, t.Title)
	exportSnapshot(cfg, st)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Updated task %s: %s", output.ShortID(t), t.Title)
	return nil
}

func applyEditFlags(cmd *cobra.Command, t *task.Task) error {
	if v, _ := cmd.Flags().GetString("title"); v != "" {
		if err := task.ValidateTitle(v); err != nil {
			return err
		}
		t.Title = v
	}
	if v, _ := cmd.Flags().GetString("priority"); v != "" {
		p, err := task.ParsePriority(v)
		if err != nil {
			return err
		}
		t.Priority = p
	}
	if clear, _ := cmd.Flags().GetBool("clear-due"); clear {
		t.DueDate = nil
	} else if v, _ := cmd.Flags().GetString("due"); v != "" {
		d, err := parseDue(v)
		if err != nil {
			return err
		}
		t.DueDate = &d
	}
	if clear, _ := cmd.Flags().GetBool("clear-note"); clear {
		t.Note = ""
	} else if cmd.Flags().Changed("note") {
		v, _ := cmd.Flags().GetString("note")
		t.Note = v
	}
	return nil
}
