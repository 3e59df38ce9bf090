package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/LoveFromCodes/todo-list/internal/output"
	"github.com/LoveFromCodes/todo-list/internal/task"
)

var addCmd = &cobra.Command{
	Use:     "add TITLE",
	Aliases: []string{"create"},
	Short:   "Add a new task",
	Long:    `Creates a new task with the given title and optional priority, due date, and note.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runAdd,
}

func init() {
	addCmd.Flags().StringP("priority", "p", "", "task priority (normal, important)")
	addCmd.Flags().String("due", "", "due date (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")")
	addCmd.Flags().StringP("note", "n", "", "free-text note")
	addCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "description" {
			name = "note"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	t, err := task.New(args[0])
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("priority"); v != "" {
		p, err := task.ParsePriority(v)
		if err != nil {
			return err
		}
		t.Priority = p
	}
	if v, _ := cmd.Flags().GetString("due"); v != "" {
		d, err := parseDue(v)
		if err != nil {
			return err
		}
		t.DueDate = &d
	}
	if v, _ := cmd.Flags().GetString("note"); v != "" {
		t.Note = v
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Insert(t); err != nil {
		return err
	}

	logActivity(cfg, "add", t.ID, t.Title)
	exportSnapshot(cfg, st)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Added task %s: %s", output.ShortID(t), t.Title)
	if t.DueDate != nil {
		output.Messagef(os.Stdout, "  Due: %s", t.DueDate.Format("2006-01-02 15:04"))
	}
	return nil
}
