package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LoveFromCodes/todo-list/internal/output"
	"github.com/LoveFromCodes/todo-list/internal/task"
)

var attachCmd = &cobra.Command{
	Use:   "attach ID",
	Short: "Create and print the task's attachment folder",
	Long: `Lazily creates the per-task attachment folder under the storage
directory (named <creation-date>-<title>) and prints its path. Files
dropped into that folder travel with the storage directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runAttach,
}

func init() {
	rootCmd.AddCommand(attachCmd)
}

func runAttach(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	baseDir, err := requireBaseDir(cfg)
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

	path, err := task.EnsureFolder(t, baseDir)
	if err != nil {
		return err
	}

	if err := st.Update(t); err != nil {
		return err
	}

	logActivity(cfg, "attach", t.ID, path)
	exportSnapshot(cfg, st)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"id":   t.ID.String(),
			"path": path,
		})
	}

	output.Messagef(os.Stdout, "%s", path)
	return nil
}
