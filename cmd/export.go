package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LoveFromCodes/todo-list/internal/output"
	"github.com/LoveFromCodes/todo-list/internal/snapshot"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the snapshot now",
	Long: `Writes the full task set to _METAINFO.json in the storage directory,
overwriting any previous snapshot. Mutating commands do this automatically;
export forces a fresh write.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
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

	tasks, err := st.All()
	if err != nil {
		return err
	}

	if err := snapshot.Export(baseDir, tasks); err != nil {
		return err
	}

	total, completed, pending, err := st.Counts()
	if err != nil {
		return err
	}

	path := filepath.Join(baseDir, snapshot.MetaFileName)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"path":      path,
			"total":     total,
			"completed": completed,
			"pending":   pending,
		})
	}

	output.Messagef(os.Stdout, "Exported %d tasks (%d completed, %d pending) to %s",
		total, completed, pending, path)
	return nil
}
