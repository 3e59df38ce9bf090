package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LoveFromCodes/todo-list/internal/config"
	"github.com/LoveFromCodes/todo-list/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config directory and task database",
	Long: `Creates the config directory (default ~/.config/todo) with default
settings and an empty task database. With --base-dir, also configures the
storage directory for snapshots and attachments, importing any existing
snapshot found there.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("base-dir", "", "storage directory for snapshots and attachments")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir, err := resolveDir()
	if err != nil {
		return err
	}

	cfg, err := config.Init(dir)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	baseDir, _ := cmd.Flags().GetString("base-dir")
	imported := 0
	if baseDir != "" {
		imported, err = switchBaseDir(cfg, st, baseDir)
		if err != nil {
			return err
		}
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"config_dir": cfg.Dir(),
			"base_dir":   cfg.BaseDir,
			"imported":   imported,
		})
	}

	output.Messagef(os.Stdout, "Initialized config at %s", cfg.Dir())
	if cfg.HasBaseDir() {
		output.Messagef(os.Stdout, "Storage directory: %s", cfg.BaseDir)
		if imported > 0 {
			output.Messagef(os.Stdout, "Imported %d tasks from existing snapshot", imported)
		}
	} else {
		output.Messagef(os.Stdout, "No storage directory set; run 'todo switch DIR' to choose one")
	}
	return nil
}
