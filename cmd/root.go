// Package cmd implements the todo CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/LoveFromCodes/todo-list/internal/clierr"
	"github.com/LoveFromCodes/todo-list/internal/config"
	"github.com/LoveFromCodes/todo-list/internal/output"
	"github.com/LoveFromCodes/todo-list/internal/snapshot"
	"github.com/LoveFromCodes/todo-list/internal/store"
	"github.com/LoveFromCodes/todo-list/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "A to-do list for the terminal",
	Long: `todo keeps your tasks in a local database with reminders, a JSON mirror
of the task set in a folder of your choice, and generated work reports.
Run todo without arguments to open the interactive task list.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || termenv.EnvNoColor() {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to config directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Handle SilentError — exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	// Determine if JSON mode is active.
	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv("TODO_OUTPUT") == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error — wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// resolveDir returns the absolute path to the config directory.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	return config.DefaultDir()
}

// loadConfig loads the config, mapping a missing config to NOT_INITIALIZED.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return nil, clierr.New(clierr.NotInitialized,
				"no configuration found; run 'todo init' first")
		}
		return nil, err
	}
	return cfg, nil
}

// openStore opens the primary task database for the config.
func openStore(cfg *config.Config) (*store.Store, error) {
	return store.Open(cfg.DBPath())
}

// findTask resolves a task by full UUID or unique ID prefix.
func findTask(st *store.Store, arg string) (*task.Task, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return st.Get(id)
	}

	prefix := strings.ToLower(arg)
	if prefix == "" {
		return nil, clierr.New(clierr.InvalidTaskID, "task ID must not be empty")
	}

	tasks, err := st.All()
	if err != nil {
		return nil, err
	}

	var matches []*task.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID.String(), prefix) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return nil, clierr.Newf(clierr.TaskNotFound, "no task matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return nil, clierr.Newf(clierr.InvalidTaskID,
			"ambiguous task ID %q matches %d tasks; use more characters", arg, len(matches))
	}
}

// requireBaseDir returns the configured storage directory or an error
// directing the user to pick one.
func requireBaseDir(cfg *config.Config) (string, error) {
	if !cfg.HasBaseDir() {
		return "", clierr.New(clierr.NoBaseDir,
			"no storage directory configured; run 'todo switch DIR' to choose one")
	}
	return cfg.BaseDir, nil
}

// parseDue parses a due date as "YYYY-MM-DD HH:MM" or "YYYY-MM-DD"
// (midnight) in local time.
func parseDue(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if d, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return d, nil
		}
	}
	return time.Time{}, clierr.Newf(clierr.InvalidDate,
		"invalid date %q; use YYYY-MM-DD or \"YYYY-MM-DD HH:MM\"", s)
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// logActivity appends an entry to the activity log. Errors are silently
// discarded because logging should never fail a command.
func logActivity(cfg *config.Config, action string, id uuid.UUID, detail string) {
	store.LogMutation(cfg.Dir(), action, id.String(), detail)
}

// exportSnapshot mirrors the current task set to the storage directory.
// Best-effort: a failed or unconfigured export never fails the mutation
// that triggered it.
func exportSnapshot(cfg *config.Config, st *store.Store) {
	if !cfg.HasBaseDir() {
		return
	}
	tasks, err := st.All()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: snapshot export skipped: %v\n", err)
		return
	}
	if err := snapshot.Export(cfg.BaseDir, tasks); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: snapshot export failed: %v\n", err)
	}
}
