package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LoveFromCodes/todo-list/internal/clierr"
	"github.com/LoveFromCodes/todo-list/internal/output"
	"github.com/LoveFromCodes/todo-list/internal/task"
	"github.com/LoveFromCodes/todo-list/internal/view"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `Lists tasks with optional filtering, search, sorting, and output format control.`,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringP("filter", "f", string(view.FilterIncomplete),
		"completion filter (incomplete, completed, all)")
	listCmd.Flags().StringP("search", "s", "", "case-insensitive title search")
	listCmd.Flags().String("sort", string(view.SortCreationDate),
		"sort field (due, priority, created)")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	filterStr, _ := cmd.Flags().GetString("filter")
	search, _ := cmd.Flags().GetString("search")
	sortStr, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")

	filter, ok := view.ParseFilter(filterStr)
	if !ok {
		return clierr.Newf(clierr.InvalidFilter,
			"invalid filter %q; valid: incomplete, completed, all", filterStr)
	}
	sortKey, ok := view.ParseSort(sortStr)
	if !ok {
		return clierr.Newf(clierr.InvalidSort,
			"invalid sort %q; valid: due, priority, created", sortStr)
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

	result := view.Apply(tasks, view.Options{
		Filter:    filter,
		Search:    search,
		Sort:      sortKey,
		Ascending: !reverse,
	})

	return outputTaskList(result)
}

func outputTaskList(tasks []*task.Task) error {
	format := outputFormat()
	if format == output.FormatJSON {
		if tasks == nil {
			tasks = []*task.Task{}
		}
		return output.JSON(os.Stdout, tasks)
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, tasks)
		return nil
	}

	output.TaskTable(os.Stdout, tasks)
	return nil
}
