package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/LoveFromCodes/todo-list/internal/clierr"
	"github.com/LoveFromCodes/todo-list/internal/output"
	"github.com/LoveFromCodes/todo-list/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report PERIOD",
	Short: "Generate a work report",
	Long: `Generates a weekly, monthly, or yearly work report from the tasks
whose timestamps fall in the period, using the configured text-generation
endpoint. The API key is read from the environment variable named in the
config (default TODO_API_KEY), with a .env file in the config directory
consulted first.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(report.PeriodWeekly), string(report.PeriodMonthly), string(report.PeriodYearly)},
	RunE:      runReport,
}

func init() {
	reportCmd.Flags().Bool("raw", false, "print the report without terminal rendering")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	period, ok := report.ParsePeriod(args[0])
	if !ok {
		return clierr.Newf(clierr.InvalidPeriod,
			"invalid period %q; valid: weekly, monthly, yearly", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	apiKey := cfg.APIKey()
	if apiKey == "" {
		return clierr.Newf(clierr.ReportFailed,
			"no API key found; set %s in the environment or in %s/.env",
			cfg.LLM.APIKeyEnv, cfg.Dir())
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

	client := report.NewClient(cfg.LLM.BaseURL, apiKey, cfg.LLM.Model)
	svc := report.NewService(client, cfg.WeekStartDay())

	fmt.Fprintln(os.Stderr, "Generating report...")
	text, err := svc.Generate(cmd.Context(), period, tasks)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"period": string(period),
			"report": text,
		})
	}

	raw, _ := cmd.Flags().GetBool("raw")
	if !raw {
		if rendered, err := renderMarkdown(text); err == nil {
			fmt.Fprint(os.Stdout, rendered)
			return nil
		}
	}

	fmt.Fprintln(os.Stdout, text)
	return nil
}

// renderMarkdown pretty-prints the report for the terminal. Any rendering
// failure falls back to the raw text.
func renderMarkdown(text string) (string, error) {
	const wrapWidth = 100
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}
