package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LoveFromCodes/todo-list/internal/snapshot"
	"github.com/LoveFromCodes/todo-list/internal/tui"
	"github.com/LoveFromCodes/todo-list/internal/watcher"
)

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	exporter := snapshot.NewExporter(st.All, func() string { return cfg.BaseDir })
	model := tui.New(st, exporter.Request)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startTUIWatcher(ctx, cfg.Dir(), p)

	_, err = p.Run()

	// Let any in-flight snapshot export finish before the store closes.
	exporter.Flush()
	return err
}

func startTUIWatcher(ctx context.Context, dir string, p *tea.Program) {
	w, err := watcher.New([]string{dir}, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, nil)
}
