package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/LoveFromCodes/todo-list/internal/config"
	"github.com/LoveFromCodes/todo-list/internal/reminder"
	"github.com/LoveFromCodes/todo-list/internal/store"
	"github.com/LoveFromCodes/todo-list/internal/watcher"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the reminder daemon",
	Long: `Watches the task database and delivers a desktop notification when a
task's due date arrives. An incomplete task with a due date has exactly one
pending reminder; completing it, removing the due date, or deleting it
cancels the reminder. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runRemind,
}

func init() {
	remindCmd.Flags().Bool("test", false, "deliver a test notification and exit")
	remindCmd.Flags().Duration("delay", 2*time.Second, "delay before the test notification fires") //nolint:mnd // default test delay
	rootCmd.AddCommand(remindCmd)
}

func runRemind(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sched := reminder.New(reminder.NewDesktopNotifier())
	if !sched.Authorized() {
		fmt.Fprintln(os.Stderr, "Warning: no notification mechanism available; reminders will not be delivered")
	}

	if test, _ := cmd.Flags().GetBool("test"); test {
		delay, _ := cmd.Flags().GetDuration("delay")
		fmt.Fprintf(os.Stderr, "Test notification in %s...\n", delay)
		sched.TestNotification(delay)
		time.Sleep(delay + time.Second)
		return nil
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	d := &reminderDaemon{cfg: cfg, st: st, sched: sched, known: make(map[uuid.UUID]bool)}
	d.reconcile()
	fmt.Fprintf(os.Stderr, "Reminder daemon running; %d reminders pending\n", sched.PendingCount())

	// The database lives in the config directory; watching the directory
	// picks up writes from other todo processes.
	w, err := watcher.New([]string{cfg.Dir()}, d.reconcile)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w.Run(ctx, func(err error) {
		fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
	})

	sched.CancelAll()
	return nil
}

// reminderDaemon reconciles the scheduler's pending set against the
// database whenever it changes.
type reminderDaemon struct {
	cfg   *config.Config
	st    *store.Store
	sched *reminder.Scheduler

	// known tracks task IDs seen on the previous pass so reminders of
	// deleted tasks get cancelled.
	known map[uuid.UUID]bool
}

func (d *reminderDaemon) reconcile() {
	tasks, err := d.st.All()
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading tasks: %v\n", err)
		return
	}

	seen := make(map[uuid.UUID]bool, len(tasks))
	for _, t := range tasks {
		seen[t.ID] = true
		switch {
		case t.NeedsReminder():
			d.sched.Schedule(t)
		case t.IsCompleted && d.sched.Has(t.ID) && d.keptOnCompletion(t.ID):
			// The completion asked to keep this reminder; leave it pending.
		default:
			d.sched.Cancel(t.ID)
		}
	}

	for id := range d.known {
		if !seen[id] {
			d.sched.Cancel(id)
		}
	}
	d.known = seen
}

// keptOnCompletion reports whether the task's most recent mutation was a
// completion that chose to keep its reminder.
func (d *reminderDaemon) keptOnCompletion(id uuid.UUID) bool {
	return store.LastAction(d.cfg.Dir(), id.String()) == actionDoneKeep
}
