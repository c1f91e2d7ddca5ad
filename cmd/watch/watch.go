// Package watch handles the long-running scheduler command.
package watch

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fvieira/frota-csv/cmd/fuelfeedcmd"
	"fvieira/frota-csv/cmd/root"
	"fvieira/frota-csv/internal/scheduler"
)

// Cmd represents the watch command.
var Cmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the fuel-feed sync scheduler until interrupted",
	Long: `Run the cron scheduler that pulls the fuel feed on the configured
schedule, logging registry and expense changes as they happen.`,
	Run: watchFunc,
}

func watchFunc(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := root.OpenStore(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to connect to store: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	machineChanges, err := st.Machines().Watch(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to watch machine registry: %v", err)
	}
	expenseChanges, err := st.Expenses().Watch(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to watch expenses: %v", err)
	}

	sched := scheduler.New(fuelfeedcmd.Sync, root.Log)
	if err := sched.Start(root.Cfg.FuelFeed.Schedule); err != nil {
		root.Log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()
	root.Log.Info("Scheduler running; press Ctrl+C to stop")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-stop:
			root.Log.Info("Shutting down")
			return
		case _, ok := <-machineChanges:
			if !ok {
				machineChanges = nil
				continue
			}
			root.Log.Info("Machine registry changed")
		case _, ok := <-expenseChanges:
			if !ok {
				expenseChanges = nil
				continue
			}
			root.Log.Info("Expense collection changed")
		}
	}
}
