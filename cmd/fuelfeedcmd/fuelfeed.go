// Package fuelfeedcmd handles the external fuel-feed commands.
package fuelfeedcmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"fvieira/frota-csv/cmd/root"
	"fvieira/frota-csv/internal/fuelfeed"
	"fvieira/frota-csv/internal/logging"
	"fvieira/frota-csv/internal/registry"
)

var (
	month int
	year  int
)

// Cmd represents the fuelfeed command group.
var Cmd = &cobra.Command{
	Use:   "fuelfeed",
	Short: "Pull fuel records from the external supply feed",
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch one month of fuel records and persist them",
	Run:   syncFunc,
}

func init() {
	now := time.Now()
	syncCmd.Flags().IntVarP(&month, "month", "m", int(now.Month()), "Feed month (1-12)")
	syncCmd.Flags().IntVarP(&year, "year", "y", now.Year(), "Feed year")

	Cmd.AddCommand(syncCmd)
}

func syncFunc(cmd *cobra.Command, args []string) {
	if err := Sync(context.Background(), month, year); err != nil {
		root.Log.Fatalf("Fuel-feed sync failed: %v", err)
	}
}

// Sync pulls one month of the fuel feed and persists the records. The
// scheduler runs it on the configured cron spec; the sync subcommand runs
// it once.
func Sync(ctx context.Context, month, year int) error {
	st, err := root.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(ctx) }()

	machines, err := st.Machines().List(ctx)
	if err != nil {
		return err
	}

	client := fuelfeed.New(root.Cfg.FuelFeed.URL, root.Log)
	records, err := client.Fetch(ctx, month, year, registry.NewSnapshot(machines))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		root.Log.Info("Fuel feed returned no records for registered fleets",
			logging.Field{Key: "month", Value: month},
			logging.Field{Key: "year", Value: year})
		return nil
	}

	if err := st.Expenses().CreateBatch(ctx, records); err != nil {
		return err
	}
	root.Log.Info("Fuel feed synced",
		logging.Field{Key: "month", Value: month},
		logging.Field{Key: "year", Value: year},
		logging.Field{Key: "records", Value: len(records)})
	return nil
}
