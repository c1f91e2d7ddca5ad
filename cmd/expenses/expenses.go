// Package expenses handles the expense maintenance commands.
package expenses

import (
	"context"

	"github.com/spf13/cobra"

	"fvieira/frota-csv/cmd/root"
	"fvieira/frota-csv/internal/logging"
)

var (
	deleteIDs []string
	confirm   bool
)

// Cmd represents the expenses command group.
var Cmd = &cobra.Command{
	Use:   "expenses",
	Short: "Maintain the persisted expense records",
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete expenses by id",
	Run:   deleteFunc,
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Wipe every persisted expense",
	Long:  `Wipe every persisted expense. Destructive and not reversible; requires --yes.`,
	Run:   purgeFunc,
}

func init() {
	deleteCmd.Flags().StringSliceVar(&deleteIDs, "id", nil, "Expense id, repeatable (required)")
	_ = deleteCmd.MarkFlagRequired("id")

	purgeCmd.Flags().BoolVarP(&confirm, "yes", "y", false, "Confirm the wipe")

	Cmd.AddCommand(deleteCmd, purgeCmd)
}

func deleteFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	st, err := root.OpenStore(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to connect to store: %v", err)
	}
	defer func() { _ = st.Close(ctx) }()

	if err := st.Expenses().DeleteMany(ctx, deleteIDs); err != nil {
		root.Log.Fatalf("Failed to delete expenses: %v", err)
	}
	root.Log.Info("Expenses deleted", logging.Field{Key: "count", Value: len(deleteIDs)})
}

func purgeFunc(cmd *cobra.Command, args []string) {
	if !confirm {
		root.Log.Fatalf("Refusing to wipe without --yes")
	}

	ctx := context.Background()
	st, err := root.OpenStore(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to connect to store: %v", err)
	}
	defer func() { _ = st.Close(ctx) }()

	if err := st.Expenses().DeleteAll(ctx); err != nil {
		root.Log.Fatalf("Failed to purge expenses: %v", err)
	}
	root.Log.Info("All expenses purged")
}
