// Package machines handles the machine-registry management commands.
package machines

import (
	"context"

	"github.com/spf13/cobra"

	"fvieira/frota-csv/cmd/root"
	"fvieira/frota-csv/internal/logging"
	"fvieira/frota-csv/internal/models"
	"fvieira/frota-csv/internal/registry"
)

var (
	registryFile string

	fleetCode string
	name      string
	machType  string
	location  string
	segment   string

	deleteID string
)

// Cmd represents the machines command group.
var Cmd = &cobra.Command{
	Use:   "machines",
	Short: "Manage the fleet machine registry",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered machines",
	Run:   listFunc,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Register one machine",
	Run:   addFunc,
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete one machine by id",
	Run:   deleteFunc,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-import machines from a semicolon-delimited CSV",
	Run:   importFunc,
}

func init() {
	addCmd.Flags().StringVar(&fleetCode, "frota", "", "Fleet code (required)")
	addCmd.Flags().StringVar(&name, "maquina", "", "Machine name (required)")
	addCmd.Flags().StringVar(&machType, "tipo", "", "Machine type")
	addCmd.Flags().StringVar(&location, "localizacao", "", "Location")
	addCmd.Flags().StringVar(&segment, "segmento", "", "Segment")
	_ = addCmd.MarkFlagRequired("frota")
	_ = addCmd.MarkFlagRequired("maquina")

	deleteCmd.Flags().StringVar(&deleteID, "id", "", "Machine id (required)")
	_ = deleteCmd.MarkFlagRequired("id")

	importCmd.Flags().StringVarP(&registryFile, "file", "i", "", "Registry CSV file (required)")
	_ = importCmd.MarkFlagRequired("file")

	Cmd.AddCommand(listCmd, addCmd, deleteCmd, importCmd)
}

func listFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	st, err := root.OpenStore(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to connect to store: %v", err)
	}
	defer func() { _ = st.Close(ctx) }()

	machines, err := st.Machines().List(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to list machines: %v", err)
	}
	for _, m := range registry.NewSnapshot(machines).Machines() {
		root.Log.Info("Machine",
			logging.Field{Key: "frota", Value: m.FleetCode},
			logging.Field{Key: "maquina", Value: m.Name},
			logging.Field{Key: "tipo", Value: m.Type},
			logging.Field{Key: "localizacao", Value: m.Location},
			logging.Field{Key: "segmento", Value: m.Segment})
	}
	root.Log.Info("Registry size", logging.Field{Key: "machines", Value: len(machines)})
}

func addFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	st, err := root.OpenStore(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to connect to store: %v", err)
	}
	defer func() { _ = st.Close(ctx) }()

	machine := models.Machine{
		FleetCode: models.NormalizeFleetCode(fleetCode),
		Name:      name,
		Type:      machType,
		Location:  location,
		Segment:   segment,
	}
	id, err := st.Machines().Create(ctx, machine)
	if err != nil {
		root.Log.Fatalf("Failed to create machine: %v", err)
	}
	root.Log.Info("Machine registered",
		logging.Field{Key: "id", Value: id},
		logging.Field{Key: "frota", Value: machine.FleetCode})
}

func deleteFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	st, err := root.OpenStore(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to connect to store: %v", err)
	}
	defer func() { _ = st.Close(ctx) }()

	if err := st.Machines().Delete(ctx, deleteID); err != nil {
		root.Log.Fatalf("Failed to delete machine: %v", err)
	}
	root.Log.Info("Machine deleted", logging.Field{Key: "id", Value: deleteID})
}

func importFunc(cmd *cobra.Command, args []string) {
	machines, err := registry.LoadMachinesCSV(registryFile)
	if err != nil {
		root.Log.Fatalf("Failed to read registry file: %v", err)
	}

	ctx := context.Background()
	st, err := root.OpenStore(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to connect to store: %v", err)
	}
	defer func() { _ = st.Close(ctx) }()

	for _, machine := range machines {
		if _, err := st.Machines().Create(ctx, machine); err != nil {
			root.Log.Fatalf("Failed to create machine %s: %v", machine.FleetCode, err)
		}
	}
	root.Log.Info("Registry import completed successfully!",
		logging.Field{Key: "machines", Value: len(machines)})
}
