// Package materials handles the material-catalog management commands.
package materials

import (
	"context"

	"github.com/spf13/cobra"

	"fvieira/frota-csv/cmd/root"
	"fvieira/frota-csv/internal/logging"
	"fvieira/frota-csv/internal/registry"
)

var catalogFile string

// Cmd represents the materials command group.
var Cmd = &cobra.Command{
	Use:   "materials",
	Short: "Manage the material cost-category catalog",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalogued materials",
	Run:   listFunc,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-import the catalog from a semicolon-delimited CSV",
	Run:   importFunc,
}

func init() {
	importCmd.Flags().StringVarP(&catalogFile, "file", "i", "", "Catalog CSV file (required)")
	_ = importCmd.MarkFlagRequired("file")

	Cmd.AddCommand(listCmd, importCmd)
}

func listFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	st, err := root.OpenStore(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to connect to store: %v", err)
	}
	defer func() { _ = st.Close(ctx) }()

	entries, err := st.Materials().List(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to list materials: %v", err)
	}
	for _, entry := range entries {
		root.Log.Info("Material",
			logging.Field{Key: "codigo", Value: entry.Code},
			logging.Field{Key: "descricao", Value: entry.Description},
			logging.Field{Key: "categoria", Value: entry.Category})
	}
	root.Log.Info("Catalog size", logging.Field{Key: "materials", Value: len(entries)})
}

func importFunc(cmd *cobra.Command, args []string) {
	entries, err := registry.LoadMaterialsCSV(catalogFile)
	if err != nil {
		root.Log.Fatalf("Failed to read catalog file: %v", err)
	}

	ctx := context.Background()
	st, err := root.OpenStore(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to connect to store: %v", err)
	}
	defer func() { _ = st.Close(ctx) }()

	if err := st.Materials().BulkImport(ctx, entries); err != nil {
		root.Log.Fatalf("Failed to import catalog: %v", err)
	}
	root.Log.Info("Catalog import completed successfully!",
		logging.Field{Key: "materials", Value: len(entries)})
}
