// Package importcmd handles the file import command.
package importcmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"fvieira/frota-csv/cmd/root"
	"fvieira/frota-csv/internal/importer"
	"fvieira/frota-csv/internal/logging"
	"fvieira/frota-csv/internal/parsererror"
	"fvieira/frota-csv/internal/registry"
)

var (
	inputFile string
	confirm   bool
)

// Cmd represents the import command.
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Parse a legacy export file and import its expenses",
	Long: `Parse a legacy export file (.txt/.csv), detect its layout, preview the
normalized records and, with --confirm, persist them in batches.`,
	Run: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "i", "", "Input export file (required)")
	Cmd.Flags().BoolVarP(&confirm, "confirm", "y", false, "Persist the preview instead of only showing it")
	_ = Cmd.MarkFlagRequired("file")
}

func importFunc(cmd *cobra.Command, args []string) {
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
	materials, err := st.Materials().List(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to list materials: %v", err)
	}

	o := importer.New(st.Expenses(), root.Log, importer.Options{
		BatchSize:  root.Cfg.Import.BatchSize,
		BatchPause: root.BatchPause(),
	})

	preview, err := o.PreviewFile(inputFile, registry.NewSnapshot(machines), registry.NewMaterialIndex(materials))
	if err != nil {
		root.Log.Fatalf("Import failed: %v", err)
	}

	root.Log.Info("Import preview",
		logging.Field{Key: "layout", Value: preview.Layout},
		logging.Field{Key: "kind", Value: string(preview.Kind)},
		logging.Field{Key: "records", Value: len(preview.Records)})
	for _, fleet := range preview.Warnings.UnknownFleets() {
		root.Log.Warn("Unknown fleet code", logging.Field{Key: "frota", Value: fleet})
	}
	for _, material := range preview.Warnings.UnknownMaterials() {
		root.Log.Warn("Uncatalogued material", logging.Field{Key: "codigo", Value: material})
	}
	for _, class := range preview.Warnings.UnknownClasses() {
		root.Log.Warn("Unrecognized class label", logging.Field{Key: "classe", Value: class})
	}

	if !confirm {
		root.Log.Info("Preview only; re-run with --confirm to persist the records")
		return
	}

	committed, err := o.Commit(ctx, preview)
	if err != nil {
		var berr *parsererror.BatchWriteError
		if errors.As(err, &berr) {
			root.Log.Fatalf("Import aborted at batch %d: %v (%d records already persisted, not rolled back)",
				berr.Batch, berr.Err, berr.Committed)
		}
		root.Log.Fatalf("Import failed: %v", err)
	}
	root.Log.Info("Import completed successfully!", logging.Field{Key: "records", Value: committed})
}
