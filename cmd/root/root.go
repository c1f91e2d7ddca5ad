// Package root contains the root command and the shared wiring every
// subcommand relies on: configuration, logging and the store connection.
package root

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"fvieira/frota-csv/internal/classifier"
	"fvieira/frota-csv/internal/config"
	"fvieira/frota-csv/internal/export"
	"fvieira/frota-csv/internal/logging"
	"fvieira/frota-csv/internal/registry"
	"fvieira/frota-csv/internal/store"
)

var (
	// Log is the shared logger instance for commands.
	Log = logging.GetLogger()

	// Cfg is the loaded application configuration, available after
	// PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "frota-csv",
		Short: "Import legacy fleet maintenance exports and build cost reports.",
		Long: `frota-csv parses the legacy maintenance report exports (SAE134, SAE127,
tire, tracker and labor worksheets) into normalized expenses, classifies
them into cost buckets and aggregates per-machine closing reports.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to frota-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.Load()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)

			registry.SetLogger(Log)
			classifier.SetLogger(Log)
			store.SetLogger(Log)
			export.SetLogger(Log)
		},
	}
)

// OpenStore connects to the configured MongoDB database.
func OpenStore(ctx context.Context) (store.Store, error) {
	return store.ConnectMongo(ctx, Cfg.Mongo.URI, Cfg.Mongo.Database)
}

// LoadClassifier builds the classifier with the configured rule overrides.
func LoadClassifier() (*classifier.Classifier, error) {
	return classifier.NewRuleStore(Cfg.Import.CategoryRules).Load()
}

// BatchPause returns the configured inter-batch pause.
func BatchPause() time.Duration {
	return time.Duration(Cfg.Import.BatchPauseMs) * time.Millisecond
}
