// Package report handles the closing-report command.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fvieira/frota-csv/cmd/root"
	"fvieira/frota-csv/internal/aggregator"
	"fvieira/frota-csv/internal/dateparse"
	"fvieira/frota-csv/internal/export"
	"fvieira/frota-csv/internal/logging"
	"fvieira/frota-csv/internal/moneyparse"
)

var (
	month       int
	year        int
	granularity string
	outputDir   string
	writeCSV    bool
	writeXLSX   bool
)

// Cmd represents the report command.
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate expenses into a period closing report",
	Long: `Aggregate the persisted expenses for one period and print the summary.
With --csv or --xlsx the full per-machine closing table is exported.`,
	Run: reportFunc,
}

func init() {
	now := time.Now()
	Cmd.Flags().IntVarP(&month, "month", "m", int(now.Month()), "Report month (1-12)")
	Cmd.Flags().IntVarP(&year, "year", "y", now.Year(), "Report year")
	Cmd.Flags().StringVarP(&granularity, "granularity", "g", string(dateparse.GranularityMonth),
		"Period width: month, quarter, semester or year")
	Cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Export directory (defaults to the configured one)")
	Cmd.Flags().BoolVar(&writeCSV, "csv", false, "Export the closing table as CSV")
	Cmd.Flags().BoolVar(&writeXLSX, "xlsx", false, "Export the closing table as XLSX")
}

func reportFunc(cmd *cobra.Command, args []string) {
	period, err := buildPeriod()
	if err != nil {
		root.Log.Fatalf("%v", err)
	}

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
	expenses, err := st.Expenses().List(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to list expenses: %v", err)
	}

	rules, err := root.LoadClassifier()
	if err != nil {
		root.Log.Fatalf("Failed to load category rules: %v", err)
	}

	engine := aggregator.New(rules, aggregator.Options{SharedCostCenter: root.Cfg.Import.SharedCostFleet})
	rep := engine.Aggregate(expenses, machines, period)
	printSummary(rep)

	dir := outputDir
	if dir == "" {
		dir = root.Cfg.Export.Directory
	}
	if writeCSV {
		path, err := export.WriteCSV(rep, dir)
		if err != nil {
			root.Log.Fatalf("CSV export failed: %v", err)
		}
		root.Log.Info("Closing report written", logging.Field{Key: "file", Value: path})
	}
	if writeXLSX {
		path, err := export.WriteXLSX(rep, dir)
		if err != nil {
			root.Log.Fatalf("XLSX export failed: %v", err)
		}
		root.Log.Info("Closing report written", logging.Field{Key: "file", Value: path})
	}
}

func buildPeriod() (dateparse.Period, error) {
	g := dateparse.Granularity(granularity)
	switch g {
	case dateparse.GranularityMonth, dateparse.GranularityQuarter,
		dateparse.GranularitySemester, dateparse.GranularityYear:
	default:
		return dateparse.Period{}, fmt.Errorf("invalid granularity %q: use month, quarter, semester or year", granularity)
	}
	if month < 1 || month > 12 {
		return dateparse.Period{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	return dateparse.Period{Granularity: g, Month: month, Year: year}, nil
}

func printSummary(rep *aggregator.Report) {
	root.Log.Info("Period summary",
		logging.Field{Key: "periodo", Value: rep.Period.Label()},
		logging.Field{Key: "total", Value: moneyparse.FormatBR(rep.Total)},
		logging.Field{Key: "combustivel", Value: moneyparse.FormatBR(rep.FuelTotal)},
		logging.Field{Key: "manutencao", Value: moneyparse.FormatBR(rep.MaintenanceTotal)},
		logging.Field{Key: "horas", Value: moneyparse.FormatBR(rep.TotalHours)},
		logging.Field{Key: "custo_hora", Value: moneyparse.FormatBR(rep.CostPerHour)},
		logging.Field{Key: "maquinas_ativas", Value: rep.ActiveMachines})
	if rep.Trend != nil {
		root.Log.Info("Trend against previous period",
			logging.Field{Key: "variacao_pct", Value: moneyparse.FormatBR(*rep.Trend)})
	}
	for bucket, value := range rep.Composition {
		root.Log.Info("Composition",
			logging.Field{Key: "categoria", Value: string(bucket)},
			logging.Field{Key: "valor", Value: moneyparse.FormatBR(value)})
	}
	for _, top := range rep.TopMachines {
		root.Log.Info("Top machine",
			logging.Field{Key: "frota", Value: top.FleetCode},
			logging.Field{Key: "maquina", Value: top.Name},
			logging.Field{Key: "total", Value: moneyparse.FormatBR(top.Total)})
	}
	if !rep.RateioTotal.IsZero() {
		root.Log.Info("Shared cost-center spread",
			logging.Field{Key: "total", Value: moneyparse.FormatBR(rep.RateioTotal)},
			logging.Field{Key: "cota", Value: moneyparse.FormatBR(rep.RateioShare)})
	}
}
