package aggregator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fvieira/frota-csv/internal/dateparse"
	"fvieira/frota-csv/internal/models"
)

func jan2024() dateparse.Period {
	return dateparse.Period{Granularity: dateparse.GranularityMonth, Month: 1, Year: 2024}
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func expense(fleet, date, category string, amount float64) models.Expense {
	return models.Expense{
		Kind:      models.KindInflow,
		FleetCode: fleet,
		Date:      date,
		Category:  category,
		Amount:    dec(amount),
	}
}

func meterExpense(fleet, date string, meter float64) models.Expense {
	e := expense(fleet, date, "OLEO DIESEL", 0)
	e.HasMeter = true
	e.Meter = dec(meter)
	return e
}

func testMachines() []models.Machine {
	return []models.Machine{
		{FleetCode: "2260", Name: "TRATOR VALTRA", Type: "Trator", Segment: "AGRICOLA"},
		{FleetCode: "310", Name: "CAMINHAO PIPA", Type: "Caminhao", Segment: "APOIO"},
		{FleetCode: "55", Name: "MOTOR ESTACIONARIO", Type: "MOTOR"},
		{FleetCode: "56", Name: "MOTOR DA BOMBA 3", Type: "MOTOR", Segment: "IRRIGACAO"},
	}
}

func TestAggregateTotals(t *testing.T) {
	eng := New(nil, Options{})
	expenses := []models.Expense{
		expense("002260", "2024-01-10", "OLEO DIESEL", 500),
		expense("2260", "2024-01-12", "MANUT. PREVENTIVA (FROTA / MAQ)", 300),
		expense("310", "2024-01-15", "PNEU 18.4-34", 200),
		// Outside the period.
		expense("310", "2024-02-01", "OLEO DIESEL", 999),
		// No date: excluded from period aggregates.
		expense("310", "", "OLEO DIESEL", 999),
	}

	report := eng.Aggregate(expenses, testMachines(), jan2024())

	assert.True(t, dec(1000).Equal(report.Total), report.Total.String())
	assert.True(t, dec(500).Equal(report.FuelTotal))
	assert.True(t, dec(500).Equal(report.MaintenanceTotal))
	assert.Equal(t, 2, report.ActiveMachines)
	assert.Len(t, report.Composition, 3)
	assert.True(t, dec(500).Equal(report.Composition["combustivel"]))
	assert.True(t, dec(300).Equal(report.Composition["manutencao"]))
	assert.True(t, dec(200).Equal(report.Composition["pneus"]))
	assert.True(t, dec(800).Equal(report.SegmentComposition["AGRICOLA"]))
	assert.True(t, dec(200).Equal(report.SegmentComposition["APOIO"]))
}

func TestAggregateTheftExclusion(t *testing.T) {
	eng := New(nil, Options{})
	base := []models.Expense{
		expense("2260", "2024-01-10", "OLEO DIESEL", 500),
		expense("310", "2024-01-11", "FILTRO DE AR", 100),
	}
	withTheft := append(append([]models.Expense{}, base...),
		expense("2260", "2024-01-12", "FURTO DE BATERIA", 800))

	clean := eng.Aggregate(base, testMachines(), jan2024())
	theft := eng.Aggregate(withTheft, testMachines(), jan2024())

	assert.True(t, clean.Total.Equal(theft.Total))
	assert.True(t, clean.MaintenanceTotal.Equal(theft.MaintenanceTotal))
	require.Len(t, theft.Closing, 2)
	assert.True(t, dec(500).Equal(theft.Closing[1].Total))
}

func TestAggregateEngineOnlyExclusion(t *testing.T) {
	eng := New(nil, Options{})
	expenses := []models.Expense{
		// Plain engine-only machine: excluded entirely.
		expense("55", "2024-01-10", "FILTRO DE AR", 400),
		// Named sub-engine: type MOTOR but name prefix keeps it in.
		expense("56", "2024-01-10", "FILTRO DE AR", 150),
	}
	report := eng.Aggregate(expenses, testMachines(), jan2024())
	assert.True(t, dec(150).Equal(report.Total), report.Total.String())
	require.Len(t, report.Closing, 1)
	assert.Equal(t, "56", report.Closing[0].FleetCode)
}

func TestHoursWorkedBaseline(t *testing.T) {
	eng := New(nil, Options{})
	expenses := []models.Expense{
		meterExpense("2260", "2023-12-20", 100),
		meterExpense("2260", "2024-01-15", 150),
	}
	report := eng.Aggregate(expenses, testMachines(), jan2024())
	assert.True(t, dec(50).Equal(report.TotalHours), report.TotalHours.String())
}

func TestHoursWorkedClampOnReset(t *testing.T) {
	eng := New(nil, Options{})
	expenses := []models.Expense{
		meterExpense("2260", "2023-12-20", 100),
		meterExpense("2260", "2024-01-10", 150),
		meterExpense("2260", "2024-01-20", 140),
	}
	report := eng.Aggregate(expenses, testMachines(), jan2024())
	assert.True(t, report.TotalHours.IsZero(), report.TotalHours.String())
}

func TestCostPerHour(t *testing.T) {
	eng := New(nil, Options{})
	expenses := []models.Expense{
		expense("2260", "2024-01-10", "OLEO DIESEL", 500),
		meterExpense("2260", "2023-12-31", 1000),
		meterExpense("2260", "2024-01-31", 1100),
	}
	report := eng.Aggregate(expenses, testMachines(), jan2024())
	assert.True(t, dec(100).Equal(report.TotalHours))
	assert.True(t, dec(5).Equal(report.CostPerHour), report.CostPerHour.String())
}

func TestTrend(t *testing.T) {
	eng := New(nil, Options{})
	expenses := []models.Expense{
		expense("2260", "2023-12-10", "OLEO DIESEL", 400),
		expense("2260", "2024-01-10", "OLEO DIESEL", 500),
	}
	report := eng.Aggregate(expenses, testMachines(), jan2024())
	require.NotNil(t, report.Trend)
	assert.True(t, dec(25).Equal(*report.Trend), report.Trend.String())
}

func TestTrendNoBaseline(t *testing.T) {
	eng := New(nil, Options{})
	expenses := []models.Expense{
		expense("2260", "2024-01-10", "OLEO DIESEL", 500),
	}
	report := eng.Aggregate(expenses, testMachines(), jan2024())
	assert.Nil(t, report.Trend)
}

func TestTrendYearRollover(t *testing.T) {
	eng := New(nil, Options{})
	expenses := []models.Expense{
		expense("2260", "2023-12-10", "OLEO DIESEL", 100),
		expense("2260", "2024-01-10", "OLEO DIESEL", 200),
	}
	// January's previous period must be December of the prior year.
	report := eng.Aggregate(expenses, testMachines(), jan2024())
	require.NotNil(t, report.Trend)
	assert.True(t, dec(100).Equal(*report.Trend))
}

func TestRateioConservation(t *testing.T) {
	eng := New(nil, Options{})
	expenses := []models.Expense{
		expense("2260", "2024-01-10", "FILTRO DE AR", 100),
		expense("310", "2024-01-11", "FILTRO DE AR", 100),
		expense("9000", "2024-01-12", "FRETE DE PECAS", 90),
	}
	report := eng.Aggregate(expenses, testMachines(), jan2024())

	assert.True(t, dec(90).Equal(report.RateioTotal))
	assert.True(t, dec(45).Equal(report.RateioShare))

	var spread decimal.Decimal
	for _, row := range report.Closing {
		spread = spread.Add(row.General)
		assert.True(t, dec(145).Equal(row.Total), row.Total.String())
	}
	assert.True(t, report.RateioTotal.Equal(spread))
}

func TestRateioNoQualifyingMachines(t *testing.T) {
	eng := New(nil, Options{})
	expenses := []models.Expense{
		expense("9000", "2024-01-12", "FRETE DE PECAS", 90),
	}
	report := eng.Aggregate(expenses, testMachines(), jan2024())
	assert.True(t, dec(90).Equal(report.RateioTotal))
	assert.True(t, report.RateioShare.IsZero())
	assert.Empty(t, report.Closing)
}

func TestTopMachines(t *testing.T) {
	machines := []models.Machine{
		{FleetCode: "1"}, {FleetCode: "2"}, {FleetCode: "3"},
		{FleetCode: "4"}, {FleetCode: "5"}, {FleetCode: "6"},
	}
	expenses := []models.Expense{
		expense("1", "2024-01-10", "FILTRO", 10),
		expense("2", "2024-01-10", "FILTRO", 60),
		expense("3", "2024-01-10", "FILTRO", 30),
		expense("4", "2024-01-10", "FILTRO", 50),
		expense("5", "2024-01-10", "FILTRO", 20),
		expense("6", "2024-01-10", "FILTRO", 40),
	}
	report := New(nil, Options{}).Aggregate(expenses, machines, jan2024())
	require.Len(t, report.TopMachines, 5)
	assert.Equal(t, "2", report.TopMachines[0].FleetCode)
	assert.True(t, dec(60).Equal(report.TopMachines[0].Total))
	assert.Equal(t, "5", report.TopMachines[4].FleetCode)
}

func TestClosingRows(t *testing.T) {
	eng := New(nil, Options{})
	fuel := expense("2260", "2024-01-10", "OLEO DIESEL", 500)
	fuel.Quantity = dec(80)
	expenses := []models.Expense{
		fuel,
		expense("2260", "2024-01-11", "FILTRO DE OLEO", 200),
		expense("2260", "2024-01-12", "MAO DE OBRA INTERNA", 100),
		expense("2260", "2024-01-13", "PNEU 18.4-34", 300),
		expense("2260", "2024-01-14", "MENSALIDADE RASTREADOR", 50),
		meterExpense("2260", "2023-12-31", 0),
		meterExpense("2260", "2024-01-31", 100),
		expense("310", "2024-01-20", "FILTRO DE AR", 70),
	}
	report := eng.Aggregate(expenses, testMachines(), jan2024())
	require.Len(t, report.Closing, 2)

	// Numeric fleet-code order: 310 before 2260.
	assert.Equal(t, "310", report.Closing[0].FleetCode)
	row := report.Closing[1]
	assert.Equal(t, "2260", row.FleetCode)
	assert.True(t, dec(100).Equal(row.Hours))
	assert.True(t, dec(80).Equal(row.Liters))
	assert.True(t, dec(0.8).Equal(row.LitersPerHour))
	assert.True(t, dec(500).Equal(row.Fuel))
	assert.True(t, dec(200).Equal(row.Parts))
	assert.True(t, dec(100).Equal(row.Labor))
	assert.True(t, dec(300).Equal(row.Tires))
	assert.True(t, dec(600).Equal(row.MaintenanceTotal))
	assert.True(t, dec(50).Equal(row.Fixed))
	assert.True(t, dec(1150).Equal(row.Total))
	assert.True(t, dec(5).Equal(row.FuelCostPerHour))
	assert.True(t, dec(11.5).Equal(row.CostPerHour))
	assert.True(t, dec(6.5).Equal(row.CostPerHourNoFuel))
}
