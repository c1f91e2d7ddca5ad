// Package aggregator computes the period-scoped cost report from the full
// expense and machine collections. Aggregate is pure: it takes snapshots
// and a period and returns a Report, so any shell (CLI, export, scheduled
// job) can own period selection and re-run it freely.
package aggregator

import (
	"sort"

	"github.com/shopspring/decimal"

	"fvieira/frota-csv/internal/classifier"
	"fvieira/frota-csv/internal/dateparse"
	"fvieira/frota-csv/internal/models"
	"fvieira/frota-csv/internal/registry"
)

// DefaultSharedCostCenter is the reserved fleet code of the administrative
// cost center whose expenses are spread pro rata across active machines.
const DefaultSharedCostCenter = "9000"

// DefaultTopN bounds the most-expensive-machines ranking.
const DefaultTopN = 5

// Options tune the engine. Zero values fall back to the defaults above.
type Options struct {
	SharedCostCenter string
	TopN             int
}

// Engine classifies and aggregates expenses.
type Engine struct {
	rules  *classifier.Classifier
	shared string
	topN   int
}

// New builds an engine around a classifier.
func New(rules *classifier.Classifier, opts Options) *Engine {
	if rules == nil {
		rules = classifier.New()
	}
	shared := opts.SharedCostCenter
	if shared == "" {
		shared = DefaultSharedCostCenter
	}
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Engine{rules: rules, shared: models.NormalizeFleetCode(shared), topN: topN}
}

// MachineCost is one entry of the most-expensive-machines ranking.
type MachineCost struct {
	FleetCode string
	Name      string
	Total     decimal.Decimal
}

// MachineClosing is one row of the closing-report table.
type MachineClosing struct {
	FleetCode string
	Name      string

	Hours           decimal.Decimal
	Liters          decimal.Decimal
	LitersPerHour   decimal.Decimal
	FuelCostPerHour decimal.Decimal

	Fuel             decimal.Decimal
	Parts            decimal.Decimal
	Labor            decimal.Decimal
	Tires            decimal.Decimal
	MaintenanceTotal decimal.Decimal
	Fixed            decimal.Decimal
	General          decimal.Decimal
	Total            decimal.Decimal

	CostPerHour       decimal.Decimal
	CostPerHourNoFuel decimal.Decimal
}

// Report is the aggregation output for one period.
type Report struct {
	Period dateparse.Period

	Total            decimal.Decimal
	FuelTotal        decimal.Decimal
	MaintenanceTotal decimal.Decimal

	// Composition holds the per-bucket subtotal of the period's raw
	// expenses; buckets with zero value are omitted.
	Composition map[classifier.Bucket]decimal.Decimal

	TotalHours  decimal.Decimal
	CostPerHour decimal.Decimal

	// Trend is the percent change against the previous period; nil when
	// the previous period total is zero (no baseline).
	Trend *decimal.Decimal

	TopMachines []MachineCost
	Closing     []MachineClosing

	// ActiveMachines counts registered machines with at least one
	// non-excluded expense in the period.
	ActiveMachines int

	SegmentComposition map[string]decimal.Decimal

	// RateioTotal is the shared cost-center's period total; RateioShare
	// the even slice added to each active machine.
	RateioTotal decimal.Decimal
	RateioShare decimal.Decimal
}

// machineAcc accumulates one registered machine's period figures.
type machineAcc struct {
	machine models.Machine
	buckets map[classifier.Bucket]decimal.Decimal
	total   decimal.Decimal
	liters  decimal.Decimal
	active  bool
}

// meterReading is one meter observation, ordered by day.
type meterReading struct {
	day   string
	value decimal.Decimal
}

// Aggregate computes the report for period, including the trend against
// the immediately preceding period.
func (e *Engine) Aggregate(expenses []models.Expense, machines []models.Machine, period dateparse.Period) *Report {
	report := e.aggregatePeriod(expenses, machines, period)

	previous := e.aggregatePeriod(expenses, machines, period.Previous())
	if !previous.Total.IsZero() {
		trend := report.Total.Sub(previous.Total).
			Div(previous.Total).
			Mul(decimal.NewFromInt(100))
		report.Trend = &trend
	}
	return report
}

func (e *Engine) aggregatePeriod(expenses []models.Expense, machines []models.Machine, period dateparse.Period) *Report {
	snap := registry.NewSnapshot(machines)

	accs := make(map[string]*machineAcc)
	for _, m := range snap.Machines() {
		if m.EngineOnly() || m.FleetCode == e.shared {
			continue
		}
		accs[m.FleetCode] = &machineAcc{
			machine: m,
			buckets: make(map[classifier.Bucket]decimal.Decimal),
		}
	}

	report := &Report{
		Period:             period,
		Composition:        make(map[classifier.Bucket]decimal.Decimal),
		SegmentComposition: make(map[string]decimal.Decimal),
	}

	readings := make(map[string][]meterReading)

	for _, exp := range expenses {
		fleet := models.NormalizeFleetCode(exp.FleetCode)
		if fleet == "" {
			continue
		}
		if m, ok := snap.ByCode(fleet); ok && m.EngineOnly() {
			continue
		}

		// Meter readings feed the hours computation and are collected
		// over the whole history: the baseline reading usually precedes
		// the period window.
		if exp.HasMeter && exp.Date != "" {
			if _, tracked := accs[fleet]; tracked {
				readings[fleet] = append(readings[fleet], meterReading{day: exp.Date, value: exp.Meter})
			}
		}

		if !period.Contains(exp.Date) {
			continue
		}
		bucket := e.rules.Classify(exp.Category)
		if bucket == classifier.BucketTheftExclusion {
			continue
		}

		report.Total = report.Total.Add(exp.Amount)
		report.Composition[bucket] = report.Composition[bucket].Add(exp.Amount)
		if bucket == classifier.BucketFuel {
			report.FuelTotal = report.FuelTotal.Add(exp.Amount)
		} else {
			report.MaintenanceTotal = report.MaintenanceTotal.Add(exp.Amount)
		}

		if fleet == e.shared {
			report.RateioTotal = report.RateioTotal.Add(exp.Amount)
			continue
		}
		acc, tracked := accs[fleet]
		if !tracked {
			continue
		}
		acc.active = true
		acc.total = acc.total.Add(exp.Amount)
		acc.buckets[bucket] = acc.buckets[bucket].Add(exp.Amount)
		if bucket == classifier.BucketFuel {
			acc.liters = acc.liters.Add(exp.Quantity)
		}
	}

	for bucket, v := range report.Composition {
		if v.IsZero() {
			delete(report.Composition, bucket)
		}
	}

	hours := make(map[string]decimal.Decimal, len(readings))
	for fleet, seq := range readings {
		hours[fleet] = hoursWorked(seq, period)
		report.TotalHours = report.TotalHours.Add(hours[fleet])
	}
	if !report.TotalHours.IsZero() {
		report.CostPerHour = report.Total.Div(report.TotalHours)
	}

	e.applyRateio(report, accs)
	e.rank(report, accs)
	e.closing(report, accs, hours)

	return report
}

// applyRateio spreads the shared cost-center total evenly across machines
// with qualifying activity, into their General bucket. Machines without
// activity receive nothing; with no qualifying machine the total stays
// unspread.
func (e *Engine) applyRateio(report *Report, accs map[string]*machineAcc) {
	if report.RateioTotal.IsZero() {
		return
	}
	var qualifying []*machineAcc
	for _, acc := range accs {
		if acc.active {
			qualifying = append(qualifying, acc)
		}
	}
	if len(qualifying) == 0 {
		return
	}
	share := report.RateioTotal.Div(decimal.NewFromInt(int64(len(qualifying))))
	report.RateioShare = share
	for _, acc := range qualifying {
		acc.buckets[classifier.BucketGeneral] = acc.buckets[classifier.BucketGeneral].Add(share)
		acc.total = acc.total.Add(share)
	}
}

func (e *Engine) rank(report *Report, accs map[string]*machineAcc) {
	for _, acc := range accs {
		if !acc.active {
			continue
		}
		report.ActiveMachines++
		segment := acc.machine.Segment
		if segment == "" {
			segment = "Sem segmento"
		}
		report.SegmentComposition[segment] = report.SegmentComposition[segment].Add(acc.total)
		report.TopMachines = append(report.TopMachines, MachineCost{
			FleetCode: acc.machine.FleetCode,
			Name:      acc.machine.Name,
			Total:     acc.total,
		})
	}
	sort.Slice(report.TopMachines, func(i, j int) bool {
		a, b := report.TopMachines[i], report.TopMachines[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return models.FleetCodeLess(a.FleetCode, b.FleetCode)
	})
	if len(report.TopMachines) > e.topN {
		report.TopMachines = report.TopMachines[:e.topN]
	}
}

func (e *Engine) closing(report *Report, accs map[string]*machineAcc, hours map[string]decimal.Decimal) {
	for fleet, acc := range accs {
		if !acc.active && hours[fleet].IsZero() {
			continue
		}
		row := MachineClosing{
			FleetCode: acc.machine.FleetCode,
			Name:      acc.machine.Name,
			Hours:     hours[fleet],
			Liters:    acc.liters,
			Fuel:      acc.buckets[classifier.BucketFuel],
			Parts:     acc.buckets[classifier.BucketMaintenance],
			Labor:     acc.buckets[classifier.BucketInternalLabor],
			Tires:     acc.buckets[classifier.BucketTires],
			Fixed:     acc.buckets[classifier.BucketFixed],
			General:   acc.buckets[classifier.BucketGeneral],
			Total:     acc.total,
		}
		row.MaintenanceTotal = row.Parts.Add(row.Labor).Add(row.Tires)
		if !row.Hours.IsZero() {
			row.LitersPerHour = row.Liters.Div(row.Hours)
			row.FuelCostPerHour = row.Fuel.Div(row.Hours)
			row.CostPerHour = row.Total.Div(row.Hours)
			row.CostPerHourNoFuel = row.Total.Sub(row.Fuel).Div(row.Hours)
		}
		report.Closing = append(report.Closing, row)
	}
	sort.Slice(report.Closing, func(i, j int) bool {
		return models.FleetCodeLess(report.Closing[i].FleetCode, report.Closing[j].FleetCode)
	})
}

// hoursWorked derives worked hours from a machine's meter readings: the
// last in-period reading minus the reading immediately preceding the
// first in-period one (or the first in-period reading itself when nothing
// precedes it). A meter that goes backwards was reset; any reset inside
// or before the window floors the result to zero instead of producing a
// negative or inflated delta.
func hoursWorked(seq []meterReading, period dateparse.Period) decimal.Decimal {
	sort.SliceStable(seq, func(i, j int) bool { return seq[i].day < seq[j].day })

	first, last := -1, -1
	for i, r := range seq {
		if period.Contains(r.day) {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return decimal.Zero
	}
	if seq[last].value.LessThan(seq[first].value) {
		return decimal.Zero
	}
	baseline := seq[first].value
	if first > 0 {
		baseline = seq[first-1].value
	}
	delta := seq[last].value.Sub(baseline)
	if delta.IsNegative() {
		return decimal.Zero
	}
	return delta
}
