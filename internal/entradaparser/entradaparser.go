// Package entradaparser builds normalized expenses from the inbound
// invoice report (SAE134). Each data row is one invoice line against a
// cost center; the cost center column carries the fleet code.
package entradaparser

import (
	"strings"

	"fvieira/frota-csv/internal/dateparse"
	"fvieira/frota-csv/internal/layout"
	"fvieira/frota-csv/internal/models"
	"fvieira/frota-csv/internal/moneyparse"
	"fvieira/frota-csv/internal/registry"
)

// SAE134 column names.
const (
	colFleet        = "PRGER-CCUS"
	colPostingDate  = "PRGER-LCTO"
	colIssueDate    = "PRGER-EMIS"
	colDescription  = "PR-SORT"
	colAmount       = "PRENT-TOTA"
	colSupplier     = "PRGER-NFOR"
	colSupplierCode = "PRGPR-FORN"
	colClass        = "PRGER-NPLC"
	colCompany      = "PREMP-CODI"
	colFiscal       = "PRGER-NFIS"
	colInvoice      = "PRGER-NOTA"
	colSpecies      = "PRENT-ESPE"
	colPurchaseRef  = "PRENT-ORDE"
)

// minColumns is the threshold below which a row is a page footer or
// continuation fragment, not a record.
const minColumns = 5

// descriptionFallback replaces blank or all-zero description fields. The
// source system emits zero-padded filler when no service text was typed.
const descriptionFallback = "Lançamento SAF"

// knownClasses is the allow-list of invoice class labels seen in
// production data. A label outside the list still imports; it only feeds
// the unrecognized-class warning so the operator can extend the list.
var knownClasses = []string{
	"MANUT. PREVENTIVA (FROTA / MAQ)",
	"MANUT. CORRETIVA (FROTA / MAQ)",
	"OLEO DIESEL",
	"COMBUSTIVEIS E LUBRIFICANTES",
	"PECAS E ACESSORIOS",
	"SERVICOS DE TERCEIROS",
	"PNEUS E CAMARAS",
	"FRETES E CARRETOS",
	"RASTREADOR",
}

func classKnown(label string) bool {
	want := strings.ToUpper(strings.TrimSpace(label))
	for _, k := range knownClasses {
		if want == k {
			return true
		}
	}
	return false
}

// Build converts the data rows below the header into normalized inflow
// expenses. Rows with too few columns or a blank fleet code are dropped;
// every other decode failure defaults instead of erroring.
func Build(rows [][]string, header layout.Header, machines *registry.Snapshot, warnings *models.ImportWarnings) []models.Expense {
	fields := header.Fields()
	expenses := make([]models.Expense, 0, len(rows))

	for _, row := range rows[header.RowIndex+1:] {
		if len(row) < minColumns {
			continue
		}

		fleet := models.NormalizeFleetCode(fields.Value(row, colFleet))
		if fleet == "" {
			continue
		}
		unknownFleet := !machines.HasFleet(fleet)
		if unknownFleet {
			warnings.AddUnknownFleet(fleet)
		}

		rawDate := fields.Value(row, colPostingDate)
		rawIssue := fields.Value(row, colIssueDate)
		if rawDate == "" {
			rawDate = rawIssue
		}

		description := fields.Value(row, colDescription)
		if description == "" || allZeros(description) {
			description = descriptionFallback
		}

		class := fields.Value(row, colClass)
		if class != "" && !classKnown(class) {
			warnings.AddUnknownClass(class)
		}

		expenses = append(expenses, models.Expense{
			Kind:         models.KindInflow,
			FleetCode:    fleet,
			UnknownFleet: unknownFleet,
			Date:         dateparse.DecodeFixedDate(rawDate),
			IssueDate:    dateparse.DecodeFixedDate(rawIssue),
			Amount:       moneyparse.DecodeScaledAmount(fields.Value(row, colAmount), layout.EntradaAmountDivisor),
			Category:     class,
			Description:  description,
			Supplier:     fields.Value(row, colSupplier),
			SupplierCode: fields.Value(row, colSupplierCode),
			Company:      fields.Value(row, colCompany),
			FiscalRef:    fields.Value(row, colFiscal),
			Invoice:      fields.Value(row, colInvoice),
			Species:      fields.Value(row, colSpecies),
			PurchaseRef:  fields.Value(row, colPurchaseRef),
		})
	}

	return expenses
}

func allZeros(s string) bool {
	for _, r := range s {
		if r != '0' {
			return false
		}
	}
	return len(s) > 0
}
