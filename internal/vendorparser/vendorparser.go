// Package vendorparser builds normalized expenses from the human-edited
// worksheet exports: the tire supplier sheet, the tracker monthly-fee
// sheet and the workshop labor split. Unlike the SAE reports these carry
// formatted currency ("R$ 1.234,56") and a fixed category and supplier
// per sheet, so no per-row classification is needed.
package vendorparser

import (
	"fvieira/frota-csv/internal/dateparse"
	"fvieira/frota-csv/internal/layout"
	"fvieira/frota-csv/internal/models"
	"fvieira/frota-csv/internal/moneyparse"
	"fvieira/frota-csv/internal/registry"
)

// Shared worksheet column names.
const (
	colFleet       = "FROTA"
	colDate        = "DATA"
	colDescription = "DESCRICAO"
)

const minColumns = 2

// sheetRule fixes the value column, category and supplier of one
// worksheet layout.
type sheetRule struct {
	valueColumn string
	category    string
	supplier    string
}

var sheetRules = map[layout.Layout]sheetRule{
	layout.TireVendor: {
		valueColumn: "VALOR",
		category:    "PNEUS",
		supplier:    "Borracharia Conveniada",
	},
	layout.TrackerSubscription: {
		valueColumn: "MENSALIDADE RASTREADOR",
		category:    "MENSALIDADE RASTREADOR",
		supplier:    "Operadora de Rastreamento",
	},
	layout.InternalLabor: {
		valueColumn: "VALOR M.O.",
		category:    "MAO DE OBRA INTERNA",
		supplier:    "Oficina Interna",
	},
}

// Handles reports whether l is one of the worksheet layouts this builder
// covers.
func Handles(l layout.Layout) bool {
	_, ok := sheetRules[l]
	return ok
}

// Build converts worksheet rows into normalized inflow expenses with the
// layout's fixed category and supplier. Rows missing a fleet code are
// dropped; a missing description falls back to the category label.
func Build(rows [][]string, header layout.Header, machines *registry.Snapshot, warnings *models.ImportWarnings) []models.Expense {
	rule, ok := sheetRules[header.Layout]
	if !ok {
		return nil
	}

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

		description := fields.Value(row, colDescription)
		if description == "" {
			description = rule.category
		}

		expenses = append(expenses, models.Expense{
			Kind:         models.KindInflow,
			FleetCode:    fleet,
			UnknownFleet: unknownFleet,
			Date:         dateparse.DecodeFixedDate(fields.Value(row, colDate)),
			Amount:       moneyparse.DecodeMonetaryString(fields.Value(row, rule.valueColumn)),
			Category:     rule.category,
			Description:  description,
			Supplier:     rule.supplier,
		})
	}

	return expenses
}
