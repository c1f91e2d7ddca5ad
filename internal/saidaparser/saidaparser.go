// Package saidaparser builds normalized expenses from the stock issue
// report (SAE127). Each data row is one warehouse withdrawal against a
// machine; the category comes from the material catalog, not from the
// file.
package saidaparser

import (
	"fvieira/frota-csv/internal/dateparse"
	"fvieira/frota-csv/internal/layout"
	"fvieira/frota-csv/internal/models"
	"fvieira/frota-csv/internal/moneyparse"
	"fvieira/frota-csv/internal/registry"
)

// SAE127 column names.
const (
	colFleet        = "DET01-QUEBRA"
	colDate         = "PRGER-DATA"
	colTotal        = "PRGER-TTEN"
	colQuantity     = "PRGER-QTDES"
	colUnitValue    = "PRGER-VREN"
	colMaterialName = "PRMAT-NOME"
	colMaterialCode = "PRMAT-CODI"
	colCompany      = "PRGER-EMPR"
	colEntryRef     = "PRGER-CODI"
	colReceiver     = "PRGER-RECE"
	colWarehouse    = "PRGER-NALM"
)

const minColumns = 5

// supplierLabel is the fixed supplier shown for every stock issue; the
// counterparty is the warehouse, not an external vendor.
const supplierLabel = "Movimentação de Estoque"

// Build converts the data rows below the header into normalized outflow
// expenses. The material code is resolved against the catalog to obtain a
// category; unmatched codes get the uncatalogued sentinel and a warning.
func Build(rows [][]string, header layout.Header, machines *registry.Snapshot, materials *registry.MaterialIndex, warnings *models.ImportWarnings) []models.Expense {
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

		materialCode := fields.Value(row, colMaterialCode)
		category, catalogued := materials.Category(materialCode)
		if !catalogued && materialCode != "" {
			warnings.AddUnknownMaterial(materialCode)
		}

		materialName := fields.Value(row, colMaterialName)

		expenses = append(expenses, models.Expense{
			Kind:         models.KindOutflow,
			FleetCode:    fleet,
			UnknownFleet: unknownFleet,
			Date:         dateparse.DecodeFixedDate(fields.Value(row, colDate)),
			Amount:       moneyparse.DecodeScaledAmount(fields.Value(row, colTotal), layout.SaidaAmountDivisor),
			Quantity:     moneyparse.DecodeScaledAmount(fields.Value(row, colQuantity), layout.SaidaQuantityDivisor),
			UnitValue:    moneyparse.DecodeScaledAmount(fields.Value(row, colUnitValue), layout.SaidaAmountDivisor),
			Category:     category,
			Description:  materialName,
			MaterialName: materialName,
			MaterialCode: materialCode,
			Supplier:     supplierLabel,
			Company:      fields.Value(row, colCompany),
			EntryRef:     fields.Value(row, colEntryRef),
			Receiver:     fields.Value(row, colReceiver),
			Warehouse:    fields.Value(row, colWarehouse),
		})
	}

	return expenses
}
