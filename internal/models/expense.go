package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseKind distinguishes invoice-based purchases from stock consumption.
// The persisted values keep the legacy Portuguese labels so documents
// written by earlier tooling remain readable.
type ExpenseKind string

const (
	KindInflow  ExpenseKind = "entrada"
	KindOutflow ExpenseKind = "saida"
)

// Expense is the normalized record every import layout converges to.
// Date is an ISO-8601 day (YYYY-MM-DD) or empty; records without a date
// are excluded from all period-scoped aggregates but are still persisted.
// Amount is always non-negative after decoding; sign never encodes
// direction, Kind does.
type Expense struct {
	ID           string          `bson:"_id,omitempty" json:"id"`
	Kind         ExpenseKind     `bson:"tipo" json:"tipo"`
	FleetCode    string          `bson:"frota" json:"frota"`
	Date         string          `bson:"data" json:"data"`
	Amount       decimal.Decimal `bson:"valor" json:"valor"`
	Category     string          `bson:"classe" json:"classe"`
	Description  string          `bson:"descricao" json:"descricao"`
	Quantity     decimal.Decimal `bson:"quantidade,omitempty" json:"quantidade"`
	Meter        decimal.Decimal `bson:"horimetro,omitempty" json:"horimetro"`
	HasMeter     bool            `bson:"temHorimetro,omitempty" json:"temHorimetro"`
	UnknownFleet bool            `bson:"frotaDesconhecida,omitempty" json:"frotaDesconhecida"`

	// Inflow extension fields (display only).
	IssueDate    string `bson:"dataEmissao,omitempty" json:"dataEmissao"`
	Supplier     string `bson:"fornecedorNome,omitempty" json:"fornecedorNome"`
	SupplierCode string `bson:"fornecedorCod,omitempty" json:"fornecedorCod"`
	Invoice      string `bson:"notaFiscal,omitempty" json:"notaFiscal"`
	FiscalRef    string `bson:"fiscal,omitempty" json:"fiscal"`
	Species      string `bson:"especie,omitempty" json:"especie"`
	PurchaseRef  string `bson:"ordemCompra,omitempty" json:"ordemCompra"`
	Company      string `bson:"empresa,omitempty" json:"empresa"`

	// Outflow extension fields (display only).
	MaterialCode string          `bson:"codMateria,omitempty" json:"codMateria"`
	MaterialName string          `bson:"materia,omitempty" json:"materia"`
	EntryRef     string          `bson:"codLancamento,omitempty" json:"codLancamento"`
	UnitValue    decimal.Decimal `bson:"valorEntrada,omitempty" json:"valorEntrada"`
	Receiver     string          `bson:"recebedor,omitempty" json:"recebedor"`
	Warehouse    string          `bson:"almoxarifado,omitempty" json:"almoxarifado"`

	CreatedAt time.Time `bson:"criadoEm,omitempty" json:"criadoEm"`
}

// Day parses the expense date. ok is false when the record carries no
// usable date and must stay out of period-scoped aggregates.
func (e Expense) Day() (time.Time, bool) {
	if e.Date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
