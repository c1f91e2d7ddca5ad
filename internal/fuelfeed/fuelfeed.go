// Package fuelfeed pulls the external fuel-log webhook and normalizes its
// entries into expenses. The feed is produced by a third party and its
// JSON keys drift between deployments, so every field is resolved through
// a list of known aliases. Entries for fleets absent from the registry
// are silently dropped; unlike file imports, the feed re-runs monthly and
// warning noise about the vendor's own test fleets helps nobody.
package fuelfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"fvieira/frota-csv/internal/dateparse"
	"fvieira/frota-csv/internal/logging"
	"fvieira/frota-csv/internal/models"
	"fvieira/frota-csv/internal/registry"
)

// scaleDivisor corrects the feed's amount, quantity and meter values,
// which arrive multiplied by 100.
const scaleDivisor int64 = 100

// feedCategory is the fixed category of every feed entry; it classifies
// into the fuel bucket.
const feedCategory = "OLEO DIESEL"

const feedSupplier = "Abastecimento Externo"

// Client fetches and normalizes the fuel feed.
type Client struct {
	http *resty.Client
	log  logging.Logger
}

// New builds a feed client for baseURL.
func New(baseURL string, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.GetLogger()
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)
	return &Client{http: httpClient, log: logger}
}

// feedEnvelope tolerates both response shapes: a bare JSON array and an
// object wrapping the array under "data".
type feedEnvelope struct {
	Data []feedEntry `json:"data"`
}

// feedEntry carries every key alias seen across feed deployments.
type feedEntry struct {
	Fleet      string `json:"frota"`
	PlateFleet string `json:"placa_veiculo"`

	Date         string `json:"data"`
	RegisterDate string `json:"data_registro"`

	Quantity json.Number `json:"quantidade"`
	Liters   json.Number `json:"litro_abastecido"`

	Amount     json.Number `json:"valor"`
	FuelPrice  json.Number `json:"preco_combustivel"`
	TotalValue json.Number `json:"valorTotal"`
	Total      json.Number `json:"total"`

	Meter   json.Number `json:"horimetro"`
	KmMeter json.Number `json:"km_horimetro"`
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNumber(values ...json.Number) (decimal.Decimal, bool) {
	for _, v := range values {
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			continue
		}
		return decimal.NewFromFloat(f), true
	}
	return decimal.Zero, false
}

// scale divides a feed value by the fixed ×100 factor.
func scale(v decimal.Decimal) decimal.Decimal {
	return v.Div(decimal.NewFromInt(scaleDivisor))
}

// Fetch pulls the feed for month/year and returns normalized expenses for
// registered fleets only.
func (c *Client) Fetch(ctx context.Context, month, year int, machines *registry.Snapshot) ([]models.Expense, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("month", strconv.Itoa(month)).
		SetQueryParam("year", strconv.Itoa(year)).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("fetching fuel feed: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("fuel feed returned status %d", resp.StatusCode())
	}

	entries, err := decodeFeed(resp.Body())
	if err != nil {
		return nil, err
	}

	expenses := make([]models.Expense, 0, len(entries))
	dropped := 0
	for _, entry := range entries {
		fleet := models.NormalizeFleetCode(firstString(entry.Fleet, entry.PlateFleet))
		if fleet == "" || !machines.HasFleet(fleet) {
			dropped++
			continue
		}

		expense := models.Expense{
			Kind:        models.KindInflow,
			FleetCode:   fleet,
			Date:        dateparse.DecodeFixedDate(firstString(entry.Date, entry.RegisterDate)),
			Category:    feedCategory,
			Description: feedCategory,
			Supplier:    feedSupplier,
		}
		if v, ok := firstNumber(entry.Amount, entry.FuelPrice, entry.TotalValue, entry.Total); ok {
			expense.Amount = scale(v).Abs()
		}
		if v, ok := firstNumber(entry.Quantity, entry.Liters); ok {
			expense.Quantity = scale(v).Abs()
		}
		if v, ok := firstNumber(entry.Meter, entry.KmMeter); ok {
			expense.Meter = scale(v)
			expense.HasMeter = true
		}
		expenses = append(expenses, expense)
	}

	c.log.Info("Fuel feed fetched",
		logging.Field{Key: "month", Value: month},
		logging.Field{Key: "year", Value: year},
		logging.Field{Key: "entries", Value: len(entries)},
		logging.Field{Key: "imported", Value: len(expenses)},
		logging.Field{Key: "dropped", Value: dropped})

	return expenses, nil
}

func decodeFeed(body []byte) ([]feedEntry, error) {
	var entries []feedEntry
	if err := json.Unmarshal(body, &entries); err == nil {
		return entries, nil
	}
	var envelope feedEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding fuel feed: %w", err)
	}
	return envelope.Data, nil
}
