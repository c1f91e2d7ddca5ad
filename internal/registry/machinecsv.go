package registry

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"fvieira/frota-csv/internal/logging"
	"fvieira/frota-csv/internal/models"
	"fvieira/frota-csv/internal/parsererror"
)

var log = logging.GetLogger()

// SetLogger sets the logger used by the registry CSV loader.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// machineCSVRow mirrors one line of the fleet master spreadsheet export.
type machineCSVRow struct {
	FleetCode string `csv:"frota"`
	Name      string `csv:"maquina"`
	Type      string `csv:"tipo"`
	Location  string `csv:"localizacao"`
	Segment   string `csv:"segmento"`
}

// LoadMachinesCSV reads a fleet master CSV (semicolon-delimited, one header
// row) into machines. Rows with a blank fleet code are skipped.
func LoadMachinesCSV(filePath string) ([]models.Machine, error) {
	log.Info("Loading machine registry CSV", logging.Field{Key: "file", Value: filePath})

	file, err := os.Open(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to open machine registry CSV")
		return nil, fmt.Errorf("error opening machine CSV: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Failed to close machine registry CSV")
		}
	}()

	return ReadMachinesCSV(file, filePath)
}

// ReadMachinesCSV parses fleet master CSV content from r.
func ReadMachinesCSV(r io.Reader, filePath string) ([]models.Machine, error) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		reader := csv.NewReader(in)
		reader.Comma = ';'
		reader.TrimLeadingSpace = true
		return reader
	})
	defer gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return csv.NewReader(in)
	})

	var rows []*machineCSVRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		log.WithError(err).Error("Failed to parse machine registry CSV")
		return nil, fmt.Errorf("error parsing machine CSV: %w", err)
	}

	machines := make([]models.Machine, 0, len(rows))
	for _, row := range rows {
		code := models.NormalizeFleetCode(row.FleetCode)
		if code == "" {
			continue
		}
		machines = append(machines, models.Machine{
			FleetCode: code,
			Name:      strings.TrimSpace(row.Name),
			Type:      strings.TrimSpace(row.Type),
			Location:  strings.TrimSpace(row.Location),
			Segment:   strings.TrimSpace(row.Segment),
		})
	}

	if len(machines) == 0 {
		return nil, &parsererror.EmptyImportError{FilePath: filePath, Layout: "cadastro de frota"}
	}

	log.Info("Machine registry CSV loaded", logging.Field{Key: "machines", Value: len(machines)})
	return machines, nil
}
