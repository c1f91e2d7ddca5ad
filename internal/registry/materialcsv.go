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

// materialCSVRow mirrors one line of the material catalog spreadsheet
// export.
type materialCSVRow struct {
	Code        string `csv:"codigo"`
	Description string `csv:"descricao"`
	Category    string `csv:"categoria"`
}

// LoadMaterialsCSV reads a material catalog CSV (semicolon-delimited, one
// header row). Rows with a blank code are skipped.
func LoadMaterialsCSV(filePath string) ([]models.MaterialCatalogEntry, error) {
	log.Info("Loading material catalog CSV", logging.Field{Key: "file", Value: filePath})

	file, err := os.Open(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to open material catalog CSV")
		return nil, fmt.Errorf("error opening material CSV: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Failed to close material catalog CSV")
		}
	}()

	return ReadMaterialsCSV(file, filePath)
}

// ReadMaterialsCSV parses material catalog CSV content from r.
func ReadMaterialsCSV(r io.Reader, filePath string) ([]models.MaterialCatalogEntry, error) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		reader := csv.NewReader(in)
		reader.Comma = ';'
		reader.TrimLeadingSpace = true
		return reader
	})
	defer gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return csv.NewReader(in)
	})

	var rows []*materialCSVRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		log.WithError(err).Error("Failed to parse material catalog CSV")
		return nil, fmt.Errorf("error parsing material CSV: %w", err)
	}

	entries := make([]models.MaterialCatalogEntry, 0, len(rows))
	for _, row := range rows {
		code := strings.TrimSpace(row.Code)
		if code == "" {
			continue
		}
		category := strings.TrimSpace(row.Category)
		if category == "" {
			category = models.CategoryUncatalogued
		}
		entries = append(entries, models.MaterialCatalogEntry{
			Code:        code,
			Description: strings.TrimSpace(row.Description),
			Category:    category,
		})
	}

	if len(entries) == 0 {
		return nil, &parsererror.EmptyImportError{FilePath: filePath, Layout: "catalogo de materiais"}
	}

	log.Info("Material catalog CSV loaded", logging.Field{Key: "materials", Value: len(entries)})
	return entries, nil
}
