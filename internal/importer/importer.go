// Package importer orchestrates a file import: read, tokenize, detect the
// layout, run the matching record builder into a preview, then commit the
// preview in sequential batches. Parsing never persists anything; a
// preview that is discarded leaves no trace.
package importer

import (
	"context"
	"os"
	"time"

	"fvieira/frota-csv/internal/entradaparser"
	"fvieira/frota-csv/internal/layout"
	"fvieira/frota-csv/internal/logging"
	"fvieira/frota-csv/internal/models"
	"fvieira/frota-csv/internal/parsererror"
	"fvieira/frota-csv/internal/registry"
	"fvieira/frota-csv/internal/saidaparser"
	"fvieira/frota-csv/internal/store"
	"fvieira/frota-csv/internal/tokenizer"
	"fvieira/frota-csv/internal/vendorparser"
)

const (
	// DefaultBatchSize bounds one persistence write group.
	DefaultBatchSize = 100
	// DefaultBatchPause spaces sequential batch commits so a large import
	// does not saturate the backend.
	DefaultBatchPause = 50 * time.Millisecond
)

// Options tune the commit phase. Zero values use the defaults.
type Options struct {
	BatchSize  int
	BatchPause time.Duration
}

// Orchestrator drives imports against an expense store.
type Orchestrator struct {
	expenses   store.ExpenseStore
	log        logging.Logger
	batchSize  int
	batchPause time.Duration
}

// New builds an orchestrator writing to expenses.
func New(expenses store.ExpenseStore, logger logging.Logger, opts Options) *Orchestrator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	pause := opts.BatchPause
	if pause < 0 {
		pause = 0
	} else if pause == 0 {
		pause = DefaultBatchPause
	}
	return &Orchestrator{
		expenses:   expenses,
		log:        logger,
		batchSize:  batchSize,
		batchPause: pause,
	}
}

// PreviewFile reads filePath and parses it into a preview.
func (o *Orchestrator) PreviewFile(filePath string, machines *registry.Snapshot, materials *registry.MaterialIndex) (*models.ImportPreview, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		o.log.WithError(err).Error("Failed to read import file")
		return nil, err
	}
	return o.Preview(string(data), filePath, machines, materials)
}

// Preview tokenizes text, detects its layout and runs the matching record
// builder. An unrecognized layout or a zero-record parse is an error; the
// caller never receives an empty preview.
func (o *Orchestrator) Preview(text, filePath string, machines *registry.Snapshot, materials *registry.MaterialIndex) (*models.ImportPreview, error) {
	delim := tokenizer.DetectDelimiter(text)
	rows := tokenizer.Tokenize(text, delim)
	if len(rows) == 0 {
		err := &parsererror.ValidationError{FilePath: filePath, Reason: "file is empty"}
		o.log.WithError(err).Error("Import rejected")
		return nil, err
	}

	header, err := layout.Detect(rows, filePath)
	if err != nil {
		o.log.WithError(err).Error("Layout detection failed")
		return nil, err
	}
	o.log.Info("Layout detected",
		logging.Field{Key: "file", Value: filePath},
		logging.Field{Key: "layout", Value: string(header.Layout)},
		logging.Field{Key: "headerRow", Value: header.RowIndex})

	warnings := models.NewImportWarnings()
	var records []models.Expense
	var kind models.ExpenseKind

	switch {
	case header.Layout == layout.Entrada:
		kind = models.KindInflow
		records = entradaparser.Build(rows, header, machines, warnings)
	case header.Layout == layout.Saida:
		kind = models.KindOutflow
		records = saidaparser.Build(rows, header, machines, materials, warnings)
	case vendorparser.Handles(header.Layout):
		kind = models.KindInflow
		records = vendorparser.Build(rows, header, machines, warnings)
	}

	if len(records) == 0 {
		err := &parsererror.EmptyImportError{FilePath: filePath, Layout: string(header.Layout)}
		o.log.WithError(err).Error("Import produced no records")
		return nil, err
	}

	o.log.Info("Preview ready",
		logging.Field{Key: "records", Value: len(records)},
		logging.Field{Key: "unknownFleets", Value: len(warnings.UnknownFleets())})

	return &models.ImportPreview{
		Kind:     kind,
		Layout:   string(header.Layout),
		Records:  records,
		Warnings: warnings,
	}, nil
}

// Commit persists a preview in sequential batches with a pause between
// commits. A failed batch aborts the remainder; already-committed batches
// stay persisted and the returned BatchWriteError carries their count.
func (o *Orchestrator) Commit(ctx context.Context, preview *models.ImportPreview) (int, error) {
	committed := 0
	batchNum := 0

	for start := 0; start < len(preview.Records); start += o.batchSize {
		end := start + o.batchSize
		if end > len(preview.Records) {
			end = len(preview.Records)
		}
		batch := preview.Records[start:end]
		batchNum++

		if batchNum > 1 {
			select {
			case <-time.After(o.batchPause):
			case <-ctx.Done():
				return committed, &parsererror.BatchWriteError{Committed: committed, Batch: batchNum, Err: ctx.Err()}
			}
		}

		if err := o.expenses.CreateBatch(ctx, batch); err != nil {
			o.log.WithError(err).Error("Batch commit failed",
				logging.Field{Key: "batch", Value: batchNum},
				logging.Field{Key: "committed", Value: committed})
			return committed, &parsererror.BatchWriteError{Committed: committed, Batch: batchNum, Err: err}
		}
		committed += len(batch)
		o.log.Debug("Batch committed",
			logging.Field{Key: "batch", Value: batchNum},
			logging.Field{Key: "records", Value: len(batch)})
	}

	o.log.Info("Import committed", logging.Field{Key: "records", Value: committed})
	return committed, nil
}
