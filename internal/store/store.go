// Package store persists machines, expenses and the material catalog.
// The pipeline only depends on the interfaces here; the Mongo
// implementation backs production and the memory implementation backs
// tests and dry runs.
package store

import (
	"context"

	"fvieira/frota-csv/internal/models"
)

// MachineStore is the machine registry collaborator. The import pipeline
// consumes it read-only through a snapshot; writes come from the registry
// management commands.
type MachineStore interface {
	List(ctx context.Context) ([]models.Machine, error)
	Create(ctx context.Context, machine models.Machine) (string, error)
	Update(ctx context.Context, machine models.Machine) error
	Delete(ctx context.Context, id string) error
	// Watch delivers a signal per registry change until ctx ends.
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// ExpenseStore is the expense persistence collaborator. CreateBatch is
// atomic per backend semantics only; no cross-batch atomicity is assumed.
type ExpenseStore interface {
	List(ctx context.Context) ([]models.Expense, error)
	Create(ctx context.Context, expense models.Expense) (string, error)
	CreateBatch(ctx context.Context, expenses []models.Expense) error
	Update(ctx context.Context, expense models.Expense) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
	// DeleteAll wipes the collection; used by the purge command.
	DeleteAll(ctx context.Context) error
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// MaterialStore is the material catalog collaborator.
type MaterialStore interface {
	List(ctx context.Context) ([]models.MaterialCatalogEntry, error)
	Upsert(ctx context.Context, entry models.MaterialCatalogEntry) error
	BulkImport(ctx context.Context, entries []models.MaterialCatalogEntry) error
}

// Store bundles the three collaborators behind one connection.
type Store interface {
	Machines() MachineStore
	Expenses() ExpenseStore
	Materials() MaterialStore
	Close(ctx context.Context) error
}
