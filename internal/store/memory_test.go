package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fvieira/frota-csv/internal/models"
)

func TestMemoryMachinesCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	machines := s.Machines()

	id, err := machines.Create(ctx, models.Machine{FleetCode: "2260", Name: "TRATOR"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	list, err := machines.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	updated := list[0]
	updated.Name = "TRATOR VALTRA"
	require.NoError(t, machines.Update(ctx, updated))

	list, _ = machines.List(ctx)
	assert.Equal(t, "TRATOR VALTRA", list[0].Name)

	require.NoError(t, machines.Delete(ctx, id))
	list, _ = machines.List(ctx)
	assert.Empty(t, list)

	assert.Error(t, machines.Delete(ctx, id))
}

func TestMemoryExpensesBatchAndPurge(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	expenses := s.Expenses()

	batch := []models.Expense{
		{Kind: models.KindInflow, FleetCode: "2260"},
		{Kind: models.KindOutflow, FleetCode: "310"},
	}
	require.NoError(t, expenses.CreateBatch(ctx, batch))

	list, err := expenses.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.NotEmpty(t, list[0].ID)
	assert.False(t, list[0].CreatedAt.IsZero())

	require.NoError(t, expenses.DeleteAll(ctx))
	list, _ = expenses.List(ctx)
	assert.Empty(t, list)
}

func TestMemoryExpensesFailBatchAfter(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.FailBatchAfter = 1
	expenses := s.Expenses()

	require.NoError(t, expenses.CreateBatch(ctx, []models.Expense{{FleetCode: "1"}}))
	assert.Error(t, expenses.CreateBatch(ctx, []models.Expense{{FleetCode: "2"}}))

	list, _ := expenses.List(ctx)
	assert.Len(t, list, 1)
}

func TestMemoryWatch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	signals, err := s.Machines().Watch(ctx)
	require.NoError(t, err)

	_, err = s.Machines().Create(ctx, models.Machine{FleetCode: "1"})
	require.NoError(t, err)

	select {
	case <-signals:
	default:
		t.Fatal("expected a change signal")
	}
}

func TestMemoryMaterialsUpsert(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	materials := s.Materials()

	require.NoError(t, materials.BulkImport(ctx, []models.MaterialCatalogEntry{
		{Code: "123", Category: "FILTROS"},
		{Code: "77", Category: "COMBUSTIVEL"},
	}))
	require.NoError(t, materials.Upsert(ctx, models.MaterialCatalogEntry{Code: "123", Category: "LUBRIFICANTES"}))

	list, err := materials.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, entry := range list {
		if entry.Code == "123" {
			assert.Equal(t, "LUBRIFICANTES", entry.Category)
		}
	}
}
