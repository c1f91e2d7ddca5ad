package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fvieira/frota-csv/internal/models"
)

// MemoryStore implements Store in process memory. It backs tests and the
// --dry-run paths of the import commands.
type MemoryStore struct {
	mu        sync.Mutex
	nextID    int
	machines  []models.Machine
	expenses  []models.Expense
	materials []models.MaterialCatalogEntry
	watchers  []chan struct{}

	// FailBatchAfter, when > 0, fails every CreateBatch call after that
	// many successful ones. Tests use it to exercise mid-import failure.
	FailBatchAfter int
	batchCalls     int
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Machines() MachineStore   { return (*memoryMachines)(s) }
func (s *MemoryStore) Expenses() ExpenseStore   { return (*memoryExpenses)(s) }
func (s *MemoryStore) Materials() MaterialStore { return (*memoryMaterials)(s) }

func (s *MemoryStore) Close(context.Context) error { return nil }

func (s *MemoryStore) id() string {
	s.nextID++
	return fmt.Sprintf("mem-%d", s.nextID)
}

func (s *MemoryStore) notify() {
	for _, w := range s.watchers {
		select {
		case w <- struct{}{}:
		default:
		}
	}
}

func (s *MemoryStore) watch(context.Context) (<-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{}, 1)
	s.watchers = append(s.watchers, ch)
	return ch, nil
}

type memoryMachines MemoryStore

func (m *memoryMachines) List(context.Context) ([]models.Machine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Machine(nil), m.machines...), nil
}

func (m *memoryMachines) Create(_ context.Context, machine models.Machine) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if machine.ID == "" {
		machine.ID = (*MemoryStore)(m).id()
	}
	m.machines = append(m.machines, machine)
	(*MemoryStore)(m).notify()
	return machine.ID, nil
}

func (m *memoryMachines) Update(_ context.Context, machine models.Machine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.machines {
		if m.machines[i].ID == machine.ID {
			m.machines[i] = machine
			(*MemoryStore)(m).notify()
			return nil
		}
	}
	return fmt.Errorf("machine %s not found", machine.ID)
}

func (m *memoryMachines) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.machines {
		if m.machines[i].ID == id {
			m.machines = append(m.machines[:i], m.machines[i+1:]...)
			(*MemoryStore)(m).notify()
			return nil
		}
	}
	return fmt.Errorf("machine %s not found", id)
}

func (m *memoryMachines) Watch(ctx context.Context) (<-chan struct{}, error) {
	return (*MemoryStore)(m).watch(ctx)
}

type memoryExpenses MemoryStore

func (e *memoryExpenses) List(context.Context) ([]models.Expense, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Expense(nil), e.expenses...), nil
}

func (e *memoryExpenses) Create(_ context.Context, expense models.Expense) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if expense.ID == "" {
		expense.ID = (*MemoryStore)(e).id()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}
	e.expenses = append(e.expenses, expense)
	(*MemoryStore)(e).notify()
	return expense.ID, nil
}

func (e *memoryExpenses) CreateBatch(ctx context.Context, expenses []models.Expense) error {
	e.mu.Lock()
	failAfter := e.FailBatchAfter
	calls := e.batchCalls
	e.batchCalls++
	e.mu.Unlock()

	if failAfter > 0 && calls >= failAfter {
		return fmt.Errorf("batch write refused")
	}
	for _, exp := range expenses {
		if _, err := e.Create(ctx, exp); err != nil {
			return err
		}
	}
	return nil
}

func (e *memoryExpenses) Update(_ context.Context, expense models.Expense) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.expenses {
		if e.expenses[i].ID == expense.ID {
			e.expenses[i] = expense
			(*MemoryStore)(e).notify()
			return nil
		}
	}
	return fmt.Errorf("expense %s not found", expense.ID)
}

func (e *memoryExpenses) Delete(_ context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.expenses {
		if e.expenses[i].ID == id {
			e.expenses = append(e.expenses[:i], e.expenses[i+1:]...)
			(*MemoryStore)(e).notify()
			return nil
		}
	}
	return fmt.Errorf("expense %s not found", id)
}

func (e *memoryExpenses) DeleteMany(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := e.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (e *memoryExpenses) DeleteAll(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expenses = nil
	(*MemoryStore)(e).notify()
	return nil
}

func (e *memoryExpenses) Watch(ctx context.Context) (<-chan struct{}, error) {
	return (*MemoryStore)(e).watch(ctx)
}

type memoryMaterials MemoryStore

func (m *memoryMaterials) List(context.Context) ([]models.MaterialCatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.MaterialCatalogEntry(nil), m.materials...), nil
}

func (m *memoryMaterials) Upsert(_ context.Context, entry models.MaterialCatalogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.materials {
		if m.materials[i].Code == entry.Code {
			m.materials[i] = entry
			return nil
		}
	}
	m.materials = append(m.materials, entry)
	return nil
}

func (m *memoryMaterials) BulkImport(ctx context.Context, entries []models.MaterialCatalogEntry) error {
	for _, entry := range entries {
		if err := m.Upsert(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
