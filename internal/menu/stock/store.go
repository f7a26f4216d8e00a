package stock

import (
	"context"
	"sync"

	"menu-workers/internal/models"
)

// Store persists stock records keyed by (branchId, menuItemId). A missing
// record is reported with found == false, never as a zero quantity.
type Store interface {
	Get(ctx context.Context, branchID, itemID string) (rec models.StockRecord, found bool, err error)
	GetMany(ctx context.Context, branchID string, itemIDs []string) (map[string]models.StockRecord, error)
	Put(ctx context.Context, rec models.StockRecord) error
	ListBranch(ctx context.Context, branchID string) ([]models.StockRecord, error)
}

type key struct {
	branch string
	item   string
}

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[key]models.StockRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[key]models.StockRecord)}
}

func (m *MemoryStore) Get(_ context.Context, branchID, itemID string) (models.StockRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[key{branchID, itemID}]
	return rec, ok, nil
}

func (m *MemoryStore) GetMany(_ context.Context, branchID string, itemIDs []string) (map[string]models.StockRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]models.StockRecord)
	for _, id := range itemIDs {
		if rec, ok := m.records[key{branchID, id}]; ok {
			out[id] = rec
		}
	}
	return out, nil
}

func (m *MemoryStore) Put(_ context.Context, rec models.StockRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key{rec.BranchID, rec.MenuItemID}] = rec
	return nil
}

func (m *MemoryStore) ListBranch(_ context.Context, branchID string) ([]models.StockRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.StockRecord
	for k, rec := range m.records {
		if k.branch == branchID {
			out = append(out, rec)
		}
	}
	return out, nil
}
