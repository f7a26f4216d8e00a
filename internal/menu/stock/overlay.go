// Package stock is the per-branch stock overlay. Stock is independent of the
// catalog: a branch that never recorded a quantity for an item has it in stock.
package stock

import (
	"context"
	"sort"
	"strconv"
	"time"

	"menu-workers/internal/common/errors"
	"menu-workers/internal/common/metrics"
	"menu-workers/internal/models"
)

// SentinelQuantity is the quantity reported for pairs with no record, and the
// quantity written when an item is marked in stock.
const SentinelQuantity = 100

// Overlay reads and writes stock through a Store. Writes are plain
// read-modify-write: concurrent Toggle calls on the same key race and the
// last write wins (errors.ErrCodeRaceCondition, never raised).
type Overlay struct {
	store Store
	now   func() time.Time
}

type Option func(*Overlay)

// WithClock overrides the clock used to stamp LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(o *Overlay) { o.now = now }
}

func NewOverlay(store Store, opts ...Option) *Overlay {
	o := &Overlay{store: store, now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func checkKey(branchID, itemID string) error {
	if branchID == "" {
		return errors.NewConfigurationError("branchId is required")
	}
	if itemID == "" {
		return errors.NewInvalidInputError("menuItemId is required")
	}
	return nil
}

// Get returns the stored quantity, or SentinelQuantity when no record exists.
func (o *Overlay) Get(ctx context.Context, branchID, itemID string) (int, error) {
	if err := checkKey(branchID, itemID); err != nil {
		return 0, err
	}
	rec, found, err := o.store.Get(ctx, branchID, itemID)
	if err != nil {
		return 0, err
	}
	if !found {
		return SentinelQuantity, nil
	}
	return rec.Quantity, nil
}

// Set upserts the record with quantity clamped to zero.
func (o *Overlay) Set(ctx context.Context, branchID, itemID string, quantity int) (*models.StockRecord, error) {
	if err := checkKey(branchID, itemID); err != nil {
		return nil, err
	}
	if quantity < 0 {
		quantity = 0
	}
	rec := models.StockRecord{
		BranchID:    branchID,
		MenuItemID:  itemID,
		Quantity:    quantity,
		LastUpdated: o.now().UTC(),
	}
	if err := o.store.Put(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (o *Overlay) SetInStock(ctx context.Context, branchID, itemID string) (*models.StockRecord, error) {
	return o.Set(ctx, branchID, itemID, SentinelQuantity)
}

func (o *Overlay) SetOutOfStock(ctx context.Context, branchID, itemID string) (*models.StockRecord, error) {
	return o.Set(ctx, branchID, itemID, 0)
}

// Toggle flips the derived in-stock state. It is not atomic.
func (o *Overlay) Toggle(ctx context.Context, branchID, itemID string) (*models.StockRecord, error) {
	inStock, err := o.IsInStock(ctx, branchID, itemID)
	if err != nil {
		return nil, err
	}

	var rec *models.StockRecord
	if inStock {
		rec, err = o.SetOutOfStock(ctx, branchID, itemID)
	} else {
		rec, err = o.SetInStock(ctx, branchID, itemID)
	}
	if err != nil {
		return nil, err
	}
	metrics.StockToggles.WithLabelValues(strconv.FormatBool(rec.InStock())).Inc()
	return rec, nil
}

// IsInStock is quantity > 0, and true when no record exists.
func (o *Overlay) IsInStock(ctx context.Context, branchID, itemID string) (bool, error) {
	q, err := o.Get(ctx, branchID, itemID)
	if err != nil {
		return false, err
	}
	return q > 0, nil
}

// Availability resolves IsInStock for many items of one branch in a single
// store round trip.
func (o *Overlay) Availability(ctx context.Context, branchID string, itemIDs []string) (map[string]bool, error) {
	if branchID == "" {
		return nil, errors.NewConfigurationError("branchId is required")
	}
	recs, err := o.store.GetMany(ctx, branchID, itemIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		rec, ok := recs[id]
		out[id] = !ok || rec.InStock()
	}
	return out, nil
}

// ListBranch returns the explicit records of a branch ordered by item id.
func (o *Overlay) ListBranch(ctx context.Context, branchID string) ([]models.StockRecord, error) {
	if branchID == "" {
		return nil, errors.NewConfigurationError("branchId is required")
	}
	recs, err := o.store.ListBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].MenuItemID < recs[j].MenuItemID })
	return recs, nil
}
