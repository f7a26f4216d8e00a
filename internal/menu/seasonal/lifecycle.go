package seasonal

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"menu-workers/internal/common/errors"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/menu/catalog"
	"menu-workers/internal/menu/timewindow"
	"menu-workers/internal/models"

	"github.com/google/uuid"
)

// Manager performs seasonal menu mutations that touch more than one record.
type Manager struct {
	store  catalog.Store
	now    func() time.Time
	newID  func() string
	logger logger.Logger
}

func NewManager(store catalog.Store, log logger.Logger) *Manager {
	return &Manager{
		store:  store,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: log,
	}
}

// WithClock overrides the clock used for CreatedAt/UpdatedAt.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// atomically runs fn in a transaction when the store supports one.
func (m *Manager) atomically(ctx context.Context, fn func(catalog.Store) error) error {
	if tx, ok := m.store.(catalog.Transactor); ok {
		return tx.WithinTx(ctx, fn)
	}
	return fn(m.store)
}

func windowOf(menu models.SeasonalMenu) timewindow.Window {
	return timewindow.Window{
		StartDate: menu.StartDate,
		EndDate:   menu.EndDate,
		StartTime: menu.StartTime,
		EndTime:   menu.EndTime,
	}
}

// CreateMenu validates the window and appends the menu to the stored order.
// Item ownership is set separately through AssignItem.
func (m *Manager) CreateMenu(ctx context.Context, menu models.SeasonalMenu) (*models.SeasonalMenu, error) {
	if strings.TrimSpace(menu.Name) == "" {
		return nil, errors.NewInvalidInputError("name is required")
	}
	if err := windowOf(menu).Validate(); err != nil {
		return nil, err
	}
	if menu.ID == "" {
		menu.ID = m.newID()
	}
	now := m.now().UTC()
	menu.CreatedAt, menu.UpdatedAt = now, now
	menu.ItemIDs = []string{}

	if err := m.store.CreateSeasonalMenu(ctx, menu); err != nil {
		return nil, err
	}
	m.logger.Info("seasonal menu created", map[string]interface{}{
		"seasonalMenuId": menu.ID,
		"name":           menu.Name,
	})
	return &menu, nil
}

// MenuPatch holds the fields an update may change. Nil fields are kept.
type MenuPatch struct {
	Name        *string
	Description *string
	StartDate   *string
	EndDate     *string
	StartTime   *string
	EndTime     *string
	IsActive    *bool
}

func (m *Manager) UpdateMenu(ctx context.Context, id string, patch MenuPatch) (*models.SeasonalMenu, error) {
	menu, err := m.store.GetSeasonalMenu(ctx, id)
	if err != nil {
		return nil, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&menu.Name, patch.Name)
	apply(&menu.Description, patch.Description)
	apply(&menu.StartDate, patch.StartDate)
	apply(&menu.EndDate, patch.EndDate)
	apply(&menu.StartTime, patch.StartTime)
	apply(&menu.EndTime, patch.EndTime)
	if patch.IsActive != nil {
		menu.IsActive = *patch.IsActive
	}

	if strings.TrimSpace(menu.Name) == "" {
		return nil, errors.NewInvalidInputError("name is required")
	}
	if err := windowOf(*menu).Validate(); err != nil {
		return nil, err
	}
	menu.UpdatedAt = m.now().UTC()

	if err := m.store.UpdateSeasonalMenu(ctx, *menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// DeleteResult describes a completed deletion.
type DeleteResult struct {
	MenuID        string
	DetachedItems int
	Transactional bool
}

// DeleteMenu detaches every item owned by the menu, then removes the menu.
// With a transactional store both steps commit together. Otherwise they are
// separate writes: if removal fails after detaching, a PARTIAL_DELETION error
// is returned, the items stay in the base catalog and the menu record remains
// until the delete is retried.
func (m *Manager) DeleteMenu(ctx context.Context, id string) (*DeleteResult, error) {
	if tx, ok := m.store.(catalog.Transactor); ok {
		res := &DeleteResult{MenuID: id, Transactional: true}
		err := tx.WithinTx(ctx, func(s catalog.Store) error {
			if _, err := s.GetSeasonalMenu(ctx, id); err != nil {
				return err
			}
			n, err := s.DetachItems(ctx, id)
			if err != nil {
				return err
			}
			res.DetachedItems = n
			return s.DeleteSeasonalMenu(ctx, id)
		})
		if err != nil {
			return nil, err
		}
		m.logDeleted(res)
		return res, nil
	}

	if _, err := m.store.GetSeasonalMenu(ctx, id); err != nil {
		return nil, err
	}

	n, err := m.store.DetachItems(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := m.store.DeleteSeasonalMenu(ctx, id); err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			// removed by a concurrent caller after our lookup
			res := &DeleteResult{MenuID: id, DetachedItems: n}
			m.logDeleted(res)
			return res, nil
		}
		m.logger.Warn("seasonal menu partially deleted", map[string]interface{}{
			"seasonalMenuId": id,
			"detachedItems":  n,
			"error":          err.Error(),
		})
		return nil, errors.NewPartialDeletionError(id, n, err)
	}

	res := &DeleteResult{MenuID: id, DetachedItems: n}
	m.logDeleted(res)
	return res, nil
}

func (m *Manager) logDeleted(res *DeleteResult) {
	m.logger.Info("seasonal menu deleted", map[string]interface{}{
		"seasonalMenuId": res.MenuID,
		"detachedItems":  res.DetachedItems,
		"transactional":  res.Transactional,
	})
}

func removeID(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// dropFromMenu removes itemID from a menu's ordering. A menu that no longer
// exists is ignored.
func dropFromMenu(ctx context.Context, s catalog.Store, menuID, itemID string, now time.Time) error {
	menu, err := s.GetSeasonalMenu(ctx, menuID)
	if stderrors.Is(err, errors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !menu.HasItem(itemID) {
		return nil
	}
	menu.ItemIDs = removeID(menu.ItemIDs, itemID)
	menu.UpdatedAt = now
	return s.UpdateSeasonalMenu(ctx, *menu)
}

// AssignItem moves an item into menuID, removing it from any previous owner.
func (m *Manager) AssignItem(ctx context.Context, itemID, menuID string) (*models.MenuItem, error) {
	var out *models.MenuItem
	now := m.now().UTC()

	err := m.atomically(ctx, func(s catalog.Store) error {
		item, err := s.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		target, err := s.GetSeasonalMenu(ctx, menuID)
		if err != nil {
			return err
		}

		if item.SeasonalMenuID != "" && item.SeasonalMenuID != menuID {
			if err := dropFromMenu(ctx, s, item.SeasonalMenuID, itemID, now); err != nil {
				return err
			}
		}
		if err := s.SetItemMenu(ctx, itemID, menuID); err != nil {
			return err
		}
		if !target.HasItem(itemID) {
			target.ItemIDs = append(target.ItemIDs, itemID)
			target.UpdatedAt = now
			if err := s.UpdateSeasonalMenu(ctx, *target); err != nil {
				return err
			}
		}

		item.SeasonalMenuID = menuID
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UnassignItem returns an item to the base catalog.
func (m *Manager) UnassignItem(ctx context.Context, itemID string) (*models.MenuItem, error) {
	var out *models.MenuItem
	now := m.now().UTC()

	err := m.atomically(ctx, func(s catalog.Store) error {
		item, err := s.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item.SeasonalMenuID == "" {
			out = item
			return nil
		}
		if err := dropFromMenu(ctx, s, item.SeasonalMenuID, itemID, now); err != nil {
			return err
		}
		if err := s.SetItemMenu(ctx, itemID, ""); err != nil {
			return err
		}
		item.SeasonalMenuID = ""
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteItem removes an item and its entry in its owner's ordering.
func (m *Manager) DeleteItem(ctx context.Context, itemID string) (*models.MenuItem, error) {
	var out *models.MenuItem
	now := m.now().UTC()

	err := m.atomically(ctx, func(s catalog.Store) error {
		item, err := s.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item.SeasonalMenuID != "" {
			if err := dropFromMenu(ctx, s, item.SeasonalMenuID, itemID, now); err != nil {
				return err
			}
		}
		if err := s.DeleteItem(ctx, itemID); err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
