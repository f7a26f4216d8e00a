package catalog

import (
	"context"
	"sync"

	"menu-workers/internal/common/errors"
	"menu-workers/internal/models"
)

// MemoryStore is an ordered in-process Store. It does not implement Transactor.
type MemoryStore struct {
	mu        sync.RWMutex
	items     []models.MenuItem
	menus     []models.SeasonalMenu
	itemIndex map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{itemIndex: make(map[string]int)}
}

func cloneMenu(m models.SeasonalMenu) models.SeasonalMenu {
	m.ItemIDs = append([]string(nil), m.ItemIDs...)
	return m
}

func (s *MemoryStore) ListItems(_ context.Context) ([]models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MenuItem(nil), s.items...), nil
}

func (s *MemoryStore) GetItem(_ context.Context, id string) (*models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.itemIndex[id]
	if !ok {
		return nil, errors.NewNotFoundError(KindItem, id)
	}
	item := s.items[i]
	return &item, nil
}

func (s *MemoryStore) CreateItem(_ context.Context, item models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.itemIndex[item.ID]; ok {
		return errors.NewInvalidInputError("menu item " + item.ID + " already exists")
	}
	s.itemIndex[item.ID] = len(s.items)
	s.items = append(s.items, item)
	return nil
}

func (s *MemoryStore) UpdateItem(_ context.Context, item models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.itemIndex[item.ID]
	if !ok {
		return errors.NewNotFoundError(KindItem, item.ID)
	}
	s.items[i] = item
	return nil
}

func (s *MemoryStore) DeleteItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.itemIndex[id]
	if !ok {
		return errors.NewNotFoundError(KindItem, id)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.reindex()
	return nil
}

func (s *MemoryStore) reindex() {
	s.itemIndex = make(map[string]int, len(s.items))
	for i, it := range s.items {
		s.itemIndex[it.ID] = i
	}
}

func (s *MemoryStore) ListSeasonalMenus(_ context.Context) ([]models.SeasonalMenu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SeasonalMenu, len(s.menus))
	for i, m := range s.menus {
		out[i] = cloneMenu(m)
	}
	return out, nil
}

func (s *MemoryStore) menuIndex(id string) int {
	for i := range s.menus {
		if s.menus[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) GetSeasonalMenu(_ context.Context, id string) (*models.SeasonalMenu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.menuIndex(id)
	if i < 0 {
		return nil, errors.NewNotFoundError(KindSeasonalMenu, id)
	}
	m := cloneMenu(s.menus[i])
	return &m, nil
}

func (s *MemoryStore) CreateSeasonalMenu(_ context.Context, menu models.SeasonalMenu) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.menuIndex(menu.ID) >= 0 {
		return errors.NewInvalidInputError("seasonal menu " + menu.ID + " already exists")
	}
	s.menus = append(s.menus, cloneMenu(menu))
	return nil
}

// UpdateSeasonalMenu replaces the record in place; its position is unchanged.
func (s *MemoryStore) UpdateSeasonalMenu(_ context.Context, menu models.SeasonalMenu) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.menuIndex(menu.ID)
	if i < 0 {
		return errors.NewNotFoundError(KindSeasonalMenu, menu.ID)
	}
	s.menus[i] = cloneMenu(menu)
	return nil
}

func (s *MemoryStore) DeleteSeasonalMenu(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.menuIndex(id)
	if i < 0 {
		return errors.NewNotFoundError(KindSeasonalMenu, id)
	}
	s.menus = append(s.menus[:i], s.menus[i+1:]...)
	return nil
}

func (s *MemoryStore) DetachItems(_ context.Context, menuID string) (int, error) {
	if menuID == "" {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for i := range s.items {
		if s.items[i].SeasonalMenuID == menuID {
			s.items[i].SeasonalMenuID = ""
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) SetItemMenu(_ context.Context, itemID, menuID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.itemIndex[itemID]
	if !ok {
		return errors.NewNotFoundError(KindItem, itemID)
	}
	s.items[i].SeasonalMenuID = menuID
	return nil
}
