// Package catalog stores menu items and seasonal menus.
package catalog

import (
	"context"

	"menu-workers/internal/models"
)

// Store is the catalog and seasonal-menu store. ListSeasonalMenus returns
// menus in insertion order; that order decides which overlapping menu wins.
//
// Item ownership lives on MenuItem.SeasonalMenuID. SeasonalMenu.ItemIDs is the
// display order of a menu's items and is kept in step by the seasonal package.
type Store interface {
	ListItems(ctx context.Context) ([]models.MenuItem, error)
	GetItem(ctx context.Context, id string) (*models.MenuItem, error)
	CreateItem(ctx context.Context, item models.MenuItem) error
	UpdateItem(ctx context.Context, item models.MenuItem) error
	DeleteItem(ctx context.Context, id string) error

	ListSeasonalMenus(ctx context.Context) ([]models.SeasonalMenu, error)
	GetSeasonalMenu(ctx context.Context, id string) (*models.SeasonalMenu, error)
	CreateSeasonalMenu(ctx context.Context, menu models.SeasonalMenu) error
	UpdateSeasonalMenu(ctx context.Context, menu models.SeasonalMenu) error
	DeleteSeasonalMenu(ctx context.Context, id string) error

	// DetachItems clears SeasonalMenuID on every item owned by menuID and
	// returns how many items changed.
	DetachItems(ctx context.Context, menuID string) (int, error)
	// SetItemMenu sets an item's owner. An empty menuID returns it to the base catalog.
	SetItemMenu(ctx context.Context, itemID, menuID string) error
}

// Transactor is implemented by stores that can run several calls atomically.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(Store) error) error
}

const (
	KindItem         = "menuItem"
	KindSeasonalMenu = "seasonalMenu"
)
