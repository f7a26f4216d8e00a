package models

import "time"

// MenuItem is a catalog entry shared by every branch.
// An empty SeasonalMenuID means the item belongs to the base catalog.
type MenuItem struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Price          float64   `json:"price"`
	BasePrice      float64   `json:"basePrice"`
	Category       string    `json:"category"`
	IsAvailable    bool      `json:"isAvailable"`
	SeasonalMenuID string    `json:"seasonalMenuId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// InBaseCatalog reports whether the item has no seasonal owner.
func (m MenuItem) InBaseCatalog() bool {
	return m.SeasonalMenuID == ""
}

// SeasonalMenu is a time-boxed override of the catalog.
// Dates are YYYY-MM-DD and times are HH:mm; StartTime > EndTime wraps past midnight.
type SeasonalMenu struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	IsActive    bool      `json:"isActive"`
	ItemIDs     []string  `json:"itemIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasItem reports whether itemID is in the menu's ordered item list.
func (s SeasonalMenu) HasItem(itemID string) bool {
	for _, id := range s.ItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}

// StockRecord is the per-branch quantity of one item.
type StockRecord struct {
	BranchID    string    `json:"branchId"`
	MenuItemID  string    `json:"menuItemId"`
	Quantity    int       `json:"quantity"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// InStock is derived from Quantity and never stored on its own.
func (r StockRecord) InStock() bool {
	return r.Quantity > 0
}
