// internal/workers/stock/set-stock/models.go
package setstock

import "menu-workers/internal/models"

// Input sets either an explicit quantity or the in-stock state, not both.
type Input struct {
	Role       string `json:"role"`
	BranchID   string `json:"branchId"`
	MenuItemID string `json:"menuItemId"`
	Quantity   *int   `json:"quantity,omitempty"`
	InStock    *bool  `json:"inStock,omitempty"`
}

type Output struct {
	Stock   models.StockRecord `json:"stock"`
	InStock bool               `json:"inStock"`
}
