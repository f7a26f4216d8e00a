// internal/workers/stock/toggle-stock/models.go
package togglestock

import "menu-workers/internal/models"

type Input struct {
	Role       string `json:"role"`
	BranchID   string `json:"branchId"`
	MenuItemID string `json:"menuItemId"`
}

type Output struct {
	Stock   models.StockRecord `json:"stock"`
	InStock bool               `json:"inStock"`
}
