// internal/workers/stock/list-branch-stock/models.go
package listbranchstock

type Input struct {
	Role     string `json:"role"`
	BranchID string `json:"branchId"`
}

// Output lists only explicitly recorded items; anything absent is in stock.
type Output struct {
	BranchID   string       `json:"branchId"`
	Records    []StockEntry `json:"records"`
	OutOfStock []string     `json:"outOfStock"`
}

type StockEntry struct {
	MenuItemID  string `json:"menuItemId"`
	Quantity    int    `json:"quantity"`
	InStock     bool   `json:"inStock"`
	LastUpdated string `json:"lastUpdated"`
}
