// internal/workers/menu/resolve-menu/models.go
package resolvemenu

import "menu-workers/internal/menu/availability"

type Input struct {
	Role     string `json:"role"`
	BranchID string `json:"branchId"`
	Now      string `json:"now"`
}

// Output is the presented catalog for the caller, stored under the "menu" variable.
type Output struct {
	Menu *availability.PresentedCatalog `json:"menu"`
}
