// internal/workers/seasonal/assign-seasonal-item/models.go
package assignseasonalitem

import "menu-workers/internal/models"

// Input moves an item into SeasonalMenuID, or back to the base catalog when
// SeasonalMenuID is empty.
type Input struct {
	Role           string `json:"role"`
	MenuItemID     string `json:"menuItemId"`
	SeasonalMenuID string `json:"seasonalMenuId,omitempty"`
}

type Output struct {
	MenuItem models.MenuItem `json:"menuItem"`
	Action   string          `json:"action"`
}

const (
	ActionAssigned   = "assigned"
	ActionUnassigned = "unassigned"
)
