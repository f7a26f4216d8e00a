// internal/workers/catalog/update-menu-item/models.go
package updatemenuitem

import "menu-workers/internal/models"

// Input carries a partial update. Omitted fields keep their stored value.
type Input struct {
	Role        string   `json:"role"`
	MenuItemID  string   `json:"menuItemId"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	BasePrice   *float64 `json:"basePrice,omitempty"`
	IsAvailable *bool    `json:"isAvailable,omitempty"`
}

type Output struct {
	MenuItem      models.MenuItem `json:"menuItem"`
	ChangedFields []string        `json:"changedFields"`
}
