// internal/workers/catalog/create-menu-item/models.go
package createmenuitem

import "menu-workers/internal/models"

type Input struct {
	Role        string   `json:"role"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	BasePrice   *float64 `json:"basePrice,omitempty"`
	// IsAvailable defaults to true when omitted.
	IsAvailable    *bool  `json:"isAvailable,omitempty"`
	SeasonalMenuID string `json:"seasonalMenuId,omitempty"`
}

type Output struct {
	MenuItem models.MenuItem `json:"menuItem"`
}
