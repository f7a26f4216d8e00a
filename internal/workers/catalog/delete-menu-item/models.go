// internal/workers/catalog/delete-menu-item/models.go
package deletemenuitem

type Input struct {
	Role       string `json:"role"`
	MenuItemID string `json:"menuItemId"`
}

type Output struct {
	MenuItemID string `json:"menuItemId"`
	Deleted    bool   `json:"deleted"`
	// SeasonalMenuID is the menu the item was removed from, if any.
	SeasonalMenuID string `json:"seasonalMenuId,omitempty"`
}
