// internal/workers/seasonal/delete-seasonal-menu/models.go
package deleteseasonalmenu

type Input struct {
	Role           string `json:"role"`
	SeasonalMenuID string `json:"seasonalMenuId"`
}

type Output struct {
	SeasonalMenuID string `json:"seasonalMenuId"`
	Deleted        bool   `json:"deleted"`
	// DetachedItems is how many items were moved back to the base catalog.
	DetachedItems int  `json:"detachedItems"`
	Transactional bool `json:"transactional"`
}
