// internal/workers/menu/list-active-seasonal-menus/models.go
package listactiveseasonalmenus

type Input struct {
	Role string `json:"role"`
	Now  string `json:"now"`
}

type Output struct {
	Menus                 []ActiveMenu `json:"menus"`
	CurrentSeasonalMenuID string       `json:"currentSeasonalMenuId,omitempty"`
	EvaluatedAt           string       `json:"evaluatedAt"`
}

// ActiveMenu is a seasonal menu in effect at the evaluated instant. IsCurrent
// marks the one whose items the catalog shows.
type ActiveMenu struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	ItemIDs   []string `json:"itemIds"`
	IsCurrent bool     `json:"isCurrent"`
}
