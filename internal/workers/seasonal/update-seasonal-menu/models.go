// internal/workers/seasonal/update-seasonal-menu/models.go
package updateseasonalmenu

import "menu-workers/internal/models"

// Input carries a partial update. Item membership is changed through
// assign-seasonal-item, not here.
type Input struct {
	Role           string  `json:"role"`
	SeasonalMenuID string  `json:"seasonalMenuId"`
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	StartDate      *string `json:"startDate,omitempty"`
	EndDate        *string `json:"endDate,omitempty"`
	StartTime      *string `json:"startTime,omitempty"`
	EndTime        *string `json:"endTime,omitempty"`
	IsActive       *bool   `json:"isActive,omitempty"`
}

type Output struct {
	SeasonalMenu models.SeasonalMenu `json:"seasonalMenu"`
}
