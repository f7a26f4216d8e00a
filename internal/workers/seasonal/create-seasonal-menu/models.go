// internal/workers/seasonal/create-seasonal-menu/models.go
package createseasonalmenu

import "menu-workers/internal/models"

type Input struct {
	Role        string `json:"role"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	// IsActive defaults to true when omitted.
	IsActive *bool `json:"isActive,omitempty"`
}

type Output struct {
	SeasonalMenu models.SeasonalMenu `json:"seasonalMenu"`
}
