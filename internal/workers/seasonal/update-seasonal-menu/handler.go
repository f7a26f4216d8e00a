// internal/workers/seasonal/update-seasonal-menu/handler.go
package updateseasonalmenu

import (
	"context"

	"menu-workers/internal/common/camunda"
	"menu-workers/internal/common/errors"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/menu/roles"
	"menu-workers/internal/menu/seasonal"
	"menu-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "update-seasonal-menu"
)

type Handler struct {
	config  *Config
	manager *seasonal.Manager
	runner  *camunda.Runner
	logger  logger.Logger
}

func NewHandler(config *Config, manager *seasonal.Manager, sup camunda.Support) *Handler {
	runner := sup.Runner(TaskType, config.Timeout)
	return &Handler{
		config:  config,
		manager: manager,
		runner:  runner,
		logger:  runner.Logger(),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(h.runner, client, job, h.Execute)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := roles.Require(models.NormalizeRole(input.Role), roles.ManageSeasonal); err != nil {
		return nil, err
	}
	if input.SeasonalMenuID == "" {
		return nil, errors.NewInvalidInputError("seasonalMenuId is required")
	}

	menu, err := h.manager.UpdateMenu(ctx, input.SeasonalMenuID, seasonal.MenuPatch{
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		IsActive:    input.IsActive,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("seasonal menu updated", map[string]interface{}{
		"seasonalMenuId": menu.ID,
		"isActive":       menu.IsActive,
	})
	return &Output{SeasonalMenu: *menu}, nil
}
