// internal/workers/seasonal/assign-seasonal-item/handler.go
package assignseasonalitem

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
	TaskType = "assign-seasonal-item"
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
	if input.MenuItemID == "" {
		return nil, errors.NewInvalidInputError("menuItemId is required")
	}

	var (
		item   *models.MenuItem
		action string
		err    error
	)
	if input.SeasonalMenuID == "" {
		item, err = h.manager.UnassignItem(ctx, input.MenuItemID)
		action = ActionUnassigned
	} else {
		item, err = h.manager.AssignItem(ctx, input.MenuItemID, input.SeasonalMenuID)
		action = ActionAssigned
	}
	if err != nil {
		return nil, err
	}

	h.logger.Info("seasonal item "+action, map[string]interface{}{
		"menuItemId":     item.ID,
		"seasonalMenuId": item.SeasonalMenuID,
	})
	return &Output{MenuItem: *item, Action: action}, nil
}
