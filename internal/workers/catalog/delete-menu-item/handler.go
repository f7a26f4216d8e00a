// internal/workers/catalog/delete-menu-item/handler.go
package deletemenuitem

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
	TaskType = "delete-menu-item"
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
	if err := roles.Require(models.NormalizeRole(input.Role), roles.DeleteItem); err != nil {
		return nil, err
	}
	if input.MenuItemID == "" {
		return nil, errors.NewInvalidInputError("menuItemId is required")
	}

	item, err := h.manager.DeleteItem(ctx, input.MenuItemID)
	if err != nil {
		return nil, err
	}

	h.logger.Info("menu item deleted", map[string]interface{}{
		"menuItemId":     item.ID,
		"seasonalMenuId": item.SeasonalMenuID,
	})
	return &Output{
		MenuItemID:     item.ID,
		Deleted:        true,
		SeasonalMenuID: item.SeasonalMenuID,
	}, nil
}
