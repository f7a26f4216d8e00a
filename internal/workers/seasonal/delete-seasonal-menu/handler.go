// internal/workers/seasonal/delete-seasonal-menu/handler.go
package deleteseasonalmenu

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
	TaskType = "delete-seasonal-menu"
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

// Execute detaches the menu's items and removes the menu. A PARTIAL_DELETION
// error fails the job with retries; the retried job finishes the removal.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := roles.Require(models.NormalizeRole(input.Role), roles.ManageSeasonal); err != nil {
		return nil, err
	}
	if input.SeasonalMenuID == "" {
		return nil, errors.NewInvalidInputError("seasonalMenuId is required")
	}

	res, err := h.manager.DeleteMenu(ctx, input.SeasonalMenuID)
	if err != nil {
		return nil, err
	}
	return &Output{
		SeasonalMenuID: res.MenuID,
		Deleted:        true,
		DetachedItems:  res.DetachedItems,
		Transactional:  res.Transactional,
	}, nil
}
