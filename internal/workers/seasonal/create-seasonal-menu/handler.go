// internal/workers/seasonal/create-seasonal-menu/handler.go
package createseasonalmenu

import (
	"context"
	"strings"

	"menu-workers/internal/common/camunda"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/menu/roles"
	"menu-workers/internal/menu/seasonal"
	"menu-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "create-seasonal-menu"
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

	menu := models.SeasonalMenu{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		IsActive:    true,
	}
	if input.IsActive != nil {
		menu.IsActive = *input.IsActive
	}

	created, err := h.manager.CreateMenu(ctx, menu)
	if err != nil {
		return nil, err
	}
	return &Output{SeasonalMenu: *created}, nil
}
