// internal/workers/catalog/create-menu-item/handler.go
package createmenuitem

import (
	"context"
	"strings"
	"time"

	"menu-workers/internal/common/camunda"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/menu/catalog"
	"menu-workers/internal/menu/roles"
	"menu-workers/internal/menu/seasonal"
	"menu-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "create-menu-item"
)

type Handler struct {
	config  *Config
	store   catalog.Store
	manager *seasonal.Manager
	now     func() time.Time
	runner  *camunda.Runner
	logger  logger.Logger
}

func NewHandler(config *Config, store catalog.Store, manager *seasonal.Manager, sup camunda.Support) *Handler {
	runner := sup.Runner(TaskType, config.Timeout)
	return &Handler{
		config:  config,
		store:   store,
		manager: manager,
		now:     time.Now,
		runner:  runner,
		logger:  runner.Logger(),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(h.runner, client, job, h.Execute)
}

// Execute creates the item in the base catalog and, when a seasonal menu is
// named, moves it into that menu.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	role := models.NormalizeRole(input.Role)
	if err := roles.Require(role, roles.CreateItem); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.SeasonalMenuID != "" {
		if _, err := h.store.GetSeasonalMenu(ctx, input.SeasonalMenuID); err != nil {
			return nil, err
		}
	}

	now := h.now().UTC()
	item := models.MenuItem{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Category:    strings.TrimSpace(input.Category),
		Price:       input.Price,
		BasePrice:   input.Price,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.BasePrice != nil {
		item.BasePrice = *input.BasePrice
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}

	if err := h.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	if input.SeasonalMenuID != "" {
		assigned, err := h.manager.AssignItem(ctx, item.ID, input.SeasonalMenuID)
		if err != nil {
			h.logger.Warn("item created but not assigned", map[string]interface{}{
				"menuItemId":     item.ID,
				"seasonalMenuId": input.SeasonalMenuID,
				"error":          err.Error(),
			})
			return nil, err
		}
		item = *assigned
	}

	h.logger.Info("menu item created", map[string]interface{}{
		"menuItemId":     item.ID,
		"category":       item.Category,
		"seasonalMenuId": item.SeasonalMenuID,
	})
	return &Output{MenuItem: item}, nil
}
