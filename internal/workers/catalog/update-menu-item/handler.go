// internal/workers/catalog/update-menu-item/handler.go
package updatemenuitem

import (
	"context"
	"strings"
	"time"

	"menu-workers/internal/common/camunda"
	"menu-workers/internal/common/errors"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/menu/catalog"
	"menu-workers/internal/menu/roles"
	"menu-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "update-menu-item"
)

type Handler struct {
	config *Config
	store  catalog.Store
	now    func() time.Time
	runner *camunda.Runner
	logger logger.Logger
}

func NewHandler(config *Config, store catalog.Store, sup camunda.Support) *Handler {
	runner := sup.Runner(TaskType, config.Timeout)
	return &Handler{
		config: config,
		store:  store,
		now:    time.Now,
		runner: runner,
		logger: runner.Logger(),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(h.runner, client, job, h.Execute)
}

// requiredCapabilities lists what the caller needs for the fields present in input.
// Changing price needs update-price and changing basePrice needs set-base-price.
func requiredCapabilities(input *Input) []roles.Capability {
	caps := []roles.Capability{roles.UpdateItem}
	if input.Price != nil {
		caps = append(caps, roles.UpdatePrice)
	}
	if input.BasePrice != nil {
		caps = append(caps, roles.SetBasePrice)
	}
	return caps
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	role := models.NormalizeRole(input.Role)
	for _, c := range requiredCapabilities(input) {
		if err := roles.Require(role, c); err != nil {
			return nil, err
		}
	}
	if input.MenuItemID == "" {
		return nil, errors.NewInvalidInputError("menuItemId is required")
	}

	item, err := h.store.GetItem(ctx, input.MenuItemID)
	if err != nil {
		return nil, err
	}

	changed := []string{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.NewInvalidInputError("name must not be blank")
		}
		item.Name = name
		changed = append(changed, "name")
	}
	if input.Description != nil {
		item.Description = *input.Description
		changed = append(changed, "description")
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, errors.NewInvalidInputError("category must not be blank")
		}
		item.Category = category
		changed = append(changed, "category")
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, errors.NewInvalidInputError("price must not be negative")
		}
		item.Price = *input.Price
		changed = append(changed, "price")
	}
	if input.BasePrice != nil {
		if *input.BasePrice < 0 {
			return nil, errors.NewInvalidInputError("basePrice must not be negative")
		}
		item.BasePrice = *input.BasePrice
		changed = append(changed, "basePrice")
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
		changed = append(changed, "isAvailable")
	}

	if len(changed) == 0 {
		return &Output{MenuItem: *item, ChangedFields: changed}, nil
	}

	item.UpdatedAt = h.now().UTC()
	if err := h.store.UpdateItem(ctx, *item); err != nil {
		return nil, err
	}

	h.logger.Info("menu item updated", map[string]interface{}{
		"menuItemId": item.ID,
		"role":       string(role),
		"fields":     changed,
	})
	return &Output{MenuItem: *item, ChangedFields: changed}, nil
}
