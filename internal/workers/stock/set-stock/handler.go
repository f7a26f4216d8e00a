// internal/workers/stock/set-stock/handler.go
package setstock

import (
	"context"

	"menu-workers/internal/common/camunda"
	"menu-workers/internal/common/errors"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/menu/catalog"
	"menu-workers/internal/menu/roles"
	"menu-workers/internal/menu/stock"
	"menu-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "set-stock"
)

type Handler struct {
	config  *Config
	overlay *stock.Overlay
	store   catalog.Store
	runner  *camunda.Runner
	logger  logger.Logger
}

func NewHandler(config *Config, overlay *stock.Overlay, store catalog.Store, sup camunda.Support) *Handler {
	runner := sup.Runner(TaskType, config.Timeout)
	return &Handler{
		config:  config,
		overlay: overlay,
		store:   store,
		runner:  runner,
		logger:  runner.Logger(),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(h.runner, client, job, h.Execute)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := roles.Require(models.NormalizeRole(input.Role), roles.ManageStock); err != nil {
		return nil, err
	}
	if (input.Quantity == nil) == (input.InStock == nil) {
		return nil, errors.NewInvalidInputError("exactly one of quantity or inStock is required")
	}
	if h.config.VerifyItem && h.store != nil && input.MenuItemID != "" {
		if _, err := h.store.GetItem(ctx, input.MenuItemID); err != nil {
			return nil, err
		}
	}

	var (
		rec *models.StockRecord
		err error
	)
	switch {
	case input.Quantity != nil:
		rec, err = h.overlay.Set(ctx, input.BranchID, input.MenuItemID, *input.Quantity)
	case *input.InStock:
		rec, err = h.overlay.SetInStock(ctx, input.BranchID, input.MenuItemID)
	default:
		rec, err = h.overlay.SetOutOfStock(ctx, input.BranchID, input.MenuItemID)
	}
	if err != nil {
		return nil, err
	}

	h.logger.Info("stock updated", map[string]interface{}{
		"branchId":   rec.BranchID,
		"menuItemId": rec.MenuItemID,
		"quantity":   rec.Quantity,
	})
	return &Output{Stock: *rec, InStock: rec.InStock()}, nil
}
