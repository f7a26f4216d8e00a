// internal/workers/stock/toggle-stock/handler.go
package togglestock

import (
	"context"

	"menu-workers/internal/common/camunda"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/menu/roles"
	"menu-workers/internal/menu/stock"
	"menu-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "toggle-stock"
)

type Handler struct {
	config  *Config
	overlay *stock.Overlay
	runner  *camunda.Runner
	logger  logger.Logger
}

func NewHandler(config *Config, overlay *stock.Overlay, sup camunda.Support) *Handler {
	runner := sup.Runner(TaskType, config.Timeout)
	return &Handler{
		config:  config,
		overlay: overlay,
		runner:  runner,
		logger:  runner.Logger(),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(h.runner, client, job, h.Execute)
}

// Execute flips the item's in-stock state at the branch. Two jobs toggling the
// same item at once may both read the old state; the later write wins.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := roles.Require(models.NormalizeRole(input.Role), roles.ManageStock); err != nil {
		return nil, err
	}

	rec, err := h.overlay.Toggle(ctx, input.BranchID, input.MenuItemID)
	if err != nil {
		return nil, err
	}

	h.logger.Info("stock toggled", map[string]interface{}{
		"branchId":   rec.BranchID,
		"menuItemId": rec.MenuItemID,
		"inStock":    rec.InStock(),
	})
	return &Output{Stock: *rec, InStock: rec.InStock()}, nil
}
