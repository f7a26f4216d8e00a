// internal/workers/stock/list-branch-stock/handler.go
package listbranchstock

import (
	"context"
	"time"

	"menu-workers/internal/common/camunda"
	"menu-workers/internal/common/errors"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/menu/roles"
	"menu-workers/internal/menu/stock"
	"menu-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "list-branch-stock"
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

// Execute is a staff view; customers only ever see stock through resolve-menu.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	role := models.NormalizeRole(input.Role)
	if err := roles.Require(role, roles.ViewCatalog); err != nil {
		return nil, err
	}
	if !role.IsStaff() {
		return nil, errors.NewPermissionDeniedError(string(role), "view-stock")
	}

	recs, err := h.overlay.ListBranch(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}

	out := &Output{
		BranchID:   input.BranchID,
		Records:    make([]StockEntry, 0, len(recs)),
		OutOfStock: []string{},
	}
	for _, rec := range recs {
		out.Records = append(out.Records, StockEntry{
			MenuItemID:  rec.MenuItemID,
			Quantity:    rec.Quantity,
			InStock:     rec.InStock(),
			LastUpdated: rec.LastUpdated.Format(time.RFC3339),
		})
		if !rec.InStock() {
			out.OutOfStock = append(out.OutOfStock, rec.MenuItemID)
		}
	}
	return out, nil
}
