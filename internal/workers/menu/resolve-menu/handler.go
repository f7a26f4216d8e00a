// internal/workers/menu/resolve-menu/handler.go
package resolvemenu

import (
	"context"

	"menu-workers/internal/common/camunda"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/menu/availability"
	"menu-workers/internal/menu/catalog"
	"menu-workers/internal/menu/timewindow"
	"menu-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "resolve-menu"
)

type Handler struct {
	config *Config
	store  catalog.Store
	ledger availability.StockLedger
	engine *availability.Engine
	runner *camunda.Runner
	logger logger.Logger
}

func NewHandler(config *Config, store catalog.Store, ledger availability.StockLedger, engine *availability.Engine, sup camunda.Support) *Handler {
	runner := sup.Runner(TaskType, config.Timeout)
	return &Handler{
		config: config,
		store:  store,
		ledger: ledger,
		engine: engine,
		runner: runner,
		logger: runner.Logger(),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(h.runner, client, job, h.Execute)
}

// Execute loads the catalog and seasonal menus, then resolves what the caller sees at input.Now.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	now, err := timewindow.ParseInstant("now", input.Now, h.config.Location)
	if err != nil {
		return nil, err
	}

	items, err := h.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	menus, err := h.store.ListSeasonalMenus(ctx)
	if err != nil {
		return nil, err
	}

	req := availability.Request{
		Now:      now,
		BranchID: input.BranchID,
		Role:     models.NormalizeRole(input.Role),
	}
	presented, err := h.engine.Resolve(ctx, req, items, menus, h.ledger)
	if err != nil {
		return nil, err
	}

	h.logger.Info("menu resolved", map[string]interface{}{
		"branchId":  req.BranchID,
		"role":      string(req.Role),
		"selection": string(presented.Selection),
		"items":     len(presented.Items),
	})
	return &Output{Menu: presented}, nil
}
