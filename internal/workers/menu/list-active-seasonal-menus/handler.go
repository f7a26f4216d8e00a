// internal/workers/menu/list-active-seasonal-menus/handler.go
package listactiveseasonalmenus

import (
	"context"
	"time"

	"menu-workers/internal/common/camunda"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/menu/catalog"
	"menu-workers/internal/menu/roles"
	"menu-workers/internal/menu/seasonal"
	"menu-workers/internal/menu/timewindow"
	"menu-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "list-active-seasonal-menus"
)

type Handler struct {
	config   *Config
	store    catalog.Store
	resolver *seasonal.Resolver
	runner   *camunda.Runner
	logger   logger.Logger
}

func NewHandler(config *Config, store catalog.Store, resolver *seasonal.Resolver, sup camunda.Support) *Handler {
	runner := sup.Runner(TaskType, config.Timeout)
	return &Handler{
		config:   config,
		store:    store,
		resolver: resolver,
		runner:   runner,
		logger:   runner.Logger(),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(h.runner, client, job, h.Execute)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := roles.Require(models.NormalizeRole(input.Role), roles.ViewSeasonal); err != nil {
		return nil, err
	}
	now, err := timewindow.ParseInstant("now", input.Now, h.config.Location)
	if err != nil {
		return nil, err
	}

	menus, err := h.store.ListSeasonalMenus(ctx)
	if err != nil {
		return nil, err
	}
	active, err := seasonal.AllCurrentlyActive(menus, now)
	if err != nil {
		return nil, err
	}
	current, err := h.resolver.Current(menus, now)
	if err != nil {
		return nil, err
	}

	out := &Output{
		Menus:       make([]ActiveMenu, 0, len(active)),
		EvaluatedAt: now.Format(time.RFC3339),
	}
	if current != nil {
		out.CurrentSeasonalMenuID = current.ID
	}
	for _, m := range active {
		itemIDs := m.ItemIDs
		if itemIDs == nil {
			itemIDs = []string{}
		}
		out.Menus = append(out.Menus, ActiveMenu{
			ID:        m.ID,
			Name:      m.Name,
			StartDate: m.StartDate,
			EndDate:   m.EndDate,
			StartTime: m.StartTime,
			EndTime:   m.EndTime,
			ItemIDs:   itemIDs,
			IsCurrent: current != nil && current.ID == m.ID,
		})
	}

	h.logger.Debug("active seasonal menus listed", map[string]interface{}{
		"active":  len(out.Menus),
		"current": out.CurrentSeasonalMenuID,
	})
	return out, nil
}
