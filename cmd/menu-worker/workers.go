// cmd/menu-worker/workers.go
package main

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"menu-workers/internal/common/camunda"
	"menu-workers/internal/common/config"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/menu/availability"
	"menu-workers/internal/menu/catalog"
	"menu-workers/internal/menu/seasonal"
	"menu-workers/internal/menu/stock"
	"menu-workers/pkg/registry"

	// Menu read workers (2)
	lasm "menu-workers/internal/workers/menu/list-active-seasonal-menus"
	rm "menu-workers/internal/workers/menu/resolve-menu"

	// Catalog workers (3)
	cmi "menu-workers/internal/workers/catalog/create-menu-item"
	dmi "menu-workers/internal/workers/catalog/delete-menu-item"
	umi "menu-workers/internal/workers/catalog/update-menu-item"

	// Stock workers (3)
	lbs "menu-workers/internal/workers/stock/list-branch-stock"
	ss "menu-workers/internal/workers/stock/set-stock"
	ts "menu-workers/internal/workers/stock/toggle-stock"

	// Seasonal menu workers (4)
	asi "menu-workers/internal/workers/seasonal/assign-seasonal-item"
	csm "menu-workers/internal/workers/seasonal/create-seasonal-menu"
	dsm "menu-workers/internal/workers/seasonal/delete-seasonal-menu"
	usm "menu-workers/internal/workers/seasonal/update-seasonal-menu"
)

type dependencies struct {
	cfg      *config.Config
	registry *registry.ActivityRegistry
	location *time.Location
	store    catalog.Store
	overlay  *stock.Overlay
	resolver *seasonal.Resolver
	engine   *availability.Engine
	manager  *seasonal.Manager
	support  camunda.Support
}

// timeout prefers the worker's configured timeout, then the registry's, then the package default.
func (d *dependencies) timeout(taskType string, fallback time.Duration) time.Duration {
	if wc, ok := d.cfg.Workers[taskType]; ok && wc.Timeout > 0 {
		return config.GetDuration(wc.Timeout)
	}
	return d.registry.TimeoutFor(taskType, fallback)
}

type registration struct {
	taskType string
	handler  camunda.JobHandler
}

func (d *dependencies) handlers() []registration {
	rmCfg := rm.LoadConfig()
	rmCfg.Timeout = d.timeout(rm.TaskType, rmCfg.Timeout)
	rmCfg.Location = d.location

	lasmCfg := lasm.LoadConfig()
	lasmCfg.Timeout = d.timeout(lasm.TaskType, lasmCfg.Timeout)
	lasmCfg.Location = d.location

	cmiCfg := cmi.LoadConfig()
	cmiCfg.Timeout = d.timeout(cmi.TaskType, cmiCfg.Timeout)
	umiCfg := umi.LoadConfig()
	umiCfg.Timeout = d.timeout(umi.TaskType, umiCfg.Timeout)
	dmiCfg := dmi.LoadConfig()
	dmiCfg.Timeout = d.timeout(dmi.TaskType, dmiCfg.Timeout)

	ssCfg := ss.LoadConfig()
	ssCfg.Timeout = d.timeout(ss.TaskType, ssCfg.Timeout)
	tsCfg := ts.LoadConfig()
	tsCfg.Timeout = d.timeout(ts.TaskType, tsCfg.Timeout)
	lbsCfg := lbs.LoadConfig()
	lbsCfg.Timeout = d.timeout(lbs.TaskType, lbsCfg.Timeout)

	csmCfg := csm.LoadConfig()
	csmCfg.Timeout = d.timeout(csm.TaskType, csmCfg.Timeout)
	usmCfg := usm.LoadConfig()
	usmCfg.Timeout = d.timeout(usm.TaskType, usmCfg.Timeout)
	dsmCfg := dsm.LoadConfig()
	dsmCfg.Timeout = d.timeout(dsm.TaskType, dsmCfg.Timeout)
	asiCfg := asi.LoadConfig()
	asiCfg.Timeout = d.timeout(asi.TaskType, asiCfg.Timeout)

	return []registration{
		{rm.TaskType, rm.NewHandler(rmCfg, d.store, d.overlay, d.engine, d.support)},
		{lasm.TaskType, lasm.NewHandler(lasmCfg, d.store, d.resolver, d.support)},

		{cmi.TaskType, cmi.NewHandler(cmiCfg, d.store, d.manager, d.support)},
		{umi.TaskType, umi.NewHandler(umiCfg, d.store, d.support)},
		{dmi.TaskType, dmi.NewHandler(dmiCfg, d.manager, d.support)},

		{ss.TaskType, ss.NewHandler(ssCfg, d.overlay, d.store, d.support)},
		{ts.TaskType, ts.NewHandler(tsCfg, d.overlay, d.support)},
		{lbs.TaskType, lbs.NewHandler(lbsCfg, d.overlay, d.support)},

		{csm.TaskType, csm.NewHandler(csmCfg, d.manager, d.support)},
		{usm.TaskType, usm.NewHandler(usmCfg, d.manager, d.support)},
		{dsm.TaskType, dsm.NewHandler(dsmCfg, d.manager, d.support)},
		{asi.TaskType, asi.NewHandler(asiCfg, d.manager, d.support)},
	}
}

func startWorkers(client zbc.Client, d *dependencies, log logger.Logger) []*camunda.CamundaWorker {
	var started []*camunda.CamundaWorker
	for _, r := range d.handlers() {
		if !config.IsWorkerEnabled(d.cfg, r.taskType) {
			log.Info("worker disabled", map[string]interface{}{"taskType": r.taskType})
			continue
		}
		wc := config.GetWorkerConfig(d.cfg, r.taskType)
		started = append(started, camunda.NewWorker(
			client,
			r.taskType,
			wc.MaxJobsActive,
			d.timeout(r.taskType, config.GetDuration(wc.Timeout)),
			r.handler,
			log,
		))
	}
	return started
}
