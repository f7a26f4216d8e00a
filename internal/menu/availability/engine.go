// Package availability decides, for an instant, a branch and a role, which
// catalog is authoritative and how each item is presented.
package availability

import (
	"context"
	"sort"
	"time"

	"menu-workers/internal/common/errors"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/common/metrics"
	"menu-workers/internal/menu/roles"
	"menu-workers/internal/menu/seasonal"
	"menu-workers/internal/models"
)

// Request is the caller context of one resolution. Now is never read from
// the wall clock by the engine.
type Request struct {
	Now      time.Time
	BranchID string
	Role     models.Role
}

// StockLedger reports in-stock state for items of one branch. Items without a
// record must be reported in stock.
type StockLedger interface {
	Availability(ctx context.Context, branchID string, itemIDs []string) (map[string]bool, error)
}

// MenuSelector picks the seasonal menu in effect.
type MenuSelector interface {
	Current(menus []models.SeasonalMenu, now time.Time) (*models.SeasonalMenu, error)
}

type Selection string

const (
	SelectionBase     Selection = "base"
	SelectionSeasonal Selection = "seasonal"
	// SelectionFallback means a seasonal menu is in effect but owns no items,
	// so the base catalog is shown instead.
	SelectionFallback Selection = "fallback"
)

type PresentedItem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category"`
	Price          float64  `json:"price"`
	BasePrice      *float64 `json:"basePrice,omitempty"`
	InStock        bool     `json:"inStock"`
	IsAvailable    bool     `json:"isAvailable"`
	SeasonalMenuID string   `json:"seasonalMenuId,omitempty"`
}

type MenuRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PresentedCatalog struct {
	Items        []PresentedItem `json:"items"`
	SeasonalMenu *MenuRef        `json:"seasonalMenu,omitempty"`
	Selection    Selection       `json:"selection"`
	Flags        roles.Flags     `json:"flags"`
	Role         models.Role     `json:"role"`
	BranchID     string          `json:"branchId"`
	ResolvedAt   time.Time       `json:"resolvedAt"`
}

type Engine struct {
	selector MenuSelector
	logger   logger.Logger
}

type pureSelector struct{}

func (pureSelector) Current(menus []models.SeasonalMenu, now time.Time) (*models.SeasonalMenu, error) {
	return seasonal.Current(menus, now)
}

// NewEngine builds an engine. A nil selector uses the unmemoized resolver.
func NewEngine(selector MenuSelector, log logger.Logger) *Engine {
	if selector == nil {
		selector = pureSelector{}
	}
	return &Engine{selector: selector, logger: log}
}

func validate(req Request) error {
	if req.BranchID == "" {
		return errors.NewConfigurationError("branchId is required")
	}
	if !req.Role.Valid() {
		return errors.NewConfigurationError("unknown role " + string(req.Role))
	}
	if req.Now.IsZero() {
		return errors.NewConfigurationError("now is required")
	}
	return nil
}

// Resolve computes the presented catalog.
func (e *Engine) Resolve(ctx context.Context, req Request, items []models.MenuItem, menus []models.SeasonalMenu, ledger StockLedger) (*PresentedCatalog, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	current, err := e.selector.Current(menus, req.Now)
	if err != nil {
		return nil, err
	}

	out := &PresentedCatalog{
		Items:      []PresentedItem{},
		Selection:  SelectionBase,
		Flags:      roles.FlagsFor(req.Role),
		Role:       req.Role,
		BranchID:   req.BranchID,
		ResolvedAt: req.Now,
	}

	var eligible []models.MenuItem
	if current != nil {
		out.SeasonalMenu = &MenuRef{ID: current.ID, Name: current.Name}
		out.Selection = SelectionSeasonal
		eligible = ownedBy(items, current.ID)
		if len(eligible) == 0 {
			out.Selection = SelectionFallback
		}
	}
	if out.Selection != SelectionSeasonal {
		eligible = ownedBy(items, "")
	}

	if len(eligible) > 0 {
		ids := make([]string, len(eligible))
		for i, it := range eligible {
			ids[i] = it.ID
		}
		inStock, err := ledger.Availability(ctx, req.BranchID, ids)
		if err != nil {
			return nil, err
		}
		out.Items = present(eligible, inStock, req.Role)
	}

	metrics.MenuResolutions.WithLabelValues(string(req.Role), string(out.Selection)).Inc()
	metrics.MenuItemsPresented.WithLabelValues(string(req.Role)).Observe(float64(len(out.Items)))

	e.logger.Debug("menu resolved", map[string]interface{}{
		"branchId":  req.BranchID,
		"role":      string(req.Role),
		"selection": string(out.Selection),
		"items":     len(out.Items),
	})
	return out, nil
}

// ownedBy returns the items whose seasonal owner is menuID; "" selects the base catalog.
func ownedBy(items []models.MenuItem, menuID string) []models.MenuItem {
	var out []models.MenuItem
	for _, it := range items {
		if it.SeasonalMenuID == menuID {
			out = append(out, it)
		}
	}
	return out
}

// present applies the stock overlay and role visibility, then sorts by
// category, name and id.
func present(items []models.MenuItem, inStock map[string]bool, role models.Role) []PresentedItem {
	out := make([]PresentedItem, 0, len(items))
	for _, it := range items {
		stocked, known := inStock[it.ID]
		if !known {
			stocked = true
		}
		if !role.IsStaff() && (!stocked || !it.IsAvailable) {
			continue
		}

		p := PresentedItem{
			ID:             it.ID,
			Name:           it.Name,
			Description:    it.Description,
			Category:       it.Category,
			Price:          it.Price,
			InStock:        stocked,
			IsAvailable:    it.IsAvailable,
			SeasonalMenuID: it.SeasonalMenuID,
		}
		if role == models.RoleHeadquarters {
			base := it.BasePrice
			p.BasePrice = &base
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
