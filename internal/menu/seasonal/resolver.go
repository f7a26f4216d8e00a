// Package seasonal selects the seasonal menu in effect and manages menu lifecycle.
package seasonal

import (
	"time"

	"menu-workers/internal/common/errors"
	"menu-workers/internal/common/metrics"
	"menu-workers/internal/menu/timewindow"
	"menu-workers/internal/models"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/zeebo/blake3"
)

// Matches reports whether a menu is in effect at now: active and inside both
// its date and clock windows. Inactive menus are not parsed.
func Matches(m models.SeasonalMenu, now time.Time) (bool, error) {
	if !m.IsActive {
		return false, nil
	}
	w := timewindow.Window{StartDate: m.StartDate, EndDate: m.EndDate, StartTime: m.StartTime, EndTime: m.EndTime}
	ok, err := w.Contains(now)
	if err != nil {
		return false, errors.AsStandard(err).WithMetadata("seasonalMenuId", m.ID)
	}
	return ok, nil
}

// Current returns the first menu in stored order that is in effect at now,
// or nil. Overlapping menus resolve to the earlier one.
func Current(menus []models.SeasonalMenu, now time.Time) (*models.SeasonalMenu, error) {
	for i := range menus {
		ok, err := Matches(menus[i], now)
		if err != nil {
			return nil, err
		}
		if ok {
			m := menus[i]
			return &m, nil
		}
	}
	return nil, nil
}

// AllCurrentlyActive returns every menu in effect at now, in stored order.
func AllCurrentlyActive(menus []models.SeasonalMenu, now time.Time) ([]models.SeasonalMenu, error) {
	var out []models.SeasonalMenu
	for _, m := range menus {
		ok, err := Matches(m, now)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// Resolver memoizes Current on (calendar date, clock minute, menu-set
// fingerprint). The memo stores only the selected id; errors are not cached.
type Resolver struct {
	cache *fastcache.Cache
}

// NewResolver creates a Resolver. maxBytes <= 0 disables memoization.
func NewResolver(maxBytes int) *Resolver {
	if maxBytes <= 0 {
		return &Resolver{}
	}
	return &Resolver{cache: fastcache.New(maxBytes)}
}

func (r *Resolver) Current(menus []models.SeasonalMenu, now time.Time) (*models.SeasonalMenu, error) {
	if r == nil || r.cache == nil {
		return Current(menus, now)
	}

	k := memoKey(menus, now)
	if id, ok := r.cache.HasGet(nil, k); ok {
		metrics.SeasonalResolverCache.WithLabelValues("hit").Inc()
		return findByID(menus, string(id)), nil
	}
	metrics.SeasonalResolverCache.WithLabelValues("miss").Inc()

	m, err := Current(menus, now)
	if err != nil {
		return nil, err
	}
	var id []byte
	if m != nil {
		id = []byte(m.ID)
	}
	r.cache.Set(k, id)
	return m, nil
}

func (r *Resolver) AllCurrentlyActive(menus []models.SeasonalMenu, now time.Time) ([]models.SeasonalMenu, error) {
	return AllCurrentlyActive(menus, now)
}

// Reset drops every memoized selection.
func (r *Resolver) Reset() {
	if r != nil && r.cache != nil {
		r.cache.Reset()
	}
}

func findByID(menus []models.SeasonalMenu, id string) *models.SeasonalMenu {
	if id == "" {
		return nil
	}
	for i := range menus {
		if menus[i].ID == id {
			m := menus[i]
			return &m
		}
	}
	return nil
}

// memoKey is the evaluated date and minute followed by a BLAKE3 digest of
// every field that takes part in selection, in stored order.
func memoKey(menus []models.SeasonalMenu, now time.Time) []byte {
	h := blake3.New()
	for _, m := range menus {
		for _, s := range []string{m.ID, m.StartDate, m.EndDate, m.StartTime, m.EndTime} {
			_, _ = h.Write([]byte(s))
			_, _ = h.Write([]byte{0})
		}
		if m.IsActive {
			_, _ = h.Write([]byte{1})
		} else {
			_, _ = h.Write([]byte{0})
		}
	}

	k := make([]byte, 0, 16+32)
	k = now.AppendFormat(k, timewindow.DateLayout+" "+timewindow.ClockLayout)
	return h.Sum(k)
}
