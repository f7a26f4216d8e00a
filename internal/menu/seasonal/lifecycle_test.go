package seasonal

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"menu-workers/internal/common/errors"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/menu/catalog"
	"menu-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixed = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

// flakyStore fails menu deletion a set number of times.
type flakyStore struct {
	*catalog.MemoryStore
	deleteFailures int
}

func (f *flakyStore) DeleteSeasonalMenu(ctx context.Context, id string) error {
	if f.deleteFailures > 0 {
		f.deleteFailures--
		return errors.NewStoreError("delete seasonal menu", stderrors.New("connection reset"))
	}
	return f.MemoryStore.DeleteSeasonalMenu(ctx, id)
}

func newManager(t *testing.T, store catalog.Store) *Manager {
	return NewManager(store, logger.NewTestLogger(t)).WithClock(func() time.Time { return fixed })
}

func seed(t *testing.T, store catalog.Store, m *Manager) *models.SeasonalMenu {
	t.Helper()
	ctx := context.Background()
	menu, err := m.CreateMenu(ctx, summerMenu())
	require.NoError(t, err)
	for _, id := range []string{"i1", "i2", "i3"} {
		require.NoError(t, store.CreateItem(ctx, models.MenuItem{ID: id, Name: id, Category: "food"}))
	}
	for _, id := range []string{"i1", "i2"} {
		_, err := m.AssignItem(ctx, id, menu.ID)
		require.NoError(t, err)
	}
	return menu
}

func TestCreateMenu_Validates(t *testing.T) {
	m := newManager(t, catalog.NewMemoryStore())
	ctx := context.Background()

	bad := summerMenu()
	bad.StartTime = "25:00"
	_, err := m.CreateMenu(ctx, bad)
	assert.True(t, stderrors.Is(err, errors.ErrFormat))

	unnamed := summerMenu()
	unnamed.Name = " "
	_, err = m.CreateMenu(ctx, unnamed)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidInput))

	fresh := summerMenu()
	fresh.ID = ""
	created, err := m.CreateMenu(ctx, fresh)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, fixed, created.CreatedAt)
	assert.Empty(t, created.ItemIDs)
}

func TestUpdateMenu_PatchesAndKeepsPosition(t *testing.T) {
	store := catalog.NewMemoryStore()
	m := newManager(t, store)
	ctx := context.Background()

	_, err := m.CreateMenu(ctx, summerMenu())
	require.NoError(t, err)
	_, err = m.CreateMenu(ctx, lateNightMenu())
	require.NoError(t, err)

	off := false
	name := "Summer Terrace"
	updated, err := m.UpdateMenu(ctx, "summer", MenuPatch{Name: &name, IsActive: &off})
	require.NoError(t, err)
	assert.Equal(t, "Summer Terrace", updated.Name)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "11:00", updated.StartTime)

	menus, err := store.ListSeasonalMenus(ctx)
	require.NoError(t, err)
	assert.Equal(t, "summer", menus[0].ID)

	badEnd := "2024-01-01"
	_, err = m.UpdateMenu(ctx, "summer", MenuPatch{EndDate: &badEnd})
	assert.True(t, stderrors.Is(err, errors.ErrInvalidInput))

	_, err = m.UpdateMenu(ctx, "missing", MenuPatch{Name: &name})
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
}

func TestDeleteMenu_LeavesNoOwnedItems(t *testing.T) {
	store := catalog.NewMemoryStore()
	m := newManager(t, store)
	ctx := context.Background()
	menu := seed(t, store, m)

	res, err := m.DeleteMenu(ctx, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.DetachedItems)
	assert.False(t, res.Transactional)

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	for _, it := range items {
		assert.NotEqual(t, menu.ID, it.SeasonalMenuID)
	}
	_, err = store.GetSeasonalMenu(ctx, menu.ID)
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))

	_, err = m.DeleteMenu(ctx, menu.ID)
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
}

func TestDeleteMenu_PartialThenRetryConverges(t *testing.T) {
	store := &flakyStore{MemoryStore: catalog.NewMemoryStore(), deleteFailures: 1}
	m := newManager(t, store)
	ctx := context.Background()
	menu := seed(t, store, m)

	_, err := m.DeleteMenu(ctx, menu.ID)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrPartialDeletion))
	std := errors.AsStandard(err)
	assert.True(t, std.Retryable)
	assert.Equal(t, 2, std.Metadata["detachedItems"])

	// intermediate state: items detached, menu still present
	_, err = store.GetSeasonalMenu(ctx, menu.ID)
	require.NoError(t, err)
	item, err := store.GetItem(ctx, "i1")
	require.NoError(t, err)
	assert.True(t, item.InBaseCatalog())

	res, err := m.DeleteMenu(ctx, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.DetachedItems)
	_, err = store.GetSeasonalMenu(ctx, menu.ID)
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
}

func TestDeleteMenu_TransactionalStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := catalog.NewPostgresStore(db, logger.NewTestLogger(t))
	m := newManager(t, store)

	menuCols := []string{"id", "name", "description", "start_date", "end_date", "start_time", "end_time", "is_active", "item_ids", "created_at", "updated_at"}

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM seasonal_menus WHERE id`).WithArgs("summer").
		WillReturnRows(sqlmock.NewRows(menuCols).
			AddRow("summer", "Summer", nil, "2024-06-01", "2024-08-31", "11:00", "21:00", true, "{i1,i2}", fixed, fixed))
	mock.ExpectExec(`UPDATE menu_items SET seasonal_menu_id = NULL`).WithArgs("summer").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM seasonal_menus`).WithArgs("summer").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := m.DeleteMenu(context.Background(), "summer")
	require.NoError(t, err)
	assert.True(t, res.Transactional)
	assert.Equal(t, 2, res.DetachedItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignItem_MovesBetweenMenus(t *testing.T) {
	store := catalog.NewMemoryStore()
	m := newManager(t, store)
	ctx := context.Background()
	seed(t, store, m)
	_, err := m.CreateMenu(ctx, lateNightMenu())
	require.NoError(t, err)

	item, err := m.AssignItem(ctx, "i1", "late")
	require.NoError(t, err)
	assert.Equal(t, "late", item.SeasonalMenuID)

	summer, err := store.GetSeasonalMenu(ctx, "summer")
	require.NoError(t, err)
	assert.Equal(t, []string{"i2"}, summer.ItemIDs)

	late, err := store.GetSeasonalMenu(ctx, "late")
	require.NoError(t, err)
	assert.Equal(t, []string{"i1"}, late.ItemIDs)

	// idempotent
	_, err = m.AssignItem(ctx, "i1", "late")
	require.NoError(t, err)
	late, err = store.GetSeasonalMenu(ctx, "late")
	require.NoError(t, err)
	assert.Equal(t, []string{"i1"}, late.ItemIDs)

	_, err = m.AssignItem(ctx, "i1", "missing")
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
	_, err = m.AssignItem(ctx, "missing", "late")
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
}

func TestUnassignAndDeleteItem(t *testing.T) {
	store := catalog.NewMemoryStore()
	m := newManager(t, store)
	ctx := context.Background()
	seed(t, store, m)

	item, err := m.UnassignItem(ctx, "i1")
	require.NoError(t, err)
	assert.True(t, item.InBaseCatalog())

	deleted, err := m.DeleteItem(ctx, "i2")
	require.NoError(t, err)
	assert.Equal(t, "summer", deleted.SeasonalMenuID)

	summer, err := store.GetSeasonalMenu(ctx, "summer")
	require.NoError(t, err)
	assert.Empty(t, summer.ItemIDs)

	_, err = m.DeleteItem(ctx, "i2")
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))

	// unassigning a base item is a no-op
	item, err = m.UnassignItem(ctx, "i3")
	require.NoError(t, err)
	assert.True(t, item.InBaseCatalog())
}
