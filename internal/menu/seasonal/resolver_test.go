package seasonal

import (
	stderrors "errors"
	"testing"
	"time"

	"menu-workers/internal/common/errors"
	"menu-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04", s)
	require.NoError(t, err)
	return ts
}

func summerMenu() models.SeasonalMenu {
	return models.SeasonalMenu{
		ID: "summer", Name: "Summer", IsActive: true,
		StartDate: "2024-06-01", EndDate: "2024-08-31",
		StartTime: "11:00", EndTime: "21:00",
	}
}

func lateNightMenu() models.SeasonalMenu {
	return models.SeasonalMenu{
		ID: "late", Name: "Late Night", IsActive: true,
		StartDate: "2024-01-01", EndDate: "2024-12-31",
		StartTime: "22:00", EndTime: "06:00",
	}
}

func TestCurrent_ScenarioA(t *testing.T) {
	m, err := Current([]models.SeasonalMenu{summerMenu()}, clock(t, "2024-07-04T15:00"))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "summer", m.ID)
}

func TestCurrent_ScenarioB_Overnight(t *testing.T) {
	menus := []models.SeasonalMenu{lateNightMenu()}

	m, err := Current(menus, clock(t, "2024-07-04T23:30"))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "late", m.ID)

	m, err = Current(menus, clock(t, "2024-07-04T12:00"))
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestCurrent_NoneMatch(t *testing.T) {
	inactive := summerMenu()
	inactive.IsActive = false
	expired := summerMenu()
	expired.ID = "expired"
	expired.EndDate = "2024-06-30"

	m, err := Current([]models.SeasonalMenu{inactive, expired}, clock(t, "2024-07-04T15:00"))
	require.NoError(t, err)
	assert.Nil(t, m)

	m, err = Current(nil, clock(t, "2024-07-04T15:00"))
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestCurrent_ScenarioD_FirstMatchWins(t *testing.T) {
	a := models.SeasonalMenu{ID: "A", IsActive: true, StartDate: "2024-01-01", EndDate: "2024-12-31", StartTime: "00:00", EndTime: "23:59"}
	// B's window is narrower but it was created later.
	b := models.SeasonalMenu{ID: "B", IsActive: true, StartDate: "2024-07-04", EndDate: "2024-07-04", StartTime: "14:00", EndTime: "16:00"}
	now := clock(t, "2024-07-04T15:00")

	m, err := Current([]models.SeasonalMenu{a, b}, now)
	require.NoError(t, err)
	assert.Equal(t, "A", m.ID)

	all, err := AllCurrentlyActive([]models.SeasonalMenu{a, b}, now)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].ID)
	assert.Equal(t, "B", all[1].ID)

	m, err = Current([]models.SeasonalMenu{b, a}, now)
	require.NoError(t, err)
	assert.Equal(t, "B", m.ID)
}

func TestMatches_MalformedActiveMenu(t *testing.T) {
	bad := summerMenu()
	bad.StartTime = "11am"

	_, err := Current([]models.SeasonalMenu{bad}, clock(t, "2024-07-04T15:00"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrFormat))
	assert.Equal(t, "summer", errors.AsStandard(err).Metadata["seasonalMenuId"])

	// the kill-switch skips parsing
	bad.IsActive = false
	m, err := Current([]models.SeasonalMenu{bad}, clock(t, "2024-07-04T15:00"))
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestResolver_MemoMatchesPure(t *testing.T) {
	r := NewResolver(1 << 20)
	menus := []models.SeasonalMenu{summerMenu(), lateNightMenu()}

	for _, s := range []string{"2024-07-04T15:00", "2024-07-04T23:30", "2024-07-04T15:00", "2024-07-04T12:00", "2024-07-04T23:30"} {
		now := clock(t, s)
		want, err := Current(menus, now)
		require.NoError(t, err)
		got, err := r.Current(menus, now)
		require.NoError(t, err)
		assert.Equal(t, want, got, s)
	}
}

func TestResolver_MemoInvalidatedByMenuChange(t *testing.T) {
	r := NewResolver(1 << 20)
	now := clock(t, "2024-07-04T15:00")
	menus := []models.SeasonalMenu{summerMenu()}

	m, err := r.Current(menus, now)
	require.NoError(t, err)
	require.NotNil(t, m)

	menus[0].IsActive = false
	m, err = r.Current(menus, now)
	require.NoError(t, err)
	assert.Nil(t, m)

	// a stored "none" is distinguished from a miss
	m, err = r.Current(menus, now)
	require.NoError(t, err)
	assert.Nil(t, m)

	menus[0].IsActive = true
	menus[0].Name = "Renamed"
	m, err = r.Current(menus, now)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Renamed", m.Name)
}

func TestResolver_ErrorsNotCached(t *testing.T) {
	r := NewResolver(1 << 20)
	bad := summerMenu()
	bad.EndTime = "9pm"
	now := clock(t, "2024-07-04T15:00")

	for i := 0; i < 2; i++ {
		_, err := r.Current([]models.SeasonalMenu{bad}, now)
		assert.True(t, stderrors.Is(err, errors.ErrFormat))
	}
}

func TestResolver_Disabled(t *testing.T) {
	r := NewResolver(0)
	m, err := r.Current([]models.SeasonalMenu{summerMenu()}, clock(t, "2024-07-04T15:00"))
	require.NoError(t, err)
	assert.Equal(t, "summer", m.ID)
	r.Reset()
}

func TestMemoKey_MinuteGranularity(t *testing.T) {
	menus := []models.SeasonalMenu{summerMenu()}
	a := memoKey(menus, time.Date(2024, 7, 4, 15, 0, 5, 0, time.UTC))
	b := memoKey(menus, time.Date(2024, 7, 4, 15, 0, 55, 0, time.UTC))
	c := memoKey(menus, time.Date(2024, 7, 4, 15, 1, 0, 0, time.UTC))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func BenchmarkResolverCurrent(b *testing.B) {
	menus := make([]models.SeasonalMenu, 0, 50)
	for i := 0; i < 49; i++ {
		m := summerMenu()
		m.ID = "m" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		m.StartDate, m.EndDate = "2023-01-01", "2023-12-31"
		menus = append(menus, m)
	}
	menus = append(menus, lateNightMenu())
	now := time.Date(2024, 7, 4, 23, 30, 0, 0, time.UTC)
	r := NewResolver(1 << 20)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Current(menus, now); err != nil {
			b.Fatal(err)
		}
	}
}
