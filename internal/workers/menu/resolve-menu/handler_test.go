// internal/workers/menu/resolve-menu/handler_test.go
package resolvemenu

import (
	"context"
	stderrors "errors"
	"regexp"
	"testing"
	"time"

	"menu-workers/internal/common/camunda"
	"menu-workers/internal/common/errors"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/menu/availability"
	"menu-workers/internal/menu/catalog"
	"menu-workers/internal/menu/seasonal"
	"menu-workers/internal/menu/stock"
	"menu-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:  5 * time.Second,
		Location: time.UTC,
	}
}

func seedStore(t *testing.T) *catalog.MemoryStore {
	ctx := context.Background()
	s := catalog.NewMemoryStore()
	require.NoError(t, s.CreateSeasonalMenu(ctx, models.SeasonalMenu{
		ID: "brunch", Name: "Weekend Brunch", IsActive: true,
		StartDate: "2024-01-01", EndDate: "2024-12-31", StartTime: "09:00", EndTime: "12:00",
		ItemIDs: []string{"i-pancakes"},
	}))
	for _, item := range []models.MenuItem{
		{ID: "i-espresso", Name: "Espresso", Category: "drinks", Price: 2.5, BasePrice: 2.5, IsAvailable: true},
		{ID: "i-toast", Name: "Toast", Category: "food", Price: 3, BasePrice: 2.8, IsAvailable: true},
		{ID: "i-pancakes", Name: "Pancakes", Category: "food", Price: 8, BasePrice: 7, IsAvailable: true, SeasonalMenuID: "brunch"},
	} {
		require.NoError(t, s.CreateItem(ctx, item))
	}
	return s
}

func createTestHandler(t *testing.T, store catalog.Store, overlay *stock.Overlay, config *Config) *Handler {
	if config == nil {
		config = createTestConfig()
	}
	log := logger.NewTestLogger(t)
	engine := availability.NewEngine(seasonal.NewResolver(1<<20), log)
	return NewHandler(config, store, overlay, engine, camunda.Support{Logger: log})
}

func ids(out *Output) []string {
	res := make([]string, 0, len(out.Menu.Items))
	for _, it := range out.Menu.Items {
		res = append(res, it.ID)
	}
	return res
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name          string
		input         *Input
		wantSelection availability.Selection
		wantItems     []string
	}{
		{
			name:          "brunch window selects seasonal items",
			input:         &Input{Role: "customer", BranchID: "b1", Now: "2024-03-02T10:15:00Z"},
			wantSelection: availability.SelectionSeasonal,
			wantItems:     []string{"i-pancakes"},
		},
		{
			name:          "outside the window shows the base catalog",
			input:         &Input{Role: "customer", BranchID: "b1", Now: "2024-03-02T15:00:00Z"},
			wantSelection: availability.SelectionBase,
			wantItems:     []string{"i-espresso", "i-toast"},
		},
		{
			name:          "role is normalized",
			input:         &Input{Role: " Branch ", BranchID: "b1", Now: "2024-03-02T15:00:00Z"},
			wantSelection: availability.SelectionBase,
			wantItems:     []string{"i-espresso", "i-toast"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t, seedStore(t), stock.NewOverlay(stock.NewMemoryStore()), nil)

			out, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSelection, out.Menu.Selection)
			assert.Equal(t, tt.wantItems, ids(out))
			assert.Equal(t, tt.input.BranchID, out.Menu.BranchID)
		})
	}
}

func TestHandler_Execute_ConvertsNowIntoConfiguredZone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	h := createTestHandler(t, seedStore(t), stock.NewOverlay(stock.NewMemoryStore()),
		&Config{Timeout: time.Second, Location: tokyo})

	// 01:30Z is 10:30 in Tokyo, inside the brunch window.
	out, err := h.Execute(context.Background(), &Input{Role: "customer", BranchID: "b1", Now: "2024-03-02T01:30:00Z"})
	require.NoError(t, err)
	assert.Equal(t, availability.SelectionSeasonal, out.Menu.Selection)
	assert.Equal(t, tokyo, out.Menu.ResolvedAt.Location())
}

func TestHandler_Execute_OutOfStockVisibility(t *testing.T) {
	overlay := stock.NewOverlay(stock.NewMemoryStore())
	_, err := overlay.SetOutOfStock(context.Background(), "b1", "i-toast")
	require.NoError(t, err)
	h := createTestHandler(t, seedStore(t), overlay, nil)

	customer, err := h.Execute(context.Background(), &Input{Role: "customer", BranchID: "b1", Now: "2024-03-02T15:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-espresso"}, ids(customer))

	hq, err := h.Execute(context.Background(), &Input{Role: "headquarters", BranchID: "b1", Now: "2024-03-02T15:00:00Z"})
	require.NoError(t, err)
	require.Equal(t, []string{"i-espresso", "i-toast"}, ids(hq))
	assert.False(t, hq.Menu.Items[1].InStock)
	require.NotNil(t, hq.Menu.Items[1].BasePrice)
	assert.Equal(t, 2.8, *hq.Menu.Items[1].BasePrice)
}

// ==========================
// Error Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   *Input
		wantErr error
	}{
		{"malformed now", &Input{Role: "customer", BranchID: "b1", Now: "yesterday"}, errors.ErrFormat},
		{"unknown role", &Input{Role: "auditor", BranchID: "b1", Now: "2024-03-02T15:00:00Z"}, errors.ErrConfiguration},
		{"missing branch", &Input{Role: "customer", Now: "2024-03-02T15:00:00Z"}, errors.ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t, seedStore(t), stock.NewOverlay(stock.NewMemoryStore()), nil)
			_, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestHandler_Execute_StoreFailureIsRetryable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM menu_items`)).WillReturnError(stderrors.New("connection reset by peer"))

	store := catalog.NewPostgresStore(db, logger.NewTestLogger(t))
	h := createTestHandler(t, store, stock.NewOverlay(stock.NewMemoryStore()), nil)

	_, err = h.Execute(context.Background(), &Input{Role: "customer", BranchID: "b1", Now: "2024-03-02T15:00:00Z"})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrStoreFailed))
	assert.True(t, errors.AsStandard(err).Retryable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig()
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, time.UTC, cfg.Location)
}
