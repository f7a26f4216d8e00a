// internal/workers/stock/list-branch-stock/handler_test.go
package listbranchstock

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"menu-workers/internal/common/camunda"
	"menu-workers/internal/common/errors"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/menu/stock"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixed = time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC)

func createTestHandler(t *testing.T) (*Handler, *stock.Overlay) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	overlay := stock.NewOverlay(stock.NewRedisStore(client), stock.WithClock(func() time.Time { return fixed }))
	return NewHandler(LoadConfig(), overlay, camunda.Support{Logger: logger.NewTestLogger(t)}), overlay
}

func TestHandler_Execute_ListsRecordedItems(t *testing.T) {
	h, overlay := createTestHandler(t)
	ctx := context.Background()
	_, err := overlay.Set(ctx, "b1", "i-muffin", 4)
	require.NoError(t, err)
	_, err = overlay.SetOutOfStock(ctx, "b1", "i-bagel")
	require.NoError(t, err)
	_, err = overlay.SetOutOfStock(ctx, "b2", "i-muffin")
	require.NoError(t, err)

	for _, role := range []string{"branch", "headquarters"} {
		out, err := h.Execute(ctx, &Input{Role: role, BranchID: "b1"})
		require.NoError(t, err)
		assert.Equal(t, []StockEntry{
			{MenuItemID: "i-bagel", Quantity: 0, InStock: false, LastUpdated: "2024-02-02T12:00:00Z"},
			{MenuItemID: "i-muffin", Quantity: 4, InStock: true, LastUpdated: "2024-02-02T12:00:00Z"},
		}, out.Records)
		assert.Equal(t, []string{"i-bagel"}, out.OutOfStock)
	}
}

func TestHandler_Execute_EmptyBranch(t *testing.T) {
	h, _ := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Role: "branch", BranchID: "b-new"})
	require.NoError(t, err)
	assert.NotNil(t, out.Records)
	assert.Empty(t, out.Records)
}

func TestHandler_Execute_Errors(t *testing.T) {
	h, _ := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{Role: "customer", BranchID: "b1"})
	assert.True(t, stderrors.Is(err, errors.ErrPermission))

	_, err = h.Execute(context.Background(), &Input{Role: "robot", BranchID: "b1"})
	assert.True(t, stderrors.Is(err, errors.ErrConfiguration))

	_, err = h.Execute(context.Background(), &Input{Role: "branch"})
	assert.True(t, stderrors.Is(err, errors.ErrConfiguration))
}
