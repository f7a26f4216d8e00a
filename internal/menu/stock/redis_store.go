package stock

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"menu-workers/internal/common/errors"
	"menu-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "stock:"

// RedisStore keeps one hash per branch, field = menu item id, value = JSON record.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func branchKey(branchID string) string {
	return keyPrefix + branchID
}

func (s *RedisStore) Get(ctx context.Context, branchID, itemID string) (models.StockRecord, bool, error) {
	raw, err := s.client.HGet(ctx, branchKey(branchID), itemID).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return models.StockRecord{}, false, nil
	}
	if err != nil {
		return models.StockRecord{}, false, errors.NewStoreError("get stock", err)
	}

	var rec models.StockRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.StockRecord{}, false, errors.NewStoreError("decode stock", err)
	}
	return rec, true, nil
}

func (s *RedisStore) GetMany(ctx context.Context, branchID string, itemIDs []string) (map[string]models.StockRecord, error) {
	out := make(map[string]models.StockRecord)
	if len(itemIDs) == 0 {
		return out, nil
	}

	vals, err := s.client.HMGet(ctx, branchKey(branchID), itemIDs...).Result()
	if err != nil {
		return nil, errors.NewStoreError("get stock", err)
	}
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var rec models.StockRecord
		if err := json.Unmarshal([]byte(str), &rec); err != nil {
			return nil, errors.NewStoreError("decode stock", err)
		}
		out[itemIDs[i]] = rec
	}
	return out, nil
}

func (s *RedisStore) Put(ctx context.Context, rec models.StockRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if err := s.client.HSet(ctx, branchKey(rec.BranchID), rec.MenuItemID, raw).Err(); err != nil {
		return errors.NewStoreError("put stock", err)
	}
	return nil
}

func (s *RedisStore) ListBranch(ctx context.Context, branchID string) ([]models.StockRecord, error) {
	all, err := s.client.HGetAll(ctx, branchKey(branchID)).Result()
	if err != nil {
		return nil, errors.NewStoreError("list stock", err)
	}
	out := make([]models.StockRecord, 0, len(all))
	for _, raw := range all {
		var rec models.StockRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, errors.NewStoreError("decode stock", err)
		}
		out = append(out, rec)
	}
	return out, nil
}
