package videos

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	listKey = "videos:list"
	listTTL = 30 * time.Second
)

// ListCache is a read-through redis cache for the video listing. The
// listing is the hot public endpoint; writes just drop the key.
type ListCache struct {
	store  *Store
	client *goredis.Client
}

func NewListCache(store *Store, client *goredis.Client) *ListCache {
	return &ListCache{store: store, client: client}
}

// List serves the cached listing when present, otherwise loads from
// the store and caches the result. Cache errors fall back to the
// store; the cache is never load-bearing.
func (c *ListCache) List(ctx context.Context) ([]Video, error) {
	if c.client != nil {
		val, err := c.client.Get(ctx, listKey).Result()
		if err == nil {
			var list []Video
			if err := json.Unmarshal([]byte(val), &list); err == nil {
				return list, nil
			}
		}
	}

	list, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if c.client != nil {
		if data, err := json.Marshal(list); err == nil {
			_ = c.client.Set(ctx, listKey, data, listTTL).Err()
		}
	}

	return list, nil
}

// Create writes through the store and invalidates the cached listing.
func (c *ListCache) Create(ctx context.Context, ownerID string, v Video) (*Video, error) {
	created, err := c.store.Create(ctx, ownerID, v)
	if err != nil {
		return nil, err
	}

	if c.client != nil {
		_ = c.client.Del(ctx, listKey).Err()
	}

	return created, nil
}
