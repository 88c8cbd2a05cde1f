package videos

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blazebomb/vidai/internal/db"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	cache := db.NewCache(func(ctx context.Context) (*db.DB, error) {
		return &db.DB{DB: mockDB}, nil
	})

	return NewStore(cache), mock
}

func videoColumns() []string {
	return []string{
		"id", "owner_id", "title", "description", "video_url", "thumbnail_url",
		"controls", "transform_height", "transform_width", "transform_quality",
		"created_at", "updated_at",
	}
}

func TestListCache_MissLoadsAndCaches(t *testing.T) {
	store, sqlMock := newMockStore(t)
	redisClient, redisMock := redismock.NewClientMock()

	now := time.Now()
	sqlMock.ExpectQuery("SELECT (.+) FROM videos").
		WillReturnRows(sqlmock.NewRows(videoColumns()).
			AddRow("vid-1", "user-1", "First", "desc", "https://v/1", "https://t/1",
				true, DefaultHeight, DefaultWidth, DefaultQuality, now, now))

	cache := NewListCache(store, redisClient)

	redisMock.ExpectGet(listKey).RedisNil()
	redisMock.Regexp().ExpectSet(listKey, `.*`, listTTL).SetVal("OK")

	list, err := cache.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "vid-1", list[0].ID)

	require.NoError(t, sqlMock.ExpectationsWereMet())
	require.NoError(t, redisMock.ExpectationsWereMet())
}

func TestListCache_HitSkipsStore(t *testing.T) {
	store, sqlMock := newMockStore(t)
	redisClient, redisMock := redismock.NewClientMock()

	cached := []Video{{ID: "vid-9", Title: "Cached"}}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	redisMock.ExpectGet(listKey).SetVal(string(data))

	cache := NewListCache(store, redisClient)

	list, err := cache.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "vid-9", list[0].ID)

	// No SQL ran on a cache hit.
	require.NoError(t, sqlMock.ExpectationsWereMet())
	require.NoError(t, redisMock.ExpectationsWereMet())
}

func TestListCache_NilClientFallsThrough(t *testing.T) {
	store, sqlMock := newMockStore(t)

	sqlMock.ExpectQuery("SELECT (.+) FROM videos").
		WillReturnRows(sqlmock.NewRows(videoColumns()))

	cache := NewListCache(store, nil)

	list, err := cache.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListCache_CreateInvalidates(t *testing.T) {
	store, sqlMock := newMockStore(t)
	redisClient, redisMock := redismock.NewClientMock()

	now := time.Now()
	sqlMock.ExpectQuery("INSERT INTO videos").
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now),
		)

	redisMock.ExpectDel(listKey).SetVal(1)

	cache := NewListCache(store, redisClient)

	created, err := cache.Create(context.Background(), "user-1", Video{
		Title:          "New",
		Description:    "desc",
		VideoURL:       "https://v/new",
		ThumbnailURL:   "https://t/new",
		Controls:       true,
		Transformation: Transformation{Quality: DefaultQuality},
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", created.OwnerID)
	assert.Equal(t, DefaultHeight, created.Transformation.Height)
	assert.Equal(t, DefaultWidth, created.Transformation.Width)
	assert.Equal(t, DefaultQuality, created.Transformation.Quality)

	require.NoError(t, sqlMock.ExpectationsWereMet())
	require.NoError(t, redisMock.ExpectationsWereMet())
}
