package history

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/iwvelando/benefit-calculator/pkg/benefit"
	"github.com/iwvelando/benefit-calculator/pkg/constants"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, constants.DefaultHistoryRedisKey), mr
}

func TestRedisStore(t *testing.T) {
	store, _ := newRedisStore(t)
	require.NoError(t, store.Ping(context.Background()))
	assertRoundTrip(t, store)
}

func TestRedisStoreKey(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, store.Replace(context.Background(), sampleEntries()))

	raw, err := mr.Get(constants.DefaultHistoryRedisKey)
	require.NoError(t, err)
	require.Contains(t, raw, `"id":"b"`)
}

func TestRedisStoreCorrupt(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set(constants.DefaultHistoryRedisKey, "garbage"))

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestRedisStoreUnavailable(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	_, err := store.Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrCorrupt)
}

func TestHistoryWithRedisStore(t *testing.T) {
	store, _ := newRedisStore(t)
	h := New(store, nil)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		params := paramsFor(float64(1000 + i))
		_, err := h.Save(ctx, params, benefit.TotalBenefit(params))
		require.NoError(t, err)
	}

	entries, err := h.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, constants.HistoryCapacity)
	require.Equal(t, 1006.0, entries[0].Params.Amount)
	require.Equal(t, 1002.0, entries[4].Params.Amount)
}
