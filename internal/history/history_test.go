package history

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/benefit-calculator/internal/config"
	"github.com/iwvelando/benefit-calculator/pkg/benefit"
	"github.com/iwvelando/benefit-calculator/pkg/constants"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHistory(store Store) *History {
	h := New(store, zap.NewNop())
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	h.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	ids := 0
	h.newID = func() string {
		ids++
		return fmt.Sprintf("calc-%d", ids)
	}
	return h
}

func paramsFor(amount float64) benefit.Params {
	return benefit.Params{
		Amount:   amount,
		Cashback: benefit.CashbackParams{Percentage: 5, RoundingMode: benefit.RoundingArithmetic},
	}
}

func TestSaveKeepsMostRecentFive(t *testing.T) {
	ctx := context.Background()
	h := newTestHistory(NewMemoryStore())

	for i := 1; i <= 6; i++ {
		params := paramsFor(float64(i * 100))
		_, err := h.Save(ctx, params, benefit.TotalBenefit(params))
		require.NoError(t, err)
	}

	entries, err := h.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, constants.HistoryCapacity)

	require.Equal(t, "calc-6", entries[0].ID)
	require.Equal(t, 600.0, entries[0].Params.Amount)
	require.Equal(t, "calc-2", entries[4].ID)
	for _, e := range entries {
		require.NotEqual(t, "calc-1", e.ID, "oldest entry should have been evicted")
	}
	for i := 1; i < len(entries); i++ {
		require.True(t, entries[i-1].Date.After(entries[i].Date), "entries must be newest first")
	}
}

func TestSaveReturnsEntry(t *testing.T) {
	h := newTestHistory(NewMemoryStore())
	params := paramsFor(1000)
	result := benefit.TotalBenefit(params)

	entry, err := h.Save(context.Background(), params, result)
	require.NoError(t, err)
	require.Equal(t, "calc-1", entry.ID)
	require.Equal(t, result, entry.Result)
	require.Equal(t, time.UTC, entry.Date.Location())
}

func TestSavedEntryMatchesPersistedEntry(t *testing.T) {
	ctx := context.Background()
	h := New(NewFileStore(filepath.Join(t.TempDir(), "history.json")), zap.NewNop())
	h.now = func() time.Time {
		return time.Date(2025, 1, 1, 0, 0, 0, 123456789, time.UTC)
	}

	params := paramsFor(1000)
	saved, err := h.Save(ctx, params, benefit.TotalBenefit(params))
	require.NoError(t, err)
	require.Equal(t, 123000000, saved.Date.Nanosecond())

	listed, err := h.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.True(t, saved.Date.Equal(listed[0].Date), "saved=%s listed=%s", saved.Date, listed[0].Date)
	require.Equal(t, saved.ID, listed[0].ID)
	require.Equal(t, saved.Params, listed[0].Params)
	require.Equal(t, saved.Result, listed[0].Result)
}

func TestSaveGeneratesUniqueIDs(t *testing.T) {
	h := New(NewMemoryStore(), nil)
	ctx := context.Background()
	params := paramsFor(1000)

	first, err := h.Save(ctx, params, benefit.TotalBenefit(params))
	require.NoError(t, err)
	second, err := h.Save(ctx, params, benefit.TotalBenefit(params))
	require.NoError(t, err)

	require.NotEmpty(t, first.ID)
	require.NotEqual(t, first.ID, second.ID)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	h := newTestHistory(NewMemoryStore())
	params := paramsFor(1000)

	_, err := h.Save(ctx, params, benefit.TotalBenefit(params))
	require.NoError(t, err)
	require.NoError(t, h.Clear(ctx))

	entries, err := h.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestListTruncatesOversizedStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	var seeded []Entry
	for i := 0; i < 8; i++ {
		seeded = append(seeded, Entry{ID: fmt.Sprintf("seed-%d", i)})
	}
	require.NoError(t, store.Replace(ctx, seeded))

	entries, err := New(store, nil).List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, constants.HistoryCapacity)
	require.Equal(t, "seed-0", entries[0].ID)
}

type failingStore struct {
	loadErr    error
	replaceErr error
}

func (f failingStore) Load(context.Context) ([]Entry, error) { return nil, f.loadErr }

func (f failingStore) Replace(context.Context, []Entry) error { return f.replaceErr }

func TestSaveStoreErrors(t *testing.T) {
	boom := errors.New("boom")
	params := paramsFor(1000)

	_, err := New(failingStore{loadErr: boom}, nil).Save(context.Background(), params, benefit.TotalBenefit(params))
	require.ErrorIs(t, err, boom)

	_, err = New(failingStore{replaceErr: boom}, nil).Save(context.Background(), params, benefit.TotalBenefit(params))
	require.ErrorIs(t, err, boom)

	require.ErrorIs(t, New(failingStore{replaceErr: boom}, nil).Clear(context.Background()), boom)
}

func TestOpen(t *testing.T) {
	store, err := Open(config.HistoryConfig{Backend: constants.HistoryBackendMemory})
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, store)

	store, err = Open(config.HistoryConfig{Backend: constants.HistoryBackendFile, File: "custom.json"})
	require.NoError(t, err)
	require.Equal(t, "custom.json", store.(*FileStore).Path())

	store, err = Open(config.HistoryConfig{Backend: constants.HistoryBackendRedis, RedisURL: "redis://localhost:6379/0"})
	require.NoError(t, err)
	require.IsType(t, &RedisStore{}, store)
	require.NoError(t, store.(*RedisStore).Close())

	_, err = Open(config.HistoryConfig{Backend: constants.HistoryBackendRedis, RedisURL: "http://nope"})
	require.Error(t, err)

	_, err = Open(config.HistoryConfig{Backend: "sqlite"})
	require.Error(t, err)
}
