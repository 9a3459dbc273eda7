package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/benefit-calculator/internal/config"
	"github.com/iwvelando/benefit-calculator/pkg/benefit"
	"github.com/iwvelando/benefit-calculator/pkg/constants"
	"go.uber.org/zap"
)

// History is an ordered, most-recent-first list of saved calculations capped
// at constants.HistoryCapacity entries.
type History struct {
	store    Store
	logger   *zap.Logger
	capacity int

	now   func() time.Time
	newID func() string

	// mu serializes the load-modify-replace cycle of Save and Clear.
	mu sync.Mutex
}

// New creates a History backed by store.
func New(store Store, logger *zap.Logger) *History {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &History{
		store:    store,
		logger:   logger,
		capacity: constants.HistoryCapacity,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Open builds the Store selected by cfg.
func Open(cfg config.HistoryConfig) (Store, error) {
	switch cfg.Backend {
	case constants.HistoryBackendFile, "":
		file := cfg.File
		if file == "" {
			file = constants.DefaultHistoryFile
		}
		return NewFileStore(file), nil
	case constants.HistoryBackendRedis:
		key := cfg.RedisKey
		if key == "" {
			key = constants.DefaultHistoryRedisKey
		}
		return NewRedisStoreFromURL(cfg.RedisURL, key)
	case constants.HistoryBackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported history backend %q", cfg.Backend)
	}
}

// Save prepends a new entry for params and result and evicts the oldest
// entries beyond capacity.
func (h *History) Save(ctx context.Context, params benefit.Params, result benefit.Result) (Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	current, err := h.store.Load(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to load history: %w", err)
	}

	entry := Entry{
		ID:     h.newID(),
		Date:   h.now().UTC().Truncate(time.Millisecond),
		Params: params,
		Result: result,
	}

	updated := make([]Entry, 0, h.capacity)
	updated = append(updated, entry)
	updated = append(updated, current...)
	if len(updated) > h.capacity {
		h.logger.Debug(fmt.Sprintf("evicting %d history entries", len(updated)-h.capacity),
			zap.String("op", "history.Save"),
		)
		updated = updated[:h.capacity]
	}

	if err := h.store.Replace(ctx, updated); err != nil {
		return Entry{}, fmt.Errorf("failed to save history: %w", err)
	}

	h.logger.Debug("calculation saved",
		zap.String("op", "history.Save"),
		zap.String("id", entry.ID),
		zap.Int("entries", len(updated)),
	)
	return entry, nil
}

// List returns the saved entries, most recent first.
func (h *History) List(ctx context.Context) ([]Entry, error) {
	entries, err := h.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if len(entries) > h.capacity {
		entries = entries[:h.capacity]
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Clear removes every entry.
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.Replace(ctx, nil); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	h.logger.Debug("history cleared", zap.String("op", "history.Clear"))
	return nil
}
