package draft

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/tariffsheriff/tariffsheriff-backend/internal/calculator"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/config"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/redis"
)

// Store is the key-value surface autosave writes through.
type Store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	DraftKey(owner string) string
}

// Autosaver persists in-progress drafts after a debounce window. Rapid
// edits coalesce into a single write; last write wins. Storage is
// best-effort: failures degrade to a log line and never reach the caller.
type Autosaver struct {
	store    Store
	log      *logger.Logger
	debounce time.Duration
	ttl      time.Duration

	mu      sync.Mutex
	pending map[string]*pendingWrite
	closed  bool
}

type pendingWrite struct {
	timer   *time.Timer
	payload []byte
}

// NewAutosaver builds an autosaver over the given store.
func NewAutosaver(store Store, cfg config.AutosaveConfig, log *logger.Logger) *Autosaver {
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = time.Second
	}
	return &Autosaver{
		store:    store,
		log:      log,
		debounce: debounce,
		ttl:      cfg.TTL,
		pending:  make(map[string]*pendingWrite),
	}
}

// Schedule records the draft state and (re)starts the debounce timer for
// the owner. Each call cancels any timer still pending for that owner.
func (a *Autosaver) Schedule(owner string, draft calculator.ProductInfo) {
	payload, err := json.Marshal(draft)
	if err != nil {
		a.warn(owner, "marshal draft for autosave", err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	if entry, ok := a.pending[owner]; ok {
		entry.timer.Stop()
		entry.payload = payload
		entry.timer.Reset(a.debounce)
		return
	}

	entry := &pendingWrite{payload: payload}
	entry.timer = time.AfterFunc(a.debounce, func() {
		a.fire(owner)
	})
	a.pending[owner] = entry
}

func (a *Autosaver) fire(owner string) {
	a.mu.Lock()
	entry, ok := a.pending[owner]
	if !ok {
		a.mu.Unlock()
		return
	}
	delete(a.pending, owner)
	payload := entry.payload
	a.mu.Unlock()

	a.write(owner, payload)
}

// Flush writes any pending draft for the owner immediately, short-cutting
// the debounce window. Used on shutdown.
func (a *Autosaver) Flush(owner string) {
	a.mu.Lock()
	entry, ok := a.pending[owner]
	if ok {
		entry.timer.Stop()
		delete(a.pending, owner)
	}
	a.mu.Unlock()

	if ok {
		a.write(owner, entry.payload)
	}
}

// Restore loads the stored draft and shallow-merges it over defaults.
// Stored fields win; anything missing keeps the default. A read failure or
// absent key degrades to the defaults.
func (a *Autosaver) Restore(ctx context.Context, owner string, defaults calculator.ProductInfo) calculator.ProductInfo {
	raw, err := a.store.Get(ctx, a.store.DraftKey(owner))
	if err != nil {
		if !errors.Is(err, redis.ErrNotFound) {
			a.warn(owner, "read autosaved draft", err)
		}
		return defaults
	}

	merged := defaults
	if err := json.Unmarshal([]byte(raw), &merged); err != nil {
		a.warn(owner, "decode autosaved draft", err)
		return defaults
	}
	return merged
}

// Clear drops the stored draft and any pending write for the owner.
func (a *Autosaver) Clear(ctx context.Context, owner string) {
	a.mu.Lock()
	if entry, ok := a.pending[owner]; ok {
		entry.timer.Stop()
		delete(a.pending, owner)
	}
	a.mu.Unlock()

	if err := a.store.Del(ctx, a.store.DraftKey(owner)); err != nil {
		a.warn(owner, "clear autosaved draft", err)
	}
}

// Close stops every pending timer without writing.
func (a *Autosaver) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	for owner, entry := range a.pending {
		entry.timer.Stop()
		delete(a.pending, owner)
	}
}

func (a *Autosaver) write(owner string, payload []byte) {
	ctx := context.Background()
	if err := a.store.Set(ctx, a.store.DraftKey(owner), payload, a.ttl); err != nil {
		a.warn(owner, "write autosaved draft", err)
	}
}

func (a *Autosaver) warn(owner, msg string, err error) {
	if a.log == nil {
		return
	}
	ctx := a.log.WithDraftOwner(context.Background(), owner)
	a.log.Warn(ctx, msg+": "+err.Error())
}
