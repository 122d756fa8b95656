package drafts

import (
	"bytes"
	"context"
	"time"

	"asme-site/pkg/logger"
)

// Autosaver writes a snapshot of an editor's content to a Store on a fixed
// interval. Unchanged snapshots are not rewritten.
type Autosaver struct {
	store    Store
	key      string
	interval time.Duration
	snapshot func() ([]byte, error)
	logger   *logger.Logger

	last []byte
}

func NewAutosaver(store Store, key string, interval time.Duration, snapshot func() ([]byte, error), log *logger.Logger) *Autosaver {
	return &Autosaver{
		store:    store,
		key:      key,
		interval: interval,
		snapshot: snapshot,
		logger:   log,
	}
}

// Run saves every interval until ctx is done, then performs a final save.
func (a *Autosaver) Run(ctx context.Context) error {
	if err := ValidateKey(a.key); err != nil {
		return err
	}

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// the caller's context is gone; use a fresh one for the last write
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			a.SaveNow(flushCtx)
			cancel()
			return nil
		case <-ticker.C:
			a.SaveNow(ctx)
		}
	}
}

// SaveNow stores the current snapshot if it changed. It reports whether a
// write happened.
func (a *Autosaver) SaveNow(ctx context.Context) bool {
	value, err := a.snapshot()
	if err != nil {
		a.logger.Warn("[DRAFTS] snapshot failed key=%s: %v", a.key, err)
		return false
	}
	if a.last != nil && bytes.Equal(a.last, value) {
		return false
	}
	if err := a.store.Save(ctx, a.key, value); err != nil {
		a.logger.Error("[DRAFTS] autosave failed key=%s: %v", a.key, err)
		return false
	}
	a.last = append([]byte(nil), value...)
	a.logger.Debug("[DRAFTS] autosaved key=%s bytes=%d", a.key, len(value))
	return true
}
