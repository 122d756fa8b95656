package listing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SelectionStore persists a selection between requests of one list view.
// Toggle, Add and Remove change single members atomically, so overlapping
// requests of the same owner do not overwrite each other.
type SelectionStore interface {
	Load(ctx context.Context, key string) (*Selection, error)
	Save(ctx context.Context, key string, s *Selection) error
	Clear(ctx context.Context, key string) error
	Toggle(ctx context.Context, key, id string) (*Selection, error)
	Add(ctx context.Context, key string, ids ...string) error
	Remove(ctx context.Context, key string, ids ...string) error
}

// SelectionKey scopes a selection to one staff member and one collection.
func SelectionKey(owner, collection string) string {
	return owner + ":" + collection
}

type MemorySelectionStore struct {
	mu   sync.Mutex
	sets map[string][]string
}

func NewMemorySelectionStore() *MemorySelectionStore {
	return &MemorySelectionStore{sets: make(map[string][]string)}
}

func (m *MemorySelectionStore) Load(_ context.Context, key string) (*Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return NewSelection(m.sets[key]...), nil
}

func (m *MemorySelectionStore) Save(_ context.Context, key string, s *Selection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.Len() == 0 {
		delete(m.sets, key)
		return nil
	}
	m.sets[key] = s.IDs()
	return nil
}

func (m *MemorySelectionStore) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sets, key)
	return nil
}

func (m *MemorySelectionStore) Toggle(_ context.Context, key, id string) (*Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sel := NewSelection(m.sets[key]...)
	sel.Toggle(id)
	m.store(key, sel)
	return NewSelection(sel.IDs()...), nil
}

func (m *MemorySelectionStore) Add(_ context.Context, key string, ids ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(key, NewSelection(append(append([]string(nil), m.sets[key]...), ids...)...))
	return nil
}

func (m *MemorySelectionStore) Remove(_ context.Context, key string, ids ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sel := NewSelection(m.sets[key]...)
	sel.Prune(ids...)
	m.store(key, sel)
	return nil
}

// store must be called with mu held.
func (m *MemorySelectionStore) store(key string, sel *Selection) {
	if sel.Len() == 0 {
		delete(m.sets, key)
		return
	}
	m.sets[key] = sel.IDs()
}

// RedisSelectionStore keeps each selection as a Redis set that expires after
// ttl of inactivity.
type RedisSelectionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSelectionStore(client *redis.Client, ttl time.Duration) *RedisSelectionStore {
	return &RedisSelectionStore{client: client, ttl: ttl}
}

func (r *RedisSelectionStore) redisKey(key string) string {
	return "selection:" + key
}

func (r *RedisSelectionStore) Load(ctx context.Context, key string) (*Selection, error) {
	ids, err := r.client.SMembers(ctx, r.redisKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load selection: %w", err)
	}
	return NewSelection(ids...), nil
}

func (r *RedisSelectionStore) Save(ctx context.Context, key string, s *Selection) error {
	rk := r.redisKey(key)
	ids := s.IDs()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, rk)
		if len(ids) == 0 {
			return nil
		}
		pipe.SAdd(ctx, rk, members(ids)...)
		if r.ttl > 0 {
			pipe.Expire(ctx, rk, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}

func (r *RedisSelectionStore) Clear(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}

// toggleScript flips one member and returns the resulting set. ARGV[2] is the
// ttl in seconds, 0 for none.
var toggleScript = redis.NewScript(`
if redis.call('SISMEMBER', KEYS[1], ARGV[1]) == 1 then
	redis.call('SREM', KEYS[1], ARGV[1])
else
	redis.call('SADD', KEYS[1], ARGV[1])
end
local ttl = tonumber(ARGV[2])
if ttl > 0 and redis.call('EXISTS', KEYS[1]) == 1 then
	redis.call('EXPIRE', KEYS[1], ttl)
end
return redis.call('SMEMBERS', KEYS[1])
`)

func (r *RedisSelectionStore) Toggle(ctx context.Context, key, id string) (*Selection, error) {
	ids, err := toggleScript.Run(ctx, r.client, []string{r.redisKey(key)}, id, int64(r.ttl/time.Second)).StringSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to toggle selection: %w", err)
	}
	return NewSelection(ids...), nil
}

func (r *RedisSelectionStore) Add(ctx context.Context, key string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	rk := r.redisKey(key)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, rk, members(ids)...)
		if r.ttl > 0 {
			pipe.Expire(ctx, rk, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add to selection: %w", err)
	}
	return nil
}

func (r *RedisSelectionStore) Remove(ctx context.Context, key string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.client.SRem(ctx, r.redisKey(key), members(ids)...).Err(); err != nil {
		return fmt.Errorf("failed to remove from selection: %w", err)
	}
	return nil
}

func members(ids []string) []interface{} {
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
