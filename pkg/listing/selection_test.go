package listing

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_Toggle(t *testing.T) {
	s := NewSelection()

	assert.True(t, s.Toggle("a"))
	assert.True(t, s.Has("a"))
	assert.False(t, s.Toggle("a"))
	assert.False(t, s.Has("a"))
	assert.False(t, s.Toggle(""))
	assert.Equal(t, 0, s.Len())
}

func TestSelection_SelectAllOnPage(t *testing.T) {
	s := NewSelection("x")
	page := []string{"a", "b", "c"}

	s.SelectAllOnPage(page)
	assert.True(t, s.AllSelectedOnPage(page))
	assert.Equal(t, []string{"a", "b", "c", "x"}, s.IDs())

	s.SelectAllOnPage(page)
	assert.False(t, s.AllSelectedOnPage(page))
	assert.Equal(t, []string{"x"}, s.IDs())
}

func TestSelection_SelectAllOnPageTwiceRestoresState(t *testing.T) {
	page := []string{"a", "b"}

	none := NewSelection("other")
	none.SelectAllOnPage(page)
	none.SelectAllOnPage(page)
	assert.Equal(t, []string{"other"}, none.IDs())

	all := NewSelection("a", "b")
	all.SelectAllOnPage(page)
	all.SelectAllOnPage(page)
	assert.Equal(t, []string{"a", "b"}, all.IDs())
}

func TestSelection_PartialPageSelectsEverythingFirst(t *testing.T) {
	s := NewSelection("a")
	page := []string{"a", "b"}

	s.SelectAllOnPage(page)
	assert.Equal(t, []string{"a", "b"}, s.IDs())

	s.SelectAllOnPage(page)
	assert.Empty(t, s.IDs())
}

func TestSelection_AllSelectedOnEmptyPage(t *testing.T) {
	s := NewSelection("a")
	assert.False(t, s.AllSelectedOnPage(nil))

	s.SelectAllOnPage(nil)
	assert.Equal(t, []string{"a"}, s.IDs())
}

func TestSelection_PruneAfterDelete(t *testing.T) {
	s := NewSelection("a", "b", "c")
	s.Prune("b", "missing")
	assert.False(t, s.Has("b"))
	assert.Equal(t, []string{"a", "c"}, s.IDs())
}

func TestSelection_Retain(t *testing.T) {
	s := NewSelection("a", "b", "gone", "stale")
	dropped := s.Retain([]string{"a", "b", "c"})

	assert.Equal(t, []string{"gone", "stale"}, dropped)
	assert.Equal(t, []string{"a", "b"}, s.IDs())

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestMemorySelectionStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySelectionStore()
	key := SelectionKey("staff-1", "posts")

	sel, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 0, sel.Len())

	sel.Toggle("p1")
	sel.Toggle("p2")
	require.NoError(t, store.Save(ctx, key, sel))

	loaded, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, loaded.IDs())

	// other owners are isolated
	other, _ := store.Load(ctx, SelectionKey("staff-2", "posts"))
	assert.Equal(t, 0, other.Len())

	require.NoError(t, store.Clear(ctx, key))
	loaded, _ = store.Load(ctx, key)
	assert.Equal(t, 0, loaded.Len())
}

func TestRedisSelectionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	store := NewRedisSelectionStore(client, time.Hour)
	key := SelectionKey("staff-1", "casos")

	require.NoError(t, store.Save(ctx, key, NewSelection("c2", "c1")))
	assert.Equal(t, time.Hour, mr.TTL("selection:"+key))

	loaded, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, loaded.IDs())

	loaded.Prune("c1")
	require.NoError(t, store.Save(ctx, key, loaded))
	loaded, _ = store.Load(ctx, key)
	assert.Equal(t, []string{"c2"}, loaded.IDs())

	require.NoError(t, store.Save(ctx, key, NewSelection()))
	assert.False(t, mr.Exists("selection:"+key))

	require.NoError(t, store.Save(ctx, key, NewSelection("c3")))
	require.NoError(t, store.Clear(ctx, key))
	loaded, _ = store.Load(ctx, key)
	assert.Equal(t, 0, loaded.Len())
}

func selectionStores(t *testing.T) map[string]SelectionStore {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]SelectionStore{
		"memory": NewMemorySelectionStore(),
		"redis":  NewRedisSelectionStore(client, time.Hour),
	}
}

func TestSelectionStore_SingleMemberOps(t *testing.T) {
	for name, store := range selectionStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := SelectionKey("staff-1", "clients")

			sel, err := store.Toggle(ctx, key, "c1")
			require.NoError(t, err)
			assert.Equal(t, []string{"c1"}, sel.IDs())

			require.NoError(t, store.Add(ctx, key, "c2", "c3"))
			sel, err = store.Toggle(ctx, key, "c1")
			require.NoError(t, err)
			assert.Equal(t, []string{"c2", "c3"}, sel.IDs())

			require.NoError(t, store.Remove(ctx, key, "c3", "missing"))
			loaded, err := store.Load(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, []string{"c2"}, loaded.IDs())

			sel, err = store.Toggle(ctx, key, "c2")
			require.NoError(t, err)
			assert.Equal(t, 0, sel.Len())
		})
	}
}

func TestSelectionStore_OverlappingTogglesKeepEveryChange(t *testing.T) {
	for name, store := range selectionStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := SelectionKey("staff-1", "posts")

			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(id string) {
					defer wg.Done()
					_, err := store.Toggle(ctx, key, id)
					assert.NoError(t, err)
				}(fmt.Sprintf("p%02d", i))
			}
			wg.Wait()

			loaded, err := store.Load(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, 20, loaded.Len())
		})
	}
}

func TestRedisSelectionStore_ToggleRefreshesTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisSelectionStore(client, time.Hour)
	key := SelectionKey("staff-1", "casos")

	_, err := store.Toggle(context.Background(), key, "c1")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL("selection:"+key))
}
