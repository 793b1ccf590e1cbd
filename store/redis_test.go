package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphline/relay"
)

func testRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStoreFromClient(client, "relay-test")
}

func TestRedisStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := testRedisStore(t)

	localID, err := s.Create(ctx, "User", map[string]any{"name": "Oscar", "admin": true})
	require.NoError(t, err)
	require.Len(t, localID, 36)

	obj, err := s.Get(ctx, "User", localID)
	require.NoError(t, err)
	assert.Equal(t, "Oscar", obj["name"])
	assert.Equal(t, true, obj["admin"])

	require.NoError(t, s.Put(ctx, "User", localID, map[string]any{"name": "Ada"}))
	obj, err = s.Get(ctx, "User", localID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", obj["name"])

	require.NoError(t, s.Delete(ctx, "User", localID))
	_, err = s.Get(ctx, "User", localID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreKeysAreNamespaced(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s := NewRedisStoreFromClient(client, "relay-test")
	localID, err := s.Create(ctx, "User", map[string]any{"name": "Oscar"})
	require.NoError(t, err)

	assert.True(t, mr.Exists("relay-test:User:"+localID))
}

func TestRedisStoreMiss(t *testing.T) {
	s := testRedisStore(t)

	_, err := s.Get(context.Background(), "User", "123e4567-e89b-12d3-a456-426614174000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreBadPayload(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s := NewRedisStoreFromClient(client, "relay-test")
	require.NoError(t, mr.Set("relay-test:User:broken", "not json"))

	_, err := s.Get(ctx, "User", "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

// Redis-backed loaders behind the dispatcher, end to end.
func TestRedisStoreDispatch(t *testing.T) {
	ctx := context.Background()
	s := testRedisStore(t)

	localID, err := s.Create(ctx, "User", map[string]any{"name": "Oscar"})
	require.NoError(t, err)

	reg, err := relay.NewRegistry(
		relay.NodeType{Name: "Organization", Loader: Loader(s, "Organization")},
		relay.NodeType{Name: "User", Loader: Loader(s, "User")},
	)
	require.NoError(t, err)
	disp, err := relay.NewDispatcher(reg)
	require.NoError(t, err)

	global, err := reg.GlobalID("User", localID)
	require.NoError(t, err)

	node, err := disp.Get(ctx, global)
	require.NoError(t, err)
	assert.Equal(t, "User", node.Type)
	obj, ok := node.Value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Oscar", obj["name"])

	// Same local id under another registered type misses.
	orgGlobal, err := reg.GlobalID("Organization", localID)
	require.NoError(t, err)
	_, err = disp.Get(ctx, orgGlobal)
	assert.ErrorIs(t, err, relay.ErrNodeNotFound)
}

func TestNewRedisStoreBadURL(t *testing.T) {
	_, err := NewRedisStore(RedisOptions{URL: "://not-a-url"})
	assert.Error(t, err)
}
